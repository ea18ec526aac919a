package texttospeech

import (
	"context"
	"net/http"

	"github.com/goliatone/go-watson/core"
)

func (s *Service) CreateVoiceModel(ctx context.Context, model *CreateVoiceModel) (VoiceModel, error) {
	if err := core.Require(core.Arg("create_voice_model", model)); err != nil {
		return VoiceModel{}, err
	}
	return core.Invoke[VoiceModel](ctx, s.invoker,
		core.NewRequest(http.MethodPost, "/v1/customizations").WithJSON(model))
}

func (s *Service) DeleteVoiceModel(ctx context.Context, customizationID string) error {
	if err := core.Require(core.Arg("customization_id", customizationID)); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, modelRequest(http.MethodDelete, customizationID))
}

func (s *Service) GetVoiceModel(ctx context.Context, customizationID string) (VoiceModel, error) {
	if err := core.Require(core.Arg("customization_id", customizationID)); err != nil {
		return VoiceModel{}, err
	}
	return core.Invoke[VoiceModel](ctx, s.invoker, modelRequest(http.MethodGet, customizationID))
}

func (s *Service) ListVoiceModels(ctx context.Context, language string) (VoiceModels, error) {
	return core.Invoke[VoiceModels](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/customizations").
		WithQuery("language", language))
}

func (s *Service) UpdateVoiceModel(ctx context.Context, customizationID string, update *UpdateVoiceModel) error {
	if err := core.Require(core.Arg("customization_id", customizationID), core.Arg("update_voice_model", update)); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, modelRequest(http.MethodPost, customizationID).WithJSON(update))
}

func (s *Service) AddWord(ctx context.Context, customizationID, word string, translation *Translation) error {
	if err := core.Require(
		core.Arg("customization_id", customizationID),
		core.Arg("word", word),
		core.Arg("translation", translation),
	); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, wordRequest(http.MethodPut, customizationID, word).WithJSON(translation))
}

func (s *Service) AddWords(ctx context.Context, customizationID string, words *Words) error {
	if err := core.Require(core.Arg("customization_id", customizationID), core.Arg("custom_words", words)); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, core.NewRequest(http.MethodPost, "/v1/customizations/{customization_id}/words").
		WithPathParam("customization_id", customizationID).
		WithJSON(words))
}

func (s *Service) DeleteWord(ctx context.Context, customizationID, word string) error {
	if err := core.Require(core.Arg("customization_id", customizationID), core.Arg("word", word)); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, wordRequest(http.MethodDelete, customizationID, word))
}

func (s *Service) GetWord(ctx context.Context, customizationID, word string) (Translation, error) {
	if err := core.Require(core.Arg("customization_id", customizationID), core.Arg("word", word)); err != nil {
		return Translation{}, err
	}
	return core.Invoke[Translation](ctx, s.invoker, wordRequest(http.MethodGet, customizationID, word))
}

func (s *Service) ListWords(ctx context.Context, customizationID string) (Words, error) {
	if err := core.Require(core.Arg("customization_id", customizationID)); err != nil {
		return Words{}, err
	}
	return core.Invoke[Words](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/customizations/{customization_id}/words").
		WithPathParam("customization_id", customizationID))
}

func modelRequest(method, customizationID string) *core.Request {
	return core.NewRequest(method, "/v1/customizations/{customization_id}").
		WithPathParam("customization_id", customizationID)
}

func wordRequest(method, customizationID, word string) *core.Request {
	return core.NewRequest(method, "/v1/customizations/{customization_id}/words/{word}").
		WithPathParam("customization_id", customizationID).
		WithPathParam("word", word)
}
