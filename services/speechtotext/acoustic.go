package speechtotext

import (
	"context"
	"net/http"

	"github.com/goliatone/go-watson/core"
)

const containedContentTypeHeader = "Contained-Content-Type"

func (s *Service) CreateAcousticModel(ctx context.Context, model *CreateAcousticModel) (AcousticModel, error) {
	if err := core.Require(core.Arg("create_acoustic_model", model)); err != nil {
		return AcousticModel{}, err
	}
	return core.Invoke[AcousticModel](ctx, s.invoker,
		core.NewRequest(http.MethodPost, "/v1/acoustic_customizations").WithJSON(model))
}

func (s *Service) DeleteAcousticModel(ctx context.Context, customizationID string) error {
	return s.customizationCall(ctx, http.MethodDelete, "/v1/acoustic_customizations/{customization_id}", customizationID, nil)
}

func (s *Service) GetAcousticModel(ctx context.Context, customizationID string) (AcousticModel, error) {
	if err := core.Require(core.Arg("customization_id", customizationID)); err != nil {
		return AcousticModel{}, err
	}
	return core.Invoke[AcousticModel](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/acoustic_customizations/{customization_id}").
		WithPathParam("customization_id", customizationID))
}

func (s *Service) ListAcousticModels(ctx context.Context, language string) (AcousticModels, error) {
	return core.Invoke[AcousticModels](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/acoustic_customizations").
		WithQuery("language", language))
}

func (s *Service) ResetAcousticModel(ctx context.Context, customizationID string) error {
	return s.customizationCall(ctx, http.MethodPost, "/v1/acoustic_customizations/{customization_id}/reset", customizationID, nil)
}

func (s *Service) TrainAcousticModel(ctx context.Context, customizationID, customLanguageModelID string) error {
	return s.customizationCall(ctx, http.MethodPost, "/v1/acoustic_customizations/{customization_id}/train", customizationID, func(req *core.Request) {
		req.WithQuery("custom_language_model_id", customLanguageModelID)
	})
}

func (s *Service) UpgradeAcousticModel(ctx context.Context, customizationID, customLanguageModelID string) error {
	return s.customizationCall(ctx, http.MethodPost, "/v1/acoustic_customizations/{customization_id}/upgrade_model", customizationID, func(req *core.Request) {
		req.WithQuery("custom_language_model_id", customLanguageModelID)
	})
}

type AddAudioOptions struct {
	// ContainedContentType names the format of the files inside an archive
	// resource.
	ContainedContentType string
	AllowOverwrite       *bool
}

// AddAudio uploads an audio file or archive as the raw request body.
func (s *Service) AddAudio(ctx context.Context, customizationID, audioName string, audio []byte, contentType string, opts AddAudioOptions) error {
	if err := core.Require(
		core.Arg("customization_id", customizationID),
		core.Arg("audio_name", audioName),
		core.Arg("audio_resource", audio),
		core.Arg("content_type", contentType),
	); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, audioRequest(http.MethodPost, customizationID, audioName).
		WithHeader(containedContentTypeHeader, opts.ContainedContentType).
		WithQuery("allow_overwrite", opts.AllowOverwrite).
		WithBytes(audio, contentType))
}

func (s *Service) DeleteAudio(ctx context.Context, customizationID, audioName string) error {
	if err := core.Require(core.Arg("customization_id", customizationID), core.Arg("audio_name", audioName)); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, audioRequest(http.MethodDelete, customizationID, audioName))
}

func (s *Service) GetAudio(ctx context.Context, customizationID, audioName string) (AudioListing, error) {
	if err := core.Require(core.Arg("customization_id", customizationID), core.Arg("audio_name", audioName)); err != nil {
		return AudioListing{}, err
	}
	return core.Invoke[AudioListing](ctx, s.invoker, audioRequest(http.MethodGet, customizationID, audioName))
}

func (s *Service) ListAudio(ctx context.Context, customizationID string) (AudioResources, error) {
	if err := core.Require(core.Arg("customization_id", customizationID)); err != nil {
		return AudioResources{}, err
	}
	return core.Invoke[AudioResources](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/acoustic_customizations/{customization_id}/audio").
		WithPathParam("customization_id", customizationID))
}

func audioRequest(method, customizationID, audioName string) *core.Request {
	return core.NewRequest(method, "/v1/acoustic_customizations/{customization_id}/audio/{audio_name}").
		WithPathParam("customization_id", customizationID).
		WithPathParam("audio_name", audioName)
}
