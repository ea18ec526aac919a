package speechtotext

import (
	"context"
	"io"
	"net/http"

	"github.com/goliatone/go-watson/core"
)

func (s *Service) CreateLanguageModel(ctx context.Context, model *CreateLanguageModel) (LanguageModel, error) {
	if err := core.Require(core.Arg("create_language_model", model)); err != nil {
		return LanguageModel{}, err
	}
	return core.Invoke[LanguageModel](ctx, s.invoker,
		core.NewRequest(http.MethodPost, "/v1/customizations").WithJSON(model))
}

func (s *Service) DeleteLanguageModel(ctx context.Context, customizationID string) error {
	return s.customizationCall(ctx, http.MethodDelete, "/v1/customizations/{customization_id}", customizationID, nil)
}

func (s *Service) GetLanguageModel(ctx context.Context, customizationID string) (LanguageModel, error) {
	if err := core.Require(core.Arg("customization_id", customizationID)); err != nil {
		return LanguageModel{}, err
	}
	return core.Invoke[LanguageModel](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/customizations/{customization_id}").
		WithPathParam("customization_id", customizationID))
}

func (s *Service) ListLanguageModels(ctx context.Context, language string) (LanguageModels, error) {
	return core.Invoke[LanguageModels](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/customizations").
		WithQuery("language", language))
}

func (s *Service) ResetLanguageModel(ctx context.Context, customizationID string) error {
	return s.customizationCall(ctx, http.MethodPost, "/v1/customizations/{customization_id}/reset", customizationID, nil)
}

type TrainLanguageModelOptions struct {
	WordTypeToAdd       string
	CustomizationWeight *float64
}

func (s *Service) TrainLanguageModel(ctx context.Context, customizationID string, opts TrainLanguageModelOptions) error {
	return s.customizationCall(ctx, http.MethodPost, "/v1/customizations/{customization_id}/train", customizationID, func(req *core.Request) {
		req.WithQuery("word_type_to_add", opts.WordTypeToAdd).
			WithQuery("customization_weight", opts.CustomizationWeight)
	})
}

func (s *Service) UpgradeLanguageModel(ctx context.Context, customizationID string) error {
	return s.customizationCall(ctx, http.MethodPost, "/v1/customizations/{customization_id}/upgrade_model", customizationID, nil)
}

type AddCorpusOptions struct {
	AllowOverwrite *bool
	// ContentType of the corpus file; text/plain when blank.
	ContentType string
}

// AddCorpus uploads a plain-text corpus as the multipart part corpus_file.
func (s *Service) AddCorpus(ctx context.Context, customizationID, corpusName string, corpus io.Reader, opts AddCorpusOptions) error {
	if err := core.Require(
		core.Arg("customization_id", customizationID),
		core.Arg("corpus_name", corpusName),
		core.Arg("corpus_file", corpus),
	); err != nil {
		return err
	}
	contentType := opts.ContentType
	if contentType == "" {
		contentType = "text/plain"
	}
	return s.invoker.Exec(ctx, core.NewRequest(http.MethodPost, "/v1/customizations/{customization_id}/corpora/{corpus_name}").
		WithPathParam("customization_id", customizationID).
		WithPathParam("corpus_name", corpusName).
		WithQuery("allow_overwrite", opts.AllowOverwrite).
		WithMultipart(core.FilePart("corpus_file", corpusName, contentType, corpus)))
}

func (s *Service) DeleteCorpus(ctx context.Context, customizationID, corpusName string) error {
	if err := core.Require(core.Arg("customization_id", customizationID), core.Arg("corpus_name", corpusName)); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, corpusRequest(http.MethodDelete, customizationID, corpusName))
}

func (s *Service) GetCorpus(ctx context.Context, customizationID, corpusName string) (Corpus, error) {
	if err := core.Require(core.Arg("customization_id", customizationID), core.Arg("corpus_name", corpusName)); err != nil {
		return Corpus{}, err
	}
	return core.Invoke[Corpus](ctx, s.invoker, corpusRequest(http.MethodGet, customizationID, corpusName))
}

func (s *Service) ListCorpora(ctx context.Context, customizationID string) (Corpora, error) {
	if err := core.Require(core.Arg("customization_id", customizationID)); err != nil {
		return Corpora{}, err
	}
	return core.Invoke[Corpora](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/customizations/{customization_id}/corpora").
		WithPathParam("customization_id", customizationID))
}

func (s *Service) AddWord(ctx context.Context, customizationID, wordName string, word *CustomWord) error {
	if err := core.Require(
		core.Arg("customization_id", customizationID),
		core.Arg("word_name", wordName),
		core.Arg("custom_word", word),
	); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, wordRequest(http.MethodPut, customizationID, wordName).WithJSON(word))
}

func (s *Service) AddWords(ctx context.Context, customizationID string, words *CustomWords) error {
	if err := core.Require(core.Arg("customization_id", customizationID), core.Arg("custom_words", words)); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, core.NewRequest(http.MethodPost, "/v1/customizations/{customization_id}/words").
		WithPathParam("customization_id", customizationID).
		WithJSON(words))
}

func (s *Service) DeleteWord(ctx context.Context, customizationID, wordName string) error {
	if err := core.Require(core.Arg("customization_id", customizationID), core.Arg("word_name", wordName)); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, wordRequest(http.MethodDelete, customizationID, wordName))
}

func (s *Service) GetWord(ctx context.Context, customizationID, wordName string) (Word, error) {
	if err := core.Require(core.Arg("customization_id", customizationID), core.Arg("word_name", wordName)); err != nil {
		return Word{}, err
	}
	return core.Invoke[Word](ctx, s.invoker, wordRequest(http.MethodGet, customizationID, wordName))
}

type ListWordsOptions struct {
	WordType string
	Sort     string
}

func (s *Service) ListWords(ctx context.Context, customizationID string, opts ListWordsOptions) (Words, error) {
	if err := core.Require(core.Arg("customization_id", customizationID)); err != nil {
		return Words{}, err
	}
	return core.Invoke[Words](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/customizations/{customization_id}/words").
		WithPathParam("customization_id", customizationID).
		WithQuery("word_type", opts.WordType).
		WithQuery("sort", opts.Sort))
}

func (s *Service) customizationCall(ctx context.Context, method, path, customizationID string, decorate func(*core.Request)) error {
	if err := core.Require(core.Arg("customization_id", customizationID)); err != nil {
		return err
	}
	req := core.NewRequest(method, path).WithPathParam("customization_id", customizationID)
	if decorate != nil {
		decorate(req)
	}
	return s.invoker.Exec(ctx, req)
}

func corpusRequest(method, customizationID, corpusName string) *core.Request {
	return core.NewRequest(method, "/v1/customizations/{customization_id}/corpora/{corpus_name}").
		WithPathParam("customization_id", customizationID).
		WithPathParam("corpus_name", corpusName)
}

func wordRequest(method, customizationID, wordName string) *core.Request {
	return core.NewRequest(method, "/v1/customizations/{customization_id}/words/{word_name}").
		WithPathParam("customization_id", customizationID).
		WithPathParam("word_name", wordName)
}
