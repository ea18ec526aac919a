// Package languagetranslator is the client for the Watson Language
// Translator v2 service.
package languagetranslator

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/services"
)

const (
	ServiceName = "language_translator"
	DefaultURL  = "https://gateway.watsonplatform.net/language-translator/api"

	contentTypeText = "text/plain"
)

var Definition = services.Definition{Name: ServiceName, DefaultURL: DefaultURL}

type Service struct {
	invoker *core.Invoker
}

func New(cfg core.Config, opts ...core.Option) (*Service, error) {
	invoker, err := services.NewInvoker(Definition, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Service{invoker: invoker}, nil
}

func NewWithInvoker(invoker *core.Invoker) *Service {
	return &Service{invoker: invoker}
}

func (s *Service) Invoker() *core.Invoker {
	return s.invoker
}

func (s *Service) Translate(ctx context.Context, request *TranslateRequest) (TranslationResult, error) {
	if err := core.Require(core.Arg("request", request)); err != nil {
		return TranslationResult{}, err
	}
	if err := core.Require(core.Arg("text", request.Text)); err != nil {
		return TranslationResult{}, err
	}
	if request.ModelID == "" && (request.Source == "" || request.Target == "") {
		return TranslationResult{}, core.BadInputFault("languagetranslator: model_id or source and target are required", map[string]any{
			"source": request.Source,
			"target": request.Target,
		})
	}
	return core.Invoke[TranslationResult](ctx, s.invoker,
		core.NewRequest(http.MethodPost, "/v2/translate").WithJSON(request))
}

// Identify returns the candidate languages of text ranked by the service.
func (s *Service) Identify(ctx context.Context, text string) (IdentifiedLanguages, error) {
	if err := core.Require(core.Arg("text", text)); err != nil {
		return IdentifiedLanguages{}, err
	}
	return core.Invoke[IdentifiedLanguages](ctx, s.invoker, identifyRequest(text).WithAccept(core.ContentTypeJSON))
}

// IdentifyPlain asks for the plain-text rendering, one "language confidence"
// pair per line, and returns it unparsed.
func (s *Service) IdentifyPlain(ctx context.Context, text string) (string, error) {
	if err := core.Require(core.Arg("text", text)); err != nil {
		return "", err
	}
	res, err := s.invoker.Do(ctx, identifyRequest(text).WithAccept(contentTypeText))
	if err != nil {
		return "", err
	}
	return string(res.Body), nil
}

func (s *Service) ListIdentifiableLanguages(ctx context.Context) (IdentifiableLanguages, error) {
	return core.Invoke[IdentifiableLanguages](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v2/identifiable_languages"))
}

// CreateModelOptions holds the customization files. Each file is optional
// but the service expects at least one.
type CreateModelOptions struct {
	Name              string
	ForcedGlossary    io.Reader
	ParallelCorpus    io.Reader
	MonolingualCorpus io.Reader
}

func (s *Service) CreateModel(ctx context.Context, baseModelID string, opts CreateModelOptions) (TranslationModel, error) {
	if err := core.Require(core.Arg("base_model_id", baseModelID)); err != nil {
		return TranslationModel{}, err
	}
	parts := make([]core.FormPart, 0, 3)
	if opts.ForcedGlossary != nil {
		parts = append(parts, core.FilePart("forced_glossary", "forced_glossary.tmx", "", opts.ForcedGlossary))
	}
	if opts.ParallelCorpus != nil {
		parts = append(parts, core.FilePart("parallel_corpus", "parallel_corpus.tmx", "", opts.ParallelCorpus))
	}
	if opts.MonolingualCorpus != nil {
		parts = append(parts, core.FilePart("monolingual_corpus", "monolingual_corpus.txt", contentTypeText, opts.MonolingualCorpus))
	}
	return core.Invoke[TranslationModel](ctx, s.invoker, core.NewRequest(http.MethodPost, "/v2/models").
		WithQuery("base_model_id", baseModelID).
		WithQuery("name", opts.Name).
		WithMultipart(parts...))
}

func (s *Service) DeleteModel(ctx context.Context, modelID string) (DeleteModelResult, error) {
	if err := core.Require(core.Arg("model_id", modelID)); err != nil {
		return DeleteModelResult{}, err
	}
	return core.Invoke[DeleteModelResult](ctx, s.invoker, modelRequest(http.MethodDelete, modelID))
}

func (s *Service) GetModel(ctx context.Context, modelID string) (TranslationModel, error) {
	if err := core.Require(core.Arg("model_id", modelID)); err != nil {
		return TranslationModel{}, err
	}
	return core.Invoke[TranslationModel](ctx, s.invoker, modelRequest(http.MethodGet, modelID))
}

type ListModelsOptions struct {
	Source string
	Target string
	// DefaultModels limits the listing to default (true) or custom (false)
	// models. Nil lists both.
	DefaultModels *bool
}

func (s *Service) ListModels(ctx context.Context, opts ListModelsOptions) (TranslationModels, error) {
	return core.Invoke[TranslationModels](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v2/models").
		WithQuery("source", opts.Source).
		WithQuery("target", opts.Target).
		WithQuery("default", opts.DefaultModels))
}

func identifyRequest(text string) *core.Request {
	return core.NewRequest(http.MethodPost, "/v2/identify").
		WithBytes([]byte(text), contentTypeText+"; charset=utf-8")
}

func modelRequest(method, modelID string) *core.Request {
	return core.NewRequest(method, "/v2/models/{model_id}").WithPathParam("model_id", strings.TrimSpace(modelID))
}
