// Package speechtotext is the client for the Watson Speech to Text service.
package speechtotext

import (
	"context"
	"net/http"

	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/services"
)

const (
	ServiceName = "speech_to_text"
	DefaultURL  = "https://stream.watsonplatform.net/speech-to-text/api"
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

func (s *Service) GetModel(ctx context.Context, modelID string) (SpeechModel, error) {
	if err := core.Require(core.Arg("model_id", modelID)); err != nil {
		return SpeechModel{}, err
	}
	return core.Invoke[SpeechModel](ctx, s.invoker,
		core.NewRequest(http.MethodGet, "/v1/models/{model_id}").WithPathParam("model_id", modelID))
}

func (s *Service) ListModels(ctx context.Context) (SpeechModels, error) {
	return core.Invoke[SpeechModels](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/models"))
}

// RecognizeOptions are the recognition parameters shared by the sessionless,
// asynchronous and WebSocket interfaces.
type RecognizeOptions struct {
	Model                     string
	CustomizationID           string
	AcousticCustomizationID   string
	CustomizationWeight       *float64
	Version                   string
	InactivityTimeout         *int64
	Keywords                  []string
	KeywordsThreshold         *float32
	MaxAlternatives           *int64
	WordAlternativesThreshold *float32
	WordConfidence            *bool
	Timestamps                *bool
	ProfanityFilter           *bool
	SmartFormatting           *bool
	SpeakerLabels             *bool
}

func (o RecognizeOptions) apply(req *core.Request) *core.Request {
	return req.
		WithQuery("model", o.Model).
		WithQuery("customization_id", o.CustomizationID).
		WithQuery("acoustic_customization_id", o.AcousticCustomizationID).
		WithQuery("customization_weight", o.CustomizationWeight).
		WithQuery("version", o.Version).
		WithQuery("inactivity_timeout", o.InactivityTimeout).
		WithQuery("keywords", o.Keywords).
		WithQuery("keywords_threshold", o.KeywordsThreshold).
		WithQuery("max_alternatives", o.MaxAlternatives).
		WithQuery("word_alternatives_threshold", o.WordAlternativesThreshold).
		WithQuery("word_confidence", o.WordConfidence).
		WithQuery("timestamps", o.Timestamps).
		WithQuery("profanity_filter", o.ProfanityFilter).
		WithQuery("smart_formatting", o.SmartFormatting).
		WithQuery("speaker_labels", o.SpeakerLabels)
}

// Recognize sends audio through the sessionless HTTP interface. The content
// type may be left blank when the service can detect the format.
func (s *Service) Recognize(ctx context.Context, audio []byte, contentType string, opts RecognizeOptions) (SpeechRecognitionResults, error) {
	if err := core.Require(core.Arg("audio", audio)); err != nil {
		return SpeechRecognitionResults{}, err
	}
	req := opts.apply(core.NewRequest(http.MethodPost, "/v1/recognize")).
		WithBytes(audio, contentType)
	return core.Invoke[SpeechRecognitionResults](ctx, s.invoker, req)
}

type CreateJobOptions struct {
	CallbackURL string
	Events      string
	UserToken   string
	ResultsTTL  *int64
	RecognizeOptions
}

func (s *Service) CreateJob(ctx context.Context, audio []byte, contentType string, opts CreateJobOptions) (RecognitionJob, error) {
	if err := core.Require(core.Arg("audio", audio), core.Arg("content_type", contentType)); err != nil {
		return RecognitionJob{}, err
	}
	req := core.NewRequest(http.MethodPost, "/v1/recognitions").
		WithQuery("callback_url", opts.CallbackURL).
		WithQuery("events", opts.Events).
		WithQuery("user_token", opts.UserToken).
		WithQuery("results_ttl", opts.ResultsTTL)
	req = opts.RecognizeOptions.apply(req).WithBytes(audio, contentType)
	return core.Invoke[RecognitionJob](ctx, s.invoker, req)
}

func (s *Service) CheckJob(ctx context.Context, id string) (RecognitionJob, error) {
	if err := core.Require(core.Arg("id", id)); err != nil {
		return RecognitionJob{}, err
	}
	return core.Invoke[RecognitionJob](ctx, s.invoker,
		core.NewRequest(http.MethodGet, "/v1/recognitions/{id}").WithPathParam("id", id))
}

func (s *Service) CheckJobs(ctx context.Context) (RecognitionJobs, error) {
	return core.Invoke[RecognitionJobs](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/recognitions"))
}

func (s *Service) DeleteJob(ctx context.Context, id string) error {
	if err := core.Require(core.Arg("id", id)); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, core.NewRequest(http.MethodDelete, "/v1/recognitions/{id}").WithPathParam("id", id))
}

func (s *Service) RegisterCallback(ctx context.Context, callbackURL, userSecret string) (RegisterStatus, error) {
	if err := core.Require(core.Arg("callback_url", callbackURL)); err != nil {
		return RegisterStatus{}, err
	}
	return core.Invoke[RegisterStatus](ctx, s.invoker, core.NewRequest(http.MethodPost, "/v1/register_callback").
		WithQuery("callback_url", callbackURL).
		WithQuery("user_secret", userSecret))
}

func (s *Service) UnregisterCallback(ctx context.Context, callbackURL string) error {
	if err := core.Require(core.Arg("callback_url", callbackURL)); err != nil {
		return err
	}
	return s.invoker.Exec(ctx, core.NewRequest(http.MethodPost, "/v1/unregister_callback").
		WithQuery("callback_url", callbackURL))
}
