// Package texttospeech is the client for the Watson Text to Speech service.
package texttospeech

import (
	"context"
	"net/http"

	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/services"
)

const (
	ServiceName = "text_to_speech"
	DefaultURL  = "https://stream.watsonplatform.net/text-to-speech/api"
)

// Audio formats accepted by Synthesize.
const (
	AudioBasic = "audio/basic"
	AudioFLAC  = "audio/flac"
	AudioL16   = "audio/l16;rate=22050"
	AudioMP3   = "audio/mp3"
	AudioOgg   = "audio/ogg;codecs=opus"
	AudioWAV   = "audio/wav"
	AudioWebM  = "audio/webm"
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

func (s *Service) GetVoice(ctx context.Context, voice, customizationID string) (Voice, error) {
	if err := core.Require(core.Arg("voice", voice)); err != nil {
		return Voice{}, err
	}
	return core.Invoke[Voice](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/voices/{voice}").
		WithPathParam("voice", voice).
		WithQuery("customization_id", customizationID))
}

func (s *Service) ListVoices(ctx context.Context) (Voices, error) {
	return core.Invoke[Voices](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/voices"))
}

type SynthesizeOptions struct {
	Voice           string
	CustomizationID string
}

// Synthesize returns the audio stream for text in the accept format. The
// caller must close the returned response.
func (s *Service) Synthesize(ctx context.Context, text *Text, accept string, opts SynthesizeOptions) (*core.StreamResponse, error) {
	if err := core.Require(core.Arg("text", text), core.Arg("accept", accept)); err != nil {
		return nil, err
	}
	return s.invoker.Stream(ctx, core.NewRequest(http.MethodPost, "/v1/synthesize").
		WithAccept(accept).
		WithQuery("voice", opts.Voice).
		WithQuery("customization_id", opts.CustomizationID).
		WithJSON(text))
}

type PronunciationOptions struct {
	Voice string
	// Format is ipa or ibm.
	Format          string
	CustomizationID string
}

func (s *Service) GetPronunciation(ctx context.Context, text string, opts PronunciationOptions) (Pronunciation, error) {
	if err := core.Require(core.Arg("text", text)); err != nil {
		return Pronunciation{}, err
	}
	return core.Invoke[Pronunciation](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/pronunciation").
		WithQuery("text", text).
		WithQuery("voice", opts.Voice).
		WithQuery("format", opts.Format).
		WithQuery("customization_id", opts.CustomizationID))
}
