// Package watson builds authenticated clients for the Watson services and
// exposes them through command and query handlers.
package watson

import (
	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/credentials"
	"github.com/goliatone/go-watson/services/discovery"
	"github.com/goliatone/go-watson/services/languagetranslator"
	"github.com/goliatone/go-watson/services/personalityinsights"
	"github.com/goliatone/go-watson/services/speechtotext"
	"github.com/goliatone/go-watson/services/texttospeech"
)

type Config = core.Config

type AuthConfig = core.AuthConfig

type Option = core.Option

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithMetricsRecorder = core.WithMetricsRecorder
	WithErrorMapper     = core.WithErrorMapper
	WithConfigProvider  = core.WithConfigProvider
	WithOptionsResolver = core.WithOptionsResolver
	WithTransport       = core.WithTransport
	WithAuthenticator   = core.WithAuthenticator
	WithCodec           = core.WithCodec
)

// Services selects the services a Client connects to. A nil entry leaves
// that service out.
type Services struct {
	SpeechToText        *Config
	TextToSpeech        *Config
	LanguageTranslator  *Config
	PersonalityInsights *Config
	Discovery           *Config
	// CredentialSources loads each enabled service from the credentials file
	// and environment before the explicit config is applied.
	CredentialSources bool
}

// AllServices enables every service with credentials read from the
// environment.
func AllServices() Services {
	return Services{
		SpeechToText:        &Config{},
		TextToSpeech:        &Config{},
		LanguageTranslator:  &Config{},
		PersonalityInsights: &Config{},
		Discovery:           &Config{},
		CredentialSources:   true,
	}
}

type Client struct {
	SpeechToText        *speechtotext.Service
	TextToSpeech        *texttospeech.Service
	LanguageTranslator  *languagetranslator.Service
	PersonalityInsights *personalityinsights.Service
	Discovery           *discovery.Service
}

// New builds one service client per enabled entry. opts apply to every
// service.
func New(services Services, opts ...Option) (*Client, error) {
	client := &Client{}
	var err error
	if services.SpeechToText != nil {
		if client.SpeechToText, err = speechtotext.New(*services.SpeechToText, services.options(speechtotext.ServiceName, opts)...); err != nil {
			return nil, err
		}
	}
	if services.TextToSpeech != nil {
		if client.TextToSpeech, err = texttospeech.New(*services.TextToSpeech, services.options(texttospeech.ServiceName, opts)...); err != nil {
			return nil, err
		}
	}
	if services.LanguageTranslator != nil {
		if client.LanguageTranslator, err = languagetranslator.New(*services.LanguageTranslator, services.options(languagetranslator.ServiceName, opts)...); err != nil {
			return nil, err
		}
	}
	if services.PersonalityInsights != nil {
		if client.PersonalityInsights, err = personalityinsights.New(*services.PersonalityInsights, services.options(personalityinsights.ServiceName, opts)...); err != nil {
			return nil, err
		}
	}
	if services.Discovery != nil {
		if client.Discovery, err = discovery.New(*services.Discovery, services.options(discovery.ServiceName, opts)...); err != nil {
			return nil, err
		}
	}
	return client, nil
}

func (s Services) options(service string, opts []Option) []Option {
	if !s.CredentialSources {
		return opts
	}
	out := make([]Option, 0, len(opts)+1)
	out = append(out, credentials.WithDefaultSources(service))
	return append(out, opts...)
}
