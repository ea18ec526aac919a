// Package personalityinsights is the client for the Watson Personality
// Insights v3 service.
package personalityinsights

import (
	"context"
	"mime"
	"net/http"

	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/services"
)

const (
	ServiceName    = "personality_insights"
	DefaultURL     = "https://gateway.watsonplatform.net/personality-insights/api"
	DefaultVersion = "2017-10-13"

	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"
	ContentTypeHTML = "text/html"
	ContentTypeCSV  = "text/csv"
)

var Definition = services.Definition{Name: ServiceName, DefaultURL: DefaultURL, DefaultVersion: DefaultVersion}

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

type ProfileOptions struct {
	ContentLanguage        string
	AcceptLanguage         string
	RawScores              *bool
	CSVHeaders             *bool
	ConsumptionPreferences *bool
}

// Profile analyses content and returns the personality profile. contentType
// is application/json, text/plain or text/html, optionally with a charset.
// Plain and HTML requests send the joined item contents as the body.
func (s *Service) Profile(ctx context.Context, content *Content, contentType string, opts ProfileOptions) (Profile, error) {
	req, err := profileRequest(content, contentType, opts)
	if err != nil {
		return Profile{}, err
	}
	return core.Invoke[Profile](ctx, s.invoker, req.WithAccept(ContentTypeJSON))
}

// ProfileCSV is Profile with a text/csv response, returned as is.
func (s *Service) ProfileCSV(ctx context.Context, content *Content, contentType string, opts ProfileOptions) (string, error) {
	req, err := profileRequest(content, contentType, opts)
	if err != nil {
		return "", err
	}
	res, err := s.invoker.Do(ctx, req.WithAccept(ContentTypeCSV))
	if err != nil {
		return "", err
	}
	return string(res.Body), nil
}

func profileRequest(content *Content, contentType string, opts ProfileOptions) (*core.Request, error) {
	if err := core.Require(core.Arg("content", content), core.Arg("content_type", contentType)); err != nil {
		return nil, err
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, core.BadInputFault("personalityinsights: malformed content type", map[string]any{"content_type": contentType})
	}
	req := core.NewRequest(http.MethodPost, "/v3/profile").
		WithHeader("Content-Type", contentType).
		WithHeader("Content-Language", opts.ContentLanguage).
		WithHeader("Accept-Language", opts.AcceptLanguage).
		WithQuery("raw_scores", opts.RawScores).
		WithQuery("csv_headers", opts.CSVHeaders).
		WithQuery("consumption_preferences", opts.ConsumptionPreferences)
	switch mediaType {
	case ContentTypeJSON:
		return req.WithJSON(content), nil
	case ContentTypeText, ContentTypeHTML:
		return req.WithBytes([]byte(content.PlainText()), contentType), nil
	default:
		return nil, core.BadInputFault("personalityinsights: unsupported content type", map[string]any{"content_type": contentType})
	}
}
