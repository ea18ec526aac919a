package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/sync/errgroup"
)

type speechModel struct {
	Name string `json:"name"`
	Rate int    `json:"rate"`
}

func TestInvoke_DecodesTypedBody(t *testing.T) {
	transport := &recordingTransport{respond: jsonResponse(200, `{"name":"en-US_BroadbandModel","rate":16000}`)}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}

	model, err := Invoke[speechModel](context.Background(), inv,
		NewRequest(http.MethodGet, "/v1/models/{model_id}").WithPathParam("model_id", "en-US_BroadbandModel"))
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if model.Name != "en-US_BroadbandModel" || model.Rate != 16000 {
		t.Fatalf("unexpected model %+v", model)
	}
	req := transport.last()
	if req.URL != "https://stream.watsonplatform.net/speech-to-text/api/v1/models/en-US_BroadbandModel" {
		t.Fatalf("unexpected url %q", req.URL)
	}
	if req.Method != http.MethodGet {
		t.Fatalf("unexpected method %q", req.Method)
	}
	if got := req.Headers[AuthorizationHeader]; got != "Basic dXNlcjpwYXNz" {
		t.Fatalf("expected basic auth header, got %q", got)
	}
	if got := req.Headers[RequestIDHeader]; got != "req-1" {
		t.Fatalf("expected request id header, got %q", got)
	}
	if got := req.Headers["Accept"]; got != ContentTypeJSON {
		t.Fatalf("expected json accept, got %q", got)
	}
}

func TestInvoke_MissingPathParamFailsWithoutNetwork(t *testing.T) {
	transport := &recordingTransport{}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}

	_, err = Invoke[speechModel](context.Background(), inv, NewRequest(http.MethodGet, "/v1/models/{model_id}"))
	if FaultKindOf(err) != FaultArgument {
		t.Fatalf("expected argument fault, got %v", err)
	}
	if got := MissingArguments(err); len(got) != 1 || got[0] != "model_id" {
		t.Fatalf("expected model_id to be named, got %v", got)
	}
	if transport.calls.Load() != 0 {
		t.Fatalf("expected zero network calls, got %d", transport.calls.Load())
	}
}

func TestInvoke_OmitsAbsentQueryAndHeaders(t *testing.T) {
	transport := &recordingTransport{}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	var threshold *float64
	var customization *string

	err = inv.Exec(context.Background(), NewRequest(http.MethodPost, "/v1/recognize").
		WithQuery("model", "en-US_NarrowbandModel").
		WithQuery("customization_id", customization).
		WithQuery("keywords_threshold", threshold).
		WithQuery("keywords", []string{"alpha", "beta"}).
		WithQuery("word_alternatives_threshold", 0.25).
		WithQuery("inactivity_timeout", 30).
		WithQuery("profanity_filter", false).
		WithHeader("Transfer-Encoding", "").
		WithHeader("X-Custom", nil).
		WithBytes([]byte("RIFF"), "audio/wav"))
	if err != nil {
		t.Fatalf("exec: %v", err)
	}

	req := transport.last()
	want := []QueryParam{
		{Key: "model", Value: "en-US_NarrowbandModel"},
		{Key: "keywords", Value: "alpha,beta"},
		{Key: "word_alternatives_threshold", Value: "0.25"},
		{Key: "inactivity_timeout", Value: "30"},
		{Key: "profanity_filter", Value: "false"},
	}
	if len(req.Query) != len(want) {
		t.Fatalf("expected %d query params, got %+v", len(want), req.Query)
	}
	for index, param := range want {
		if req.Query[index] != param {
			t.Fatalf("query[%d]: expected %+v, got %+v", index, param, req.Query[index])
		}
	}
	if _, ok := req.Headers["Transfer-Encoding"]; ok {
		t.Fatalf("expected empty header to be omitted")
	}
	if _, ok := req.Headers["X-Custom"]; ok {
		t.Fatalf("expected nil header to be omitted")
	}
	if req.Headers["Content-Type"] != "audio/wav" {
		t.Fatalf("expected audio content type, got %q", req.Headers["Content-Type"])
	}
	if string(req.Body) != "RIFF" {
		t.Fatalf("expected raw body, got %q", req.Body)
	}
}

func TestInvoke_ProtocolFaultCarriesStatusAndServiceError(t *testing.T) {
	transport := &recordingTransport{respond: func(TransportRequest) (TransportResponse, error) {
		return TransportResponse{
			StatusCode: http.StatusNotFound,
			Headers:    map[string]string{TransactionIDHeader: "tx-42"},
			Body:       []byte(`{"code":404,"error":"Model en-XX not found"}`),
		}, nil
	}}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}

	_, err = Invoke[speechModel](context.Background(), inv,
		NewRequest(http.MethodGet, "/v1/models/{model_id}").WithPathParam("model_id", "en-XX"))
	if FaultKindOf(err) != FaultProtocol {
		t.Fatalf("expected protocol fault, got %v", err)
	}
	if StatusCodeOf(err) != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", StatusCodeOf(err))
	}
	serviceErr, ok := ServiceErrorOf(err)
	if !ok || serviceErr.Error != "Model en-XX not found" {
		t.Fatalf("expected decoded service error, got %+v ok=%v", serviceErr, ok)
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope")
	}
	if rich.Category != goerrors.CategoryNotFound {
		t.Fatalf("expected not_found category, got %q", rich.Category)
	}
	if rich.Metadata["transaction_id"] != "tx-42" {
		t.Fatalf("expected transaction id metadata, got %#v", rich.Metadata)
	}
	if rich.RequestID != "req-1" {
		t.Fatalf("expected request id on fault, got %q", rich.RequestID)
	}
}

func TestInvoke_ProtocolFaultWithoutServiceBody(t *testing.T) {
	transport := &recordingTransport{respond: func(TransportRequest) (TransportResponse, error) {
		return TransportResponse{StatusCode: http.StatusServiceUnavailable, Body: []byte("<html>down</html>")}, nil
	}}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	err = inv.Exec(context.Background(), NewRequest(http.MethodGet, "/v1/models"))
	if StatusCodeOf(err) != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 protocol fault, got %v", err)
	}
	if _, ok := ServiceErrorOf(err); ok {
		t.Fatalf("expected no structured service error for html body")
	}
}

func TestInvoke_TransportFaultIsFlattened(t *testing.T) {
	inner := errors.New("connection refused")
	transport := &recordingTransport{respond: func(TransportRequest) (TransportResponse, error) {
		return TransportResponse{}, errors.Join(&url.Error{Op: "Get", URL: "https://x", Err: inner}, errors.New("secondary"))
	}}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}

	err = inv.Exec(context.Background(), NewRequest(http.MethodGet, "/v1/models"))
	if FaultKindOf(err) != FaultTransport {
		t.Fatalf("expected transport fault, got %v", err)
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope")
	}
	if rich.Source != inner {
		t.Fatalf("expected flattened inner cause, got %v", rich.Source)
	}
	if transport.calls.Load() != 1 {
		t.Fatalf("expected exactly one attempt, got %d", transport.calls.Load())
	}
}

func TestInvoke_DeserializationFault(t *testing.T) {
	transport := &recordingTransport{respond: jsonResponse(200, `{"name":`)}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	_, err = Invoke[speechModel](context.Background(), inv, NewRequest(http.MethodGet, "/v1/models/x"))
	if FaultKindOf(err) != FaultDeserialization {
		t.Fatalf("expected deserialization fault, got %v", err)
	}
}

func TestInvoke_EmptyBodyYieldsZeroValue(t *testing.T) {
	transport := &recordingTransport{respond: jsonResponse(204, "")}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	model, err := Invoke[speechModel](context.Background(), inv, NewRequest(http.MethodDelete, "/v1/models/x"))
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if model != (speechModel{}) {
		t.Fatalf("expected zero value, got %+v", model)
	}
}

func TestInvoke_JSONBodyAndVersion(t *testing.T) {
	transport := &recordingTransport{}
	inv, err := NewInvoker(Config{Auth: AuthConfig{Type: AuthKindBearer, BearerToken: "tok"}},
		WithTransport(transport),
		WithLogger(stubLogger{}),
		WithDefaults(Config{ServiceName: "language_translator", URL: "https://gateway.watsonplatform.net/language-translator/api", Version: "2018-05-01"}),
	)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	err = inv.Exec(context.Background(), NewRequest(http.MethodPost, "/v3/translate").
		WithJSON(map[string]any{"text": []string{"hello"}, "model_id": "en-es"}))
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	req := transport.last()
	if req.Headers["Content-Type"] != ContentTypeJSON {
		t.Fatalf("expected json content type, got %q", req.Headers["Content-Type"])
	}
	if !strings.Contains(string(req.Body), `"model_id":"en-es"`) {
		t.Fatalf("unexpected body %s", req.Body)
	}
	if len(req.Query) != 1 || req.Query[0] != (QueryParam{Key: "version", Value: "2018-05-01"}) {
		t.Fatalf("expected version query, got %+v", req.Query)
	}
	if req.Headers[AuthorizationHeader] != "Bearer tok" {
		t.Fatalf("expected bearer header, got %q", req.Headers[AuthorizationHeader])
	}
}

func TestInvoke_TimeoutPrecedence(t *testing.T) {
	transport := &recordingTransport{}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	if err := inv.Exec(context.Background(), NewRequest(http.MethodGet, "/v1/models")); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if transport.last().Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", transport.last().Timeout)
	}
	if err := inv.Exec(context.Background(), NewRequest(http.MethodGet, "/v1/models").WithTimeout(2*time.Second)); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if transport.last().Timeout != 2*time.Second {
		t.Fatalf("expected per-call timeout, got %s", transport.last().Timeout)
	}
}

func TestInvoke_UnsupportedMethodIsBadInput(t *testing.T) {
	transport := &recordingTransport{}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	err = inv.Exec(context.Background(), NewRequest("PATCH", "/v1/models"))
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != WatsonErrorBadInput {
		t.Fatalf("expected bad input fault, got %v", err)
	}
	if transport.calls.Load() != 0 {
		t.Fatalf("expected zero network calls")
	}
}

func TestStream_ReturnsUnreadBody(t *testing.T) {
	transport := &recordingTransport{respond: streamResponse(200, "RIFFDATA")}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	res, err := inv.Stream(context.Background(), NewRequest(http.MethodPost, "/v1/synthesize").WithAccept("audio/wav"))
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer res.Close()
	if !transport.last().Stream {
		t.Fatalf("expected stream flag on transport request")
	}
	payload, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(payload) != "RIFFDATA" {
		t.Fatalf("unexpected payload %q", payload)
	}
	if res.Headers.Get("Content-Type") != "audio/wav" {
		t.Fatalf("unexpected content type %q", res.Headers.Get("Content-Type"))
	}
}

func TestInvoke_ConcurrentCallsShareConfig(t *testing.T) {
	transport := &recordingTransport{respond: func(req TransportRequest) (TransportResponse, error) {
		return TransportResponse{StatusCode: 200, Body: []byte(fmt.Sprintf(`{"name":%q}`, req.Query[0].Value))}, nil
	}}
	inv, err := newTestInvoker(transport)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}

	group, ctx := errgroup.WithContext(context.Background())
	for index := 0; index < 32; index++ {
		name := fmt.Sprintf("model-%d", index)
		group.Go(func() error {
			model, err := Invoke[speechModel](ctx, inv, NewRequest(http.MethodGet, "/v1/models").WithQuery("name", name))
			if err != nil {
				return err
			}
			if model.Name != name {
				return fmt.Errorf("expected %s, got %s", name, model.Name)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		t.Fatalf("concurrent invoke: %v", err)
	}
	if transport.calls.Load() != 32 {
		t.Fatalf("expected 32 calls, got %d", transport.calls.Load())
	}
}

func TestInvoke_LearningOptOutAndDefaultHeaders(t *testing.T) {
	transport := &recordingTransport{}
	inv, err := newTestInvoker(transport, WithDefaults(Config{
		ServiceName:    "speech_to_text",
		URL:            "https://stream.watsonplatform.net/speech-to-text/api",
		LearningOptOut: true,
		Headers:        map[string]string{"X-Tenant": "acme"},
	}))
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	if err := inv.Exec(context.Background(), NewRequest(http.MethodGet, "/v1/models")); err != nil {
		t.Fatalf("exec: %v", err)
	}
	req := transport.last()
	if req.Headers[LearningOptOutHeader] != "true" {
		t.Fatalf("expected learning opt-out header, got %#v", req.Headers)
	}
	if req.Headers["X-Tenant"] != "acme" {
		t.Fatalf("expected default header, got %#v", req.Headers)
	}
}

func TestAuthorizeHeaders(t *testing.T) {
	inv, err := newTestInvoker(&recordingTransport{})
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	headers := http.Header{}
	if err := inv.AuthorizeHeaders(context.Background(), headers); err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if headers.Get(AuthorizationHeader) != "Basic dXNlcjpwYXNz" {
		t.Fatalf("expected basic header, got %q", headers.Get(AuthorizationHeader))
	}
}

func TestNewInvoker_RequiresCredentials(t *testing.T) {
	_, err := NewInvoker(Config{Auth: AuthConfig{Type: AuthKindBasic, Username: "user"}},
		WithTransport(&recordingTransport{}),
		WithDefaults(Config{ServiceName: "speech_to_text", URL: "https://stream.watsonplatform.net/speech-to-text/api"}),
	)
	if FaultKindOf(err) != FaultArgument {
		t.Fatalf("expected argument fault, got %v", err)
	}
	if got := MissingArguments(err); len(got) != 1 || got[0] != "password" {
		t.Fatalf("expected password to be named, got %v", got)
	}
}

func TestNewInvoker_RequiresTransport(t *testing.T) {
	_, err := NewInvoker(Config{Auth: AuthConfig{Type: AuthKindNone}},
		WithDefaults(Config{ServiceName: "speech_to_text", URL: "https://example.com"}),
	)
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != WatsonErrorInternal {
		t.Fatalf("expected internal fault, got %v", err)
	}
}

func TestNewInvoker_DefaultDependencies(t *testing.T) {
	inv, err := NewInvoker(Config{Auth: AuthConfig{Type: AuthKindNone}},
		WithTransport(&recordingTransport{}),
		WithDefaults(Config{ServiceName: "speech_to_text", URL: "https://example.com/api/"}),
	)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	deps := inv.Dependencies()
	if deps.Logger == nil || deps.LoggerProvider == nil {
		t.Fatalf("expected default logger and provider")
	}
	if deps.ErrorMapper == nil || deps.MetricsRecorder == nil || deps.Codec == nil {
		t.Fatalf("expected default error mapper, metrics recorder and codec")
	}
	if inv.Endpoint() != "https://example.com/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", inv.Endpoint())
	}
	if inv.Config().Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", inv.Config().Timeout)
	}
}

func TestNewInvoker_WithAuthenticatorFactory(t *testing.T) {
	var seen AuthConfig
	inv, err := NewInvoker(Config{Auth: AuthConfig{Type: AuthKindIAM, APIKey: "key"}},
		WithTransport(&recordingTransport{}),
		WithDefaults(Config{ServiceName: "speech_to_text", URL: "https://example.com"}),
		WithAuthenticatorFactory(func(cfg AuthConfig) (Authenticator, error) {
			seen = cfg
			return BearerTokenAuthenticator{Token: "exchanged"}, nil
		}),
	)
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}
	if seen.APIKey != "key" || seen.IAMURL != DefaultIAMURL {
		t.Fatalf("expected resolved auth config, got %+v", seen)
	}
	if inv.Dependencies().Authenticator.Kind() != AuthKindBearer {
		t.Fatalf("expected factory authenticator")
	}
}
