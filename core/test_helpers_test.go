package core

import (
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) Logger {
	return s
}

type stubLoggerProvider struct {
	logger Logger
}

func (s stubLoggerProvider) GetLogger(string) Logger {
	return s.logger
}

type mapRawLoader struct {
	values map[string]any
}

func (l mapRawLoader) LoadRaw(context.Context) (map[string]any, error) {
	out := make(map[string]any, len(l.values))
	for key, value := range l.values {
		out[key] = value
	}
	return out, nil
}

type recordingTransport struct {
	mu       sync.Mutex
	calls    atomic.Int64
	requests []TransportRequest
	respond  func(TransportRequest) (TransportResponse, error)
}

func (t *recordingTransport) Kind() string { return "recording" }

func (t *recordingTransport) Do(_ context.Context, req TransportRequest) (TransportResponse, error) {
	t.calls.Add(1)
	t.mu.Lock()
	t.requests = append(t.requests, req)
	t.mu.Unlock()
	if t.respond == nil {
		return TransportResponse{StatusCode: 200, Body: []byte(`{}`)}, nil
	}
	return t.respond(req)
}

func (t *recordingTransport) last() TransportRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return TransportRequest{}
	}
	return t.requests[len(t.requests)-1]
}

func jsonResponse(status int, body string) func(TransportRequest) (TransportResponse, error) {
	return func(TransportRequest) (TransportResponse, error) {
		return TransportResponse{
			StatusCode: status,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       []byte(body),
		}, nil
	}
}

func streamResponse(status int, payload string) func(TransportRequest) (TransportResponse, error) {
	return func(TransportRequest) (TransportResponse, error) {
		return TransportResponse{
			StatusCode: status,
			Headers:    map[string]string{"Content-Type": "audio/wav"},
			Stream:     io.NopCloser(strings.NewReader(payload)),
		}, nil
	}
}

func newTestInvoker(transport TransportAdapter, opts ...Option) (*Invoker, error) {
	base := []Option{
		WithTransport(transport),
		WithLogger(stubLogger{}),
		WithRequestIDGenerator(func() string { return "req-1" }),
		WithDefaults(Config{ServiceName: "speech_to_text", URL: "https://stream.watsonplatform.net/speech-to-text/api"}),
	}
	return NewInvoker(Config{
		Auth: AuthConfig{Type: AuthKindBasic, Username: "user", Password: "pass"},
	}, append(base, opts...)...)
}
