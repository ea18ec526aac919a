package core

import (
	"context"
	"io"
	"net/http"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type AuthKind string

const (
	AuthKindBasic  AuthKind = "basic"
	AuthKindBearer AuthKind = "bearer"
	AuthKindIAM    AuthKind = "iam"
	AuthKindNone   AuthKind = "none"
)

// Authenticator attaches credentials to an outgoing request. Implementations
// hold immutable credentials and must be safe for concurrent use.
type Authenticator interface {
	Kind() AuthKind
	Validate() error
	Authenticate(ctx context.Context, req *TransportRequest) error
}

type AuthenticatorFactory func(cfg AuthConfig) (Authenticator, error)

type QueryParam struct {
	Key   string
	Value string
}

type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Query                []QueryParam
	Body                 []byte
	Metadata             map[string]any
	Timeout              time.Duration
	MaxResponseBodyBytes int64
	Stream               bool
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	// Stream is only set for stream requests that completed with a 2xx status.
	Stream   io.ReadCloser
	Metadata map[string]any
}

type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

type Codec interface {
	ContentType() string
	Marshal(value any) ([]byte, error)
	Unmarshal(data []byte, target any) error
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	RequestID  string
}

type StreamResponse struct {
	StatusCode int
	Headers    http.Header
	Body       io.ReadCloser
	RequestID  string
}

func (r *StreamResponse) Close() error {
	if r == nil || r.Body == nil {
		return nil
	}
	return r.Body.Close()
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
