package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-watson/core"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const KindREST = "rest"

const defaultRESTClientTimeout = 30 * time.Second
const defaultRESTResponseBodyLimit = core.DefaultMaxResponseBodyBytes

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type RESTAdapter struct {
	Client               HTTPDoer
	DefaultHeaders       map[string]string
	MaxResponseBodyBytes int64
}

// NewRESTAdapter uses client or, when nil, a traced http.Client.
func NewRESTAdapter(client HTTPDoer) *RESTAdapter {
	if client == nil {
		client = NewHTTPClient(defaultRESTClientTimeout, true)
	}
	return &RESTAdapter{
		Client:               client,
		DefaultHeaders:       map[string]string{},
		MaxResponseBodyBytes: defaultRESTResponseBodyLimit,
	}
}

// NewHTTPClient builds the default client. Per-call timeouts are applied
// through the request context, so timeout only bounds calls made without one.
func NewHTTPClient(timeout time.Duration, traced bool) *http.Client {
	var roundTripper http.RoundTripper = http.DefaultTransport
	if traced {
		roundTripper = otelhttp.NewTransport(roundTripper)
	}
	client := &http.Client{Transport: roundTripper}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return client
}

// FromConfig is the transport factory services use by default.
func FromConfig(cfg core.Config) core.TransportAdapter {
	adapter := NewRESTAdapter(NewHTTPClient(0, !cfg.DisableTracing))
	if cfg.MaxResponseBodyBytes > 0 {
		adapter.MaxResponseBodyBytes = cfg.MaxResponseBodyBytes
	}
	return adapter
}

func (*RESTAdapter) Kind() string {
	return KindREST
}

func (a *RESTAdapter) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil || a.Client == nil {
		return core.TransportResponse{}, transportError(
			"transport: rest adapter requires an http client",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			map[string]any{"adapter": KindREST},
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.TrimSpace(strings.ToUpper(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	target, err := buildURL(req.URL, req.Query)
	if err != nil {
		return core.TransportResponse{}, err
	}

	requestCtx := ctx
	cancel := context.CancelFunc(func() {})
	if req.Timeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, req.Timeout)
	}
	releaseOnReturn := true
	defer func() {
		if releaseOnReturn {
			cancel()
		}
	}()

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(requestCtx, method, target, body)
	if err != nil {
		return core.TransportResponse{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: create http request",
			http.StatusBadRequest,
			map[string]any{"adapter": KindREST, "method": method, "url": target},
		)
	}
	for key, value := range a.DefaultHeaders {
		if strings.TrimSpace(key) == "" {
			continue
		}
		httpReq.Header.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	for key, value := range req.Headers {
		if strings.TrimSpace(key) == "" {
			continue
		}
		httpReq.Header.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	startedAt := time.Now().UTC()
	httpRes, err := a.Client.Do(httpReq)
	if err != nil {
		return core.TransportResponse{}, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: execute http request",
			http.StatusBadGateway,
			map[string]any{"adapter": KindREST, "method": method, "url": target},
		)
	}

	metadata := map[string]any{"kind": KindREST}
	if req.Stream && httpRes.StatusCode >= 200 && httpRes.StatusCode <= 299 {
		releaseOnReturn = false
		metadata["duration_ms"] = time.Since(startedAt).Milliseconds()
		return core.TransportResponse{
			StatusCode: httpRes.StatusCode,
			Headers:    flattenHeaders(httpRes.Header),
			Stream:     &cancelOnClose{ReadCloser: httpRes.Body, cancel: cancel},
			Metadata:   metadata,
		}, nil
	}
	defer httpRes.Body.Close()

	maxBodyBytes := resolveResponseBodyLimit(req.MaxResponseBodyBytes, a.MaxResponseBodyBytes)
	payload, err := io.ReadAll(io.LimitReader(httpRes.Body, maxBodyBytes+1))
	if err != nil {
		return core.TransportResponse{}, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: read response body",
			http.StatusBadGateway,
			map[string]any{"adapter": KindREST, "status_code": httpRes.StatusCode},
		)
	}
	if int64(len(payload)) > maxBodyBytes {
		return core.TransportResponse{}, transportError(
			fmt.Sprintf("transport: response body exceeds limit of %d bytes", maxBodyBytes),
			goerrors.CategoryExternal,
			http.StatusBadGateway,
			map[string]any{
				"adapter":          KindREST,
				"status_code":      httpRes.StatusCode,
				"response_limit_b": maxBodyBytes,
			},
		)
	}
	metadata["duration_ms"] = time.Since(startedAt).Milliseconds()

	return core.TransportResponse{
		StatusCode: httpRes.StatusCode,
		Headers:    flattenHeaders(httpRes.Header),
		Body:       payload,
		Metadata:   metadata,
	}, nil
}

// buildURL appends query params in order after any query already present on
// the URL.
func buildURL(raw string, query []core.QueryParam) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: invalid request url",
			http.StatusBadRequest,
			map[string]any{"adapter": KindREST, "url": strings.TrimSpace(raw)},
		)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", transportError(
			"transport: request url must be absolute",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			map[string]any{"adapter": KindREST, "url": strings.TrimSpace(raw)},
		)
	}
	var encoded strings.Builder
	encoded.WriteString(parsed.RawQuery)
	for _, param := range query {
		key := strings.TrimSpace(param.Key)
		if key == "" {
			continue
		}
		if encoded.Len() > 0 {
			encoded.WriteByte('&')
		}
		encoded.WriteString(url.QueryEscape(key))
		encoded.WriteByte('=')
		encoded.WriteString(url.QueryEscape(param.Value))
	}
	parsed.RawQuery = encoded.String()
	return parsed.String(), nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

func flattenHeaders(headers http.Header) map[string]string {
	if len(headers) == 0 {
		return map[string]string{}
	}
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		flat[key] = strings.Join(values, ",")
	}
	return flat
}

func resolveResponseBodyLimit(requestLimit int64, adapterLimit int64) int64 {
	if requestLimit > 0 {
		return requestLimit
	}
	if adapterLimit > 0 {
		return adapterLimit
	}
	return defaultRESTResponseBodyLimit
}

var _ core.TransportAdapter = (*RESTAdapter)(nil)
