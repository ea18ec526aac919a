package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

const (
	RequestIDHeader     = "X-Request-Id"
	TransactionIDHeader = "X-Global-Transaction-Id"
)

// Invoker performs authenticated calls against one Watson service endpoint.
// It is immutable after construction and safe for concurrent use.
type Invoker struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorMapper     ErrorMapper
	transport       TransportAdapter
	authenticator   Authenticator
	codec           Codec
	requestIDs      func() string
	defaultHeaders  http.Header
}

type InvokerDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorMapper     ErrorMapper
	Transport       TransportAdapter
	Authenticator   Authenticator
	Codec           Codec
}

func NewInvoker(cfg Config, opts ...Option) (*Invoker, error) {
	builder := defaultInvokerBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	if builder.errorMapper == nil {
		builder.errorMapper = DefaultErrorMapper
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.codec == nil {
		builder.codec = JSONCodec{}
	}
	if builder.requestIDs == nil {
		builder.requestIDs = uuid.NewString
	}

	defaults := builder.defaults
	if strings.TrimSpace(defaults.ServiceName) == "" {
		defaults.ServiceName = DefaultConfig().ServiceName
	}
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	resolved, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	provider, logger := glog.Resolve("watson", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil && builder.logger == nil {
		if named := provider.GetLogger("watson." + resolved.ServiceName); named != nil {
			logger = glog.Ensure(named)
		}
	}

	authenticator := builder.authenticator
	if authenticator == nil {
		factory := builder.authenticatorFactory
		if factory == nil {
			factory = StaticAuthenticatorFactory
		}
		authenticator, err = factory(resolved.Auth)
		if err != nil {
			return nil, mapBuildError(builder.errorMapper, err)
		}
	}
	if authenticator == nil {
		return nil, InternalFault("watson: authenticator is not configured")
	}
	if err := authenticator.Validate(); err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	adapter := builder.transport
	if adapter == nil && builder.transportFactory != nil {
		adapter = builder.transportFactory(resolved)
	}
	if adapter == nil {
		return nil, InternalFault("watson: transport is not configured")
	}

	return &Invoker{
		config:          resolved,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorMapper:     builder.errorMapper,
		transport:       adapter,
		authenticator:   authenticator,
		codec:           builder.codec,
		requestIDs:      builder.requestIDs,
		defaultHeaders:  defaultHTTPHeaders(resolved),
	}, nil
}

// StaticAuthenticatorFactory covers the credential kinds core can sign
// without a token exchange.
func StaticAuthenticatorFactory(cfg AuthConfig) (Authenticator, error) {
	switch cfg.EffectiveType() {
	case AuthKindBasic:
		return BasicAuthenticator{Username: cfg.Username, Password: cfg.Password}, nil
	case AuthKindBearer:
		return BearerTokenAuthenticator{Token: cfg.BearerToken}, nil
	case AuthKindNone:
		return NoAuthenticator{}, nil
	default:
		return nil, InternalFault(fmt.Sprintf("watson: no authenticator for auth type %q", cfg.EffectiveType()))
	}
}

func (i *Invoker) Config() Config {
	if i == nil {
		return Config{}
	}
	cfg := i.config
	cfg.Headers = cloneHeaders(i.config.Headers)
	return cfg
}

func (i *Invoker) Endpoint() string {
	if i == nil {
		return ""
	}
	return i.config.URL
}

func (i *Invoker) ServiceName() string {
	if i == nil {
		return ""
	}
	return i.config.ServiceName
}

func (i *Invoker) Dependencies() InvokerDependencies {
	if i == nil {
		return InvokerDependencies{}
	}
	return InvokerDependencies{
		Logger:          i.logger,
		LoggerProvider:  i.loggerProvider,
		MetricsRecorder: i.metricsRecorder,
		ErrorMapper:     i.errorMapper,
		Transport:       i.transport,
		Authenticator:   i.authenticator,
		Codec:           i.codec,
	}
}

// Do performs one call and returns the raw response. Non-2xx statuses are
// protocol faults.
func (i *Invoker) Do(ctx context.Context, req *Request) (Response, error) {
	res, requestID, err := i.execute(ctx, req, false)
	if err != nil {
		return Response{}, err
	}
	return Response{
		StatusCode: res.StatusCode,
		Headers:    toHTTPHeader(res.Headers),
		Body:       res.Body,
		RequestID:  requestID,
	}, nil
}

// Exec performs a call whose response carries no typed body.
func (i *Invoker) Exec(ctx context.Context, req *Request) error {
	_, err := i.Do(ctx, req)
	return err
}

// Stream performs a call and hands back the unread response body. The caller
// must close it.
func (i *Invoker) Stream(ctx context.Context, req *Request) (*StreamResponse, error) {
	res, requestID, err := i.execute(ctx, req, true)
	if err != nil {
		return nil, err
	}
	return &StreamResponse{
		StatusCode: res.StatusCode,
		Headers:    toHTTPHeader(res.Headers),
		Body:       res.Stream,
		RequestID:  requestID,
	}, nil
}

// Invoke performs a call and decodes the JSON body into T. An empty body
// yields the zero value.
func Invoke[T any](ctx context.Context, inv *Invoker, req *Request) (T, error) {
	var out T
	res, err := inv.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if len(strings.TrimSpace(string(res.Body))) == 0 {
		return out, nil
	}
	if err := inv.codec.Unmarshal(res.Body, &out); err != nil {
		var zero T
		return zero, DeserializationFault(err, map[string]any{
			"status_code": res.StatusCode,
			"request_id":  res.RequestID,
		}).WithRequestID(res.RequestID)
	}
	return out, nil
}

// AuthorizeHeaders writes the credential and default headers into headers,
// for transports the invoker does not drive itself such as WebSocket.
func (i *Invoker) AuthorizeHeaders(ctx context.Context, headers http.Header) error {
	if i == nil {
		return InternalFault("watson: invoker is nil")
	}
	if headers == nil {
		return InternalFault("watson: headers are required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	scratch := &TransportRequest{Headers: map[string]string{}}
	if err := i.authenticator.Authenticate(ctx, scratch); err != nil {
		return i.mapError(err)
	}
	for key, values := range i.defaultHeaders {
		for _, value := range values {
			headers.Add(key, value)
		}
	}
	for key, value := range scratch.Headers {
		headers.Set(key, value)
	}
	return nil
}

func (i *Invoker) execute(ctx context.Context, req *Request, stream bool) (res TransportResponse, requestID string, err error) {
	if i == nil {
		return TransportResponse{}, "", InternalFault("watson: invoker is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		if err != nil {
			fields["fault_kind"] = string(FaultKindOf(err))
			if code := StatusCodeOf(err); code > 0 {
				fields["status_code"] = code
			}
		} else {
			fields["status_code"] = res.StatusCode
		}
		i.observeInvocation(ctx, startedAt, err, fields)
	}()

	if req == nil {
		return TransportResponse{}, "", InternalFault("watson: request descriptor is required")
	}
	requestID = i.requestIDs()
	fields["method"] = req.Method
	fields["path"] = req.Path
	fields["request_id"] = requestID

	treq, err := i.prepare(ctx, req, requestID, stream || req.stream)
	if err != nil {
		return TransportResponse{}, requestID, i.withRequestID(err, requestID)
	}

	res, err = i.transport.Do(ctx, treq)
	if err != nil {
		return TransportResponse{}, requestID, i.withRequestID(i.mapTransportError(err, requestID), requestID)
	}
	transactionID := headerValue(res.Headers, TransactionIDHeader)
	if transactionID != "" {
		fields[metadataTransactionID] = transactionID
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		if res.Stream != nil {
			_ = res.Stream.Close()
		}
		var serviceErr *ServiceError
		if len(res.Body) > 0 {
			decoded := ServiceError{}
			if decodeErr := i.codec.Unmarshal(res.Body, &decoded); decodeErr == nil && decoded.message() != "" {
				serviceErr = &decoded
			}
		}
		metadata := map[string]any{"request_id": requestID}
		if transactionID != "" {
			metadata[metadataTransactionID] = transactionID
		}
		if serviceErr == nil && len(res.Body) > 0 {
			metadata["body"] = truncateBody(res.Body)
		}
		return res, requestID, ProtocolFault(res.StatusCode, serviceErr, metadata).WithRequestID(requestID)
	}
	return res, requestID, nil
}

func (i *Invoker) prepare(ctx context.Context, req *Request, requestID string, stream bool) (TransportRequest, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return TransportRequest{}, BadInputFault("watson: unsupported http method", map[string]any{"method": req.Method})
	}
	path, err := req.ResolvedPath()
	if err != nil {
		return TransportRequest{}, err
	}

	headers := map[string]string{}
	for key, values := range i.defaultHeaders {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}
	for key, values := range req.Headers {
		if len(values) > 0 {
			headers[http.CanonicalHeaderKey(key)] = values[0]
		}
	}
	headers[RequestIDHeader] = requestID
	if _, ok := headers["Accept"]; !ok && !stream {
		headers["Accept"] = i.codec.ContentType()
	}

	var body []byte
	switch req.kind {
	case bodyJSON:
		body, err = i.codec.Marshal(req.jsonBody)
		if err != nil {
			return TransportRequest{}, BadInputFault("watson: encode request body", map[string]any{"error": err.Error()})
		}
		setDefaultHeader(headers, "Content-Type", i.codec.ContentType())
	case bodyBytes:
		body = req.rawBody
		setDefaultHeader(headers, "Content-Type", req.contentType)
	case bodyMultipart:
		var contentType string
		body, contentType, err = encodeMultipart(req.parts)
		if err != nil {
			return TransportRequest{}, err
		}
		headers["Content-Type"] = contentType
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = i.config.Timeout
	}

	query := make([]QueryParam, 0, len(req.Query)+1)
	query = append(query, req.Query...)
	if version := strings.TrimSpace(i.config.Version); version != "" && !hasQueryKey(query, "version") {
		query = append(query, QueryParam{Key: "version", Value: version})
	}

	treq := TransportRequest{
		Method:               method,
		URL:                  i.config.URL + path,
		Headers:              headers,
		Query:                query,
		Body:                 body,
		Timeout:              timeout,
		MaxResponseBodyBytes: i.config.MaxResponseBodyBytes,
		Stream:               stream,
		Metadata: map[string]any{
			"service":    i.config.ServiceName,
			"request_id": requestID,
		},
	}
	if err := i.authenticator.Authenticate(ctx, &treq); err != nil {
		return TransportRequest{}, i.mapError(err)
	}
	return treq, nil
}

func (i *Invoker) mapTransportError(err error, requestID string) error {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && strings.HasPrefix(rich.TextCode, "WATSON_") {
		return rich
	}
	return TransportFault(err, map[string]any{
		"service":    i.config.ServiceName,
		"request_id": requestID,
	})
}

func (i *Invoker) mapError(err error) error {
	if err == nil {
		return nil
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && strings.HasPrefix(rich.TextCode, "WATSON_") {
		return rich
	}
	if i.errorMapper == nil {
		return err
	}
	if mapped := i.errorMapper(err); mapped != nil {
		return mapped
	}
	return err
}

func (i *Invoker) withRequestID(err error, requestID string) error {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.RequestID == "" {
		rich.WithRequestID(requestID)
	}
	return err
}

func setDefaultHeader(headers map[string]string, key, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, ok := headers[key]; !ok {
		headers[key] = value
	}
}

func hasQueryKey(query []QueryParam, key string) bool {
	for _, param := range query {
		if param.Key == key {
			return true
		}
	}
	return false
}

func headerValue(headers map[string]string, key string) string {
	if value, ok := headers[key]; ok {
		return value
	}
	for candidate, value := range headers {
		if strings.EqualFold(candidate, key) {
			return value
		}
	}
	return ""
}

func toHTTPHeader(headers map[string]string) http.Header {
	out := make(http.Header, len(headers))
	for key, value := range headers {
		out.Set(key, value)
	}
	return out
}

func truncateBody(body []byte) string {
	const limit = 512
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
