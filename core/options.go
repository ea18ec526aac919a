package core

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
)

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type invokerBuilder struct {
	runtimeConfig        Config
	defaults             Config
	logger               Logger
	loggerProvider       LoggerProvider
	metricsRecorder      MetricsRecorder
	errorMapper          ErrorMapper
	configProvider       ConfigProvider
	optionsResolver      OptionsResolver
	transport            TransportAdapter
	transportFactory     TransportFactory
	authenticator        Authenticator
	authenticatorFactory AuthenticatorFactory
	codec                Codec
	requestIDs           func() string
}

type Option func(*invokerBuilder)

// TransportFactory builds the HTTP transport from the resolved configuration.
type TransportFactory func(cfg Config) TransportAdapter

func WithLogger(logger Logger) Option {
	return func(b *invokerBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *invokerBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *invokerBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *invokerBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *invokerBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *invokerBuilder) {
		b.optionsResolver = resolver
	}
}

// WithDefaults sets the lowest configuration layer, usually the service's
// documented endpoint and API version.
func WithDefaults(cfg Config) Option {
	return func(b *invokerBuilder) {
		b.defaults = cfg
	}
}

func WithTransport(adapter TransportAdapter) Option {
	return func(b *invokerBuilder) {
		b.transport = adapter
	}
}

func WithTransportFactory(factory TransportFactory) Option {
	return func(b *invokerBuilder) {
		b.transportFactory = factory
	}
}

func WithAuthenticator(authenticator Authenticator) Option {
	return func(b *invokerBuilder) {
		b.authenticator = authenticator
	}
}

func WithAuthenticatorFactory(factory AuthenticatorFactory) Option {
	return func(b *invokerBuilder) {
		b.authenticatorFactory = factory
	}
}

func WithCodec(codec Codec) Option {
	return func(b *invokerBuilder) {
		b.codec = codec
	}
}

// WithRequestIDGenerator replaces the X-Request-Id generator.
func WithRequestIDGenerator(next func() string) Option {
	return func(b *invokerBuilder) {
		b.requestIDs = next
	}
}

func defaultInvokerBuilder(runtime Config) invokerBuilder {
	loggerProvider, logger := glog.Resolve("watson", nil, nil)
	return invokerBuilder{
		runtimeConfig:   runtime,
		defaults:        DefaultConfig(),
		loggerProvider:  loggerProvider,
		logger:          logger,
		metricsRecorder: NopMetricsRecorder{},
		errorMapper:     DefaultErrorMapper,
		configProvider:  NewCfgxConfigProvider(nil),
		optionsResolver: GoOptionsResolver{},
		codec:           JSONCodec{},
	}
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// StaticConfigLoader serves a fixed raw map.
func StaticConfigLoader(values map[string]any) RawConfigLoader {
	return staticRawConfigLoader{Values: values}
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

// Load decodes the raw values on top of zero defaults so that only keys the
// loader actually supplied survive into the loaded layer.
func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil || p.Loader == nil {
		return Config{}, nil
	}
	raw, err := p.Loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	if len(raw) == 0 {
		return Config{}, nil
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(Config{ServiceName: defaults.ServiceName}),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaults, loaded, runtime = isolateAuth(defaults, loaded, runtime)
	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			configToLayerMap(defaults, true),
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			configToLayerMap(loaded, false),
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			configToLayerMap(runtime, false),
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "watson: options stack build failed").
			WithTextCode(WatsonErrorInternal)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "watson: options merge failed").
			WithTextCode(WatsonErrorInternal)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	endpoint, err := ResolveEndpoint(defaults.URL, loaded.URL, runtime.URL)
	if err != nil {
		return Config{}, err
	}
	resolved.URL = endpoint
	return resolved.withDefaults(), nil
}

// isolateAuth keeps credentials from the highest layer that sets any, so a
// runtime username never pairs with a loaded apikey.
func isolateAuth(defaults, loaded, runtime Config) (Config, Config, Config) {
	switch {
	case runtime.Auth.HasCredentials():
		defaults.Auth = defaults.Auth.withoutCredentials()
		loaded.Auth = loaded.Auth.withoutCredentials()
	case loaded.Auth.HasCredentials():
		defaults.Auth = defaults.Auth.withoutCredentials()
	}
	return defaults, loaded, runtime
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.ServiceName) != "" {
		layer["service_name"] = cfg.ServiceName
	}
	if includeZero || strings.TrimSpace(cfg.URL) != "" {
		layer["url"] = strings.TrimSpace(cfg.URL)
	}
	if includeZero || strings.TrimSpace(cfg.Version) != "" {
		layer["version"] = cfg.Version
	}
	if auth := authToLayerMap(cfg.Auth, includeZero); len(auth) > 0 {
		layer["auth"] = auth
	}
	if includeZero || cfg.Timeout > 0 {
		layer["timeout"] = cfg.Timeout
	}
	if includeZero || len(cfg.Headers) > 0 {
		headers := make(map[string]any, len(cfg.Headers))
		for key, value := range cfg.Headers {
			headers[key] = value
		}
		layer["headers"] = headers
	}
	if includeZero || cfg.LearningOptOut {
		layer["learning_opt_out"] = cfg.LearningOptOut
	}
	if includeZero || cfg.MaxResponseBodyBytes > 0 {
		layer["max_response_body_bytes"] = cfg.MaxResponseBodyBytes
	}
	if includeZero || cfg.DisableTracing {
		layer["disable_tracing"] = cfg.DisableTracing
	}
	return layer
}

func authToLayerMap(auth AuthConfig, includeZero bool) map[string]any {
	layer := map[string]any{}
	put := func(key, value string) {
		if includeZero || strings.TrimSpace(value) != "" {
			layer[key] = value
		}
	}
	put("type", string(auth.Type))
	put("username", auth.Username)
	put("password", auth.Password)
	put("apikey", auth.APIKey)
	put("bearer_token", auth.BearerToken)
	put("iam_url", auth.IAMURL)
	return layer
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	if mapped := mapper(err); mapped != nil {
		return mapped
	}
	return err
}

func defaultHTTPHeaders(cfg Config) http.Header {
	headers := http.Header{}
	for key, value := range cfg.Headers {
		if strings.TrimSpace(value) == "" {
			continue
		}
		headers.Set(key, value)
	}
	if cfg.LearningOptOut {
		headers.Set(LearningOptOutHeader, "true")
	}
	return headers
}
