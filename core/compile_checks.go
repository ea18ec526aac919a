package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ Authenticator   = BasicAuthenticator{}
	_ Authenticator   = BearerTokenAuthenticator{}
	_ Authenticator   = NoAuthenticator{}
	_ Codec           = JSONCodec{}
	_ MetricsRecorder = NopMetricsRecorder{}
	_ ConfigProvider  = (*CfgxConfigProvider)(nil)
	_ OptionsResolver = GoOptionsResolver{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
