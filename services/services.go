// Package services holds what every Watson service client shares: the
// definition of a service (name, documented endpoint, API version) and the
// construction of its authenticated invoker.
package services

import (
	"github.com/goliatone/go-watson/auth"
	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/transport"
)

type Definition struct {
	Name           string
	DefaultURL     string
	DefaultVersion string
}

func (d Definition) Defaults() core.Config {
	cfg := core.DefaultConfig()
	cfg.ServiceName = d.Name
	cfg.URL = d.DefaultURL
	cfg.Version = d.DefaultVersion
	return cfg
}

// NewInvoker builds the invoker for one service. Caller options are applied
// after the service defaults and may replace any of them.
func NewInvoker(def Definition, cfg core.Config, opts ...core.Option) (*core.Invoker, error) {
	base := []core.Option{
		core.WithDefaults(def.Defaults()),
		core.WithAuthenticatorFactory(auth.FromConfig),
		core.WithTransportFactory(transport.FromConfig),
	}
	return core.NewInvoker(cfg, append(base, opts...)...)
}
