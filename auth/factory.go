package auth

import (
	"fmt"

	"github.com/goliatone/go-watson/core"
)

// FromConfig builds the authenticator for a resolved auth configuration. It
// is installed on every service invoker through core.WithAuthenticatorFactory.
func FromConfig(cfg core.AuthConfig) (core.Authenticator, error) {
	switch kind := cfg.EffectiveType(); kind {
	case core.AuthKindBasic:
		return NewBasic(cfg.Username, cfg.Password), nil
	case core.AuthKindBearer:
		return NewBearer(cfg.BearerToken), nil
	case core.AuthKindIAM:
		return NewIAMAuthenticator(IAMConfig{APIKey: cfg.APIKey, URL: cfg.IAMURL}), nil
	case core.AuthKindNone:
		return NoAuth(), nil
	default:
		return nil, core.BadInputFault(fmt.Sprintf("auth: unsupported auth type %q", kind), map[string]any{"type": string(kind)})
	}
}

var (
	_ core.Authenticator        = (*BearerAuthenticator)(nil)
	_ core.Authenticator        = (*IAMAuthenticator)(nil)
	_ core.AuthenticatorFactory = FromConfig
)
