package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-watson/core"
)

func NewBasic(username, password string) core.BasicAuthenticator {
	return core.BasicAuthenticator{
		Username: strings.TrimSpace(username),
		Password: password,
	}
}

// BearerAuthenticator sends a caller-managed access token. When the token
// is a JWT its exp claim is honoured and an expired token fails before any
// request is sent.
type BearerAuthenticator struct {
	core.BearerTokenAuthenticator
	now func() time.Time
}

func NewBearer(token string) *BearerAuthenticator {
	return &BearerAuthenticator{
		BearerTokenAuthenticator: core.BearerTokenAuthenticator{Token: strings.TrimSpace(token)},
		now:                      time.Now,
	}
}

// ExpiresAt reports the token's exp claim, if it has one.
func (a *BearerAuthenticator) ExpiresAt() (time.Time, bool) {
	return tokenExpiry(a.Token)
}

func (a *BearerAuthenticator) Authenticate(ctx context.Context, req *core.TransportRequest) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if expiresAt, ok := a.ExpiresAt(); ok && !a.now().Before(expiresAt) {
		return goerrors.New("auth: bearer token has expired", goerrors.CategoryAuth).
			WithCode(http.StatusUnauthorized).
			WithTextCode(core.WatsonErrorBadInput).
			WithMetadata(map[string]any{"expired_at": expiresAt.UTC().Format(time.RFC3339)})
	}
	return a.BearerTokenAuthenticator.Authenticate(ctx, req)
}

func NoAuth() core.Authenticator {
	return core.NoAuthenticator{}
}
