package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-watson/core"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix(), "sub": "watson"})
	raw, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return raw
}

func TestBearer_AcceptsOpaqueToken(t *testing.T) {
	req := &core.TransportRequest{}
	if err := NewBearer("opaque").Authenticate(context.Background(), req); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if req.Headers[core.AuthorizationHeader] != "Bearer opaque" {
		t.Fatalf("unexpected header %q", req.Headers[core.AuthorizationHeader])
	}
}

func TestBearer_RejectsExpiredJWT(t *testing.T) {
	bearer := NewBearer(signedToken(t, time.Now().Add(-time.Hour)))
	req := &core.TransportRequest{}
	if err := bearer.Authenticate(context.Background(), req); err == nil {
		t.Fatalf("expected expired token to fail")
	}
	if _, ok := req.Headers[core.AuthorizationHeader]; ok {
		t.Fatalf("expected no header for expired token")
	}
}

func TestBearer_ExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := NewBearer(signedToken(t, exp)).ExpiresAt()
	if !ok || !got.Equal(exp) {
		t.Fatalf("expected %s, got %s ok=%v", exp, got, ok)
	}
}

func TestFromConfig(t *testing.T) {
	cases := map[core.AuthKind]core.AuthConfig{
		core.AuthKindBasic:  {Username: "u", Password: "p"},
		core.AuthKindBearer: {BearerToken: "t"},
		core.AuthKindIAM:    {APIKey: "k"},
		core.AuthKindNone:   {Type: core.AuthKindNone},
	}
	for want, cfg := range cases {
		authenticator, err := FromConfig(cfg)
		if err != nil {
			t.Fatalf("%s: %v", want, err)
		}
		if authenticator.Kind() != want {
			t.Fatalf("expected %s, got %s", want, authenticator.Kind())
		}
	}
	if _, err := FromConfig(core.AuthConfig{Type: "kerberos"}); core.FaultKindOf(err) != core.FaultArgument {
		t.Fatalf("expected unsupported type to be rejected, got %v", err)
	}
}
