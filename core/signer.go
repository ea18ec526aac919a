package core

import (
	"context"
	"encoding/base64"
	"strings"
)

const AuthorizationHeader = "Authorization"

// BasicAuthenticator signs requests with a username/password pair.
type BasicAuthenticator struct {
	Username string
	Password string
}

func (BasicAuthenticator) Kind() AuthKind {
	return AuthKindBasic
}

func (a BasicAuthenticator) Validate() error {
	var missing []string
	if strings.TrimSpace(a.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(a.Password) == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return NewArgumentFault(missing...)
	}
	return nil
}

func (a BasicAuthenticator) Authenticate(_ context.Context, req *TransportRequest) error {
	if req == nil {
		return InternalFault("watson: transport request is required")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	setHeader(req, AuthorizationHeader, "Basic "+base64.StdEncoding.EncodeToString([]byte(a.Username+":"+a.Password)))
	return nil
}

// BearerTokenAuthenticator signs requests with a caller-managed access token.
type BearerTokenAuthenticator struct {
	Token string
}

func (BearerTokenAuthenticator) Kind() AuthKind {
	return AuthKindBearer
}

func (a BearerTokenAuthenticator) Validate() error {
	if strings.TrimSpace(a.Token) == "" {
		return NewArgumentFault("bearer_token")
	}
	return nil
}

func (a BearerTokenAuthenticator) Authenticate(_ context.Context, req *TransportRequest) error {
	if req == nil {
		return InternalFault("watson: transport request is required")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	setHeader(req, AuthorizationHeader, "Bearer "+strings.TrimSpace(a.Token))
	return nil
}

// NoAuthenticator leaves requests unsigned, for local fakes and proxies that
// inject credentials themselves.
type NoAuthenticator struct{}

func (NoAuthenticator) Kind() AuthKind {
	return AuthKindNone
}

func (NoAuthenticator) Validate() error {
	return nil
}

func (NoAuthenticator) Authenticate(context.Context, *TransportRequest) error {
	return nil
}

func setHeader(req *TransportRequest, key, value string) {
	if req.Headers == nil {
		req.Headers = map[string]string{}
	}
	req.Headers[key] = value
}
