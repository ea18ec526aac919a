package auth

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/transport"
	"golang.org/x/oauth2"
)

const (
	iamGrantType          = "urn:ibm:params:oauth:grant-type:apikey"
	iamResponseType       = "cloud_iam"
	defaultIAMRenewBefore = time.Minute
	defaultIAMTimeout     = 30 * time.Second
)

type IAMConfig struct {
	APIKey string
	URL    string
	// ClientID and ClientSecret are sent as basic auth on the token request
	// when both are set.
	ClientID     string
	ClientSecret string
	HTTPClient   transport.HTTPDoer
	RenewBefore  time.Duration
	Now          func() time.Time
}

// IAMAuthenticator exchanges an API key for an IAM access token and reuses
// it until it is about to expire. Token fetches are serialised and bound to
// the context of the request that triggered them.
type IAMAuthenticator struct {
	config IAMConfig
	source *iamTokenSource
	lock   chan struct{}

	mu    sync.Mutex
	token *oauth2.Token
}

var _ oauth2.TokenSource = (*IAMAuthenticator)(nil)

func NewIAMAuthenticator(cfg IAMConfig) *IAMAuthenticator {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.URL = strings.TrimSpace(cfg.URL)
	if cfg.URL == "" {
		cfg.URL = core.DefaultIAMURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = transport.NewHTTPClient(defaultIAMTimeout, true)
	}
	if cfg.RenewBefore <= 0 {
		cfg.RenewBefore = defaultIAMRenewBefore
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &IAMAuthenticator{
		config: cfg,
		source: &iamTokenSource{config: cfg},
		lock:   make(chan struct{}, 1),
	}
}

func (*IAMAuthenticator) Kind() core.AuthKind {
	return core.AuthKindIAM
}

func (a *IAMAuthenticator) Validate() error {
	if a == nil || a.config.APIKey == "" {
		return core.NewArgumentFault("apikey")
	}
	if _, err := url.ParseRequestURI(a.config.URL); err != nil {
		return core.BadInputFault("auth: malformed iam url", map[string]any{"iam_url": a.config.URL})
	}
	return nil
}

func (a *IAMAuthenticator) Authenticate(ctx context.Context, req *core.TransportRequest) error {
	if req == nil {
		return core.InternalFault("auth: transport request is required")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	token, err := a.TokenContext(ctx)
	if err != nil {
		return err
	}
	if req.Headers == nil {
		req.Headers = map[string]string{}
	}
	req.Headers[core.AuthorizationHeader] = "Bearer " + token.AccessToken
	return nil
}

// Token returns the cached access token, fetching a new one when needed.
func (a *IAMAuthenticator) Token() (*oauth2.Token, error) {
	return a.TokenContext(context.Background())
}

// TokenContext is Token bound to ctx. A caller waiting on another caller's
// fetch gives up when ctx is done.
func (a *IAMAuthenticator) TokenContext(ctx context.Context) (*oauth2.Token, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if token := a.cached(); token != nil {
		return token, nil
	}
	select {
	case a.lock <- struct{}{}:
	case <-ctx.Done():
		return nil, core.TransportFault(ctx.Err(), map[string]any{"iam_url": a.config.URL})
	}
	defer func() { <-a.lock }()

	if token := a.cached(); token != nil {
		return token, nil
	}
	token, err := a.source.fetch(ctx)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
	return token, nil
}

func (a *IAMAuthenticator) cached() *oauth2.Token {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token == nil || a.token.AccessToken == "" {
		return nil
	}
	if a.token.Expiry.IsZero() || a.config.Now().Add(a.config.RenewBefore).Before(a.token.Expiry) {
		return a.token
	}
	return nil
}

type iamTokenSource struct {
	config IAMConfig
}

type iamTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Expiration   int64  `json:"expiration"`
}

type iamErrorResponse struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

func (s *iamTokenSource) fetch(ctx context.Context) (*oauth2.Token, error) {
	form := url.Values{}
	form.Set("grant_type", iamGrantType)
	form.Set("apikey", s.config.APIKey)
	form.Set("response_type", iamResponseType)

	ctx, cancel := context.WithTimeout(ctx, defaultIAMTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, core.BadInputFault("auth: build iam token request", map[string]any{"iam_url": s.config.URL})
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", core.ContentTypeJSON)
	if s.config.ClientID != "" && s.config.ClientSecret != "" {
		req.SetBasicAuth(s.config.ClientID, s.config.ClientSecret)
	}

	res, err := s.config.HTTPClient.Do(req)
	if err != nil {
		return nil, core.TransportFault(err, map[string]any{"iam_url": s.config.URL})
	}
	defer res.Body.Close()
	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, core.TransportFault(err, map[string]any{"iam_url": s.config.URL})
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var serviceErr *core.ServiceError
		decoded := iamErrorResponse{}
		if json.Unmarshal(body, &decoded) == nil && decoded.ErrorMessage != "" {
			serviceErr = &core.ServiceError{
				Code:            res.StatusCode,
				Error:           decoded.ErrorMessage,
				CodeDescription: decoded.ErrorCode,
			}
		}
		return nil, core.ProtocolFault(res.StatusCode, serviceErr, map[string]any{"iam_url": s.config.URL})
	}

	payload := iamTokenResponse{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, core.DeserializationFault(err, map[string]any{"iam_url": s.config.URL})
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return nil, goerrors.New("auth: iam response carried no access token", goerrors.CategoryExternal).
			WithCode(http.StatusBadGateway).
			WithTextCode(core.WatsonErrorDeserialization)
	}

	return &oauth2.Token{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		TokenType:    firstNonEmpty(payload.TokenType, "Bearer"),
		Expiry:       s.expiry(payload),
	}, nil
}

func (s *iamTokenSource) expiry(payload iamTokenResponse) time.Time {
	if payload.Expiration > 0 {
		return time.Unix(payload.Expiration, 0)
	}
	if payload.ExpiresIn > 0 {
		return s.config.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	}
	if exp, ok := tokenExpiry(payload.AccessToken); ok {
		return exp
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
