package core

import (
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
)

const (
	DefaultTimeout              = 30 * time.Second
	DefaultMaxResponseBodyBytes = int64(32 << 20)
	DefaultIAMURL               = "https://iam.cloud.ibm.com/identity/token"
	LearningOptOutHeader        = "X-Watson-Learning-Opt-Out"
)

type AuthConfig struct {
	Type        AuthKind `koanf:"type" mapstructure:"type"`
	Username    string   `koanf:"username" mapstructure:"username"`
	Password    string   `koanf:"password" mapstructure:"password"`
	APIKey      string   `koanf:"apikey" mapstructure:"apikey"`
	BearerToken string   `koanf:"bearer_token" mapstructure:"bearer_token"`
	IAMURL      string   `koanf:"iam_url" mapstructure:"iam_url"`
}

// EffectiveType infers the auth kind from the populated credentials when
// Type is blank.
func (a AuthConfig) EffectiveType() AuthKind {
	if kind := AuthKind(strings.ToLower(strings.TrimSpace(string(a.Type)))); kind != "" {
		return kind
	}
	switch {
	case strings.TrimSpace(a.BearerToken) != "":
		return AuthKindBearer
	case strings.TrimSpace(a.APIKey) != "":
		return AuthKindIAM
	case strings.TrimSpace(a.Username) != "" || strings.TrimSpace(a.Password) != "":
		return AuthKindBasic
	default:
		return AuthKindNone
	}
}

// HasCredentials reports whether any credential field or an explicit Type is
// set. IAMURL is an endpoint, not a credential.
func (a AuthConfig) HasCredentials() bool {
	for _, value := range []string{string(a.Type), a.Username, a.Password, a.APIKey, a.BearerToken} {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

// withoutCredentials keeps only the non-credential fields.
func (a AuthConfig) withoutCredentials() AuthConfig {
	return AuthConfig{IAMURL: a.IAMURL}
}

func (a AuthConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Type, validation.In(AuthKindBasic, AuthKindBearer, AuthKindIAM, AuthKindNone, AuthKind(""))),
		validation.Field(&a.IAMURL, is.URL),
	)
}

type Config struct {
	ServiceName          string            `koanf:"service_name" mapstructure:"service_name"`
	URL                  string            `koanf:"url" mapstructure:"url"`
	Version              string            `koanf:"version" mapstructure:"version"`
	Auth                 AuthConfig        `koanf:"auth" mapstructure:"auth"`
	Timeout              time.Duration     `koanf:"timeout" mapstructure:"timeout"`
	Headers              map[string]string `koanf:"headers" mapstructure:"headers"`
	LearningOptOut       bool              `koanf:"learning_opt_out" mapstructure:"learning_opt_out"`
	MaxResponseBodyBytes int64             `koanf:"max_response_body_bytes" mapstructure:"max_response_body_bytes"`
	DisableTracing       bool              `koanf:"disable_tracing" mapstructure:"disable_tracing"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:          "watson",
		Timeout:              DefaultTimeout,
		MaxResponseBodyBytes: DefaultMaxResponseBodyBytes,
	}
}

func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.ServiceName, validation.Required),
		validation.Field(&c.URL, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxResponseBodyBytes, validation.Min(int64(0))),
		validation.Field(&c.Auth),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "watson: invalid configuration").
			WithCode(400).
			WithTextCode(WatsonErrorBadInput)
	}
	return nil
}

// ResolveEndpoint picks the service root URL from three layers. Blank values
// are unset; the highest non-blank layer wins (runtime over loaded over
// default). The result has no trailing slash.
func ResolveEndpoint(defaultURL, loadedURL, runtimeURL string) (string, error) {
	candidate := ""
	for _, layer := range []string{defaultURL, loadedURL, runtimeURL} {
		if trimmed := strings.TrimSpace(layer); trimmed != "" {
			candidate = trimmed
		}
	}
	if candidate == "" {
		return "", BadInputFault("watson: service endpoint is not configured", nil)
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", BadInputFault("watson: malformed service endpoint", map[string]any{"url": candidate})
	}
	return strings.TrimRight(candidate, "/"), nil
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxResponseBodyBytes <= 0 {
		c.MaxResponseBodyBytes = DefaultMaxResponseBodyBytes
	}
	if strings.TrimSpace(c.Auth.IAMURL) == "" && c.Auth.EffectiveType() == AuthKindIAM {
		c.Auth.IAMURL = DefaultIAMURL
	}
	return c
}

func cloneHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for key, value := range headers {
		out[key] = value
	}
	return out
}
