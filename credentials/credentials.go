// Package credentials loads service configuration from the process
// environment, ibm-credentials.env files and YAML files. Every loader yields
// the raw map consumed by core.CfgxConfigProvider.
package credentials

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-watson/core"
)

const (
	// FileEnv names the variable that points at a credentials file.
	FileEnv = "IBM_CREDENTIALS_FILE"
	// DefaultFileName is looked up in the working directory, then the home
	// directory.
	DefaultFileName = "ibm-credentials.env"
)

// suffixes maps <SERVICE>_<SUFFIX> keys to config paths. Later entries of the
// same path take precedence.
var suffixes = []struct {
	suffix string
	path   []string
}{
	{"URL", []string{"url"}},
	{"VERSION", []string{"version"}},
	{"USERNAME", []string{"auth", "username"}},
	{"PASSWORD", []string{"auth", "password"}},
	{"IAM_APIKEY", []string{"auth", "apikey"}},
	{"APIKEY", []string{"auth", "apikey"}},
	{"AUTH_TYPE", []string{"auth", "type"}},
	{"BEARER_TOKEN", []string{"auth", "bearer_token"}},
	{"IAM_URL", []string{"auth", "iam_url"}},
	{"AUTH_URL", []string{"auth", "iam_url"}},
	{"TIMEOUT", []string{"timeout"}},
	{"LEARNING_OPT_OUT", []string{"learning_opt_out"}},
	{"DISABLE_TRACING", []string{"disable_tracing"}},
	{"MAX_RESPONSE_BODY_BYTES", []string{"max_response_body_bytes"}},
}

// Prefix returns the variable prefix for a service, for example
// SPEECH_TO_TEXT for speech_to_text.
func Prefix(service string) string {
	replacer := strings.NewReplacer("-", "_", " ", "_", ".", "_")
	return strings.ToUpper(replacer.Replace(strings.TrimSpace(service)))
}

// Provider wraps loader in a config provider for core.WithConfigProvider.
func Provider(loader core.RawConfigLoader) core.ConfigProvider {
	return core.NewCfgxConfigProvider(loader)
}

// Default reads the credentials file first and lets the environment
// override it.
func Default(service string) core.RawConfigLoader {
	return Chain(FileLoader{Service: service}, EnvLoader{Service: service})
}

// WithDefaultSources is the invoker option that loads service credentials
// from Default.
func WithDefaultSources(service string) core.Option {
	return core.WithConfigProvider(Provider(Default(service)))
}

// fromFlat builds a raw config map from prefixed flat keys.
func fromFlat(prefix string, lookup func(string) (string, bool)) (map[string]any, error) {
	out := map[string]any{}
	for _, entry := range suffixes {
		raw, ok := lookup(prefix + "_" + entry.suffix)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		value, err := convert(entry.path, strings.TrimSpace(raw))
		if err != nil {
			return nil, core.BadInputFault("credentials: invalid "+prefix+"_"+entry.suffix, map[string]any{
				"key":   prefix + "_" + entry.suffix,
				"error": err.Error(),
			})
		}
		setPath(out, entry.path, value)
	}
	return out, nil
}

func convert(path []string, raw string) (any, error) {
	switch path[len(path)-1] {
	case "timeout":
		return parseDuration(raw)
	case "learning_opt_out", "disable_tracing":
		return strconv.ParseBool(raw)
	case "max_response_body_bytes":
		return strconv.ParseInt(raw, 10, 64)
	default:
		return raw, nil
	}
}

// parseDuration accepts Go duration strings and bare seconds.
func parseDuration(raw string) (time.Duration, error) {
	if seconds, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	return time.ParseDuration(raw)
}

func setPath(target map[string]any, path []string, value any) {
	node := target
	for _, key := range path[:len(path)-1] {
		child, ok := node[key].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[key] = child
		}
		node = child
	}
	node[path[len(path)-1]] = value
}

// merge copies src over dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for key, value := range src {
		nested, ok := value.(map[string]any)
		if !ok {
			dst[key] = value
			continue
		}
		existing, ok := dst[key].(map[string]any)
		if !ok {
			existing = map[string]any{}
			dst[key] = existing
		}
		merge(existing, nested)
	}
}

// Chain merges loaders in order. Later loaders override earlier ones key by
// key.
func Chain(loaders ...core.RawConfigLoader) core.RawConfigLoader {
	return chain(loaders)
}

type chain []core.RawConfigLoader

func (c chain) LoadRaw(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	for _, loader := range c {
		if loader == nil {
			continue
		}
		raw, err := loader.LoadRaw(ctx)
		if err != nil {
			return nil, err
		}
		merge(out, raw)
	}
	return out, nil
}

func candidateFiles(explicit string) []string {
	if path := strings.TrimSpace(explicit); path != "" {
		return []string{path}
	}
	if path := strings.TrimSpace(os.Getenv(FileEnv)); path != "" {
		return []string{path}
	}
	candidates := []string{DefaultFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultFileName))
	}
	return candidates
}
