package credentials

import (
	"context"
	"os"
)

// EnvLoader reads <SERVICE>_URL, _USERNAME, _PASSWORD, _APIKEY, _AUTH_TYPE,
// _BEARER_TOKEN, _AUTH_URL, _VERSION and _TIMEOUT from the environment.
type EnvLoader struct {
	Service string
	// Lookup defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

func (l EnvLoader) LoadRaw(context.Context) (map[string]any, error) {
	lookup := l.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return fromFlat(Prefix(l.Service), lookup)
}
