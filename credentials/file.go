package credentials

import (
	"context"
	"errors"
	"io/fs"

	"github.com/goliatone/go-watson/core"
	"github.com/joho/godotenv"
)

// FileLoader reads an ibm-credentials.env file. Without an explicit Path it
// tries $IBM_CREDENTIALS_FILE, then ./ibm-credentials.env, then the home
// directory; a missing default file yields no values.
type FileLoader struct {
	Service string
	Path    string
}

func (l FileLoader) LoadRaw(context.Context) (map[string]any, error) {
	for _, path := range candidateFiles(l.Path) {
		values, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) && l.Path == "" {
			continue
		}
		if err != nil {
			return nil, core.BadInputFault("credentials: read credentials file", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
		}
		return fromFlat(Prefix(l.Service), func(key string) (string, bool) {
			value, ok := values[key]
			return value, ok
		})
	}
	return map[string]any{}, nil
}
