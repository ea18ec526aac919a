package credentials

import (
	"context"
	"os"
	"strings"

	"github.com/goliatone/go-watson/core"
	"gopkg.in/yaml.v3"
)

// YAMLLoader reads one service section from a YAML document keyed by service
// name:
//
//	speech_to_text:
//	  url: https://stream.watsonplatform.net/speech-to-text/api
//	  timeout: 45s
//	  auth:
//	    type: iam
//	    apikey: ...
type YAMLLoader struct {
	Service string
	Path    string
	// Data is used instead of reading Path when set.
	Data []byte
}

func (l YAMLLoader) LoadRaw(context.Context) (map[string]any, error) {
	data := l.Data
	if data == nil {
		raw, err := os.ReadFile(l.Path)
		if err != nil {
			return nil, core.BadInputFault("credentials: read yaml file", map[string]any{"path": l.Path, "error": err.Error()})
		}
		data = raw
	}
	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, core.BadInputFault("credentials: decode yaml", map[string]any{"path": l.Path, "error": err.Error()})
	}
	section, ok := doc[strings.TrimSpace(l.Service)].(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	if raw, ok := section["timeout"].(string); ok {
		timeout, err := parseDuration(strings.TrimSpace(raw))
		if err != nil {
			return nil, core.BadInputFault("credentials: invalid timeout", map[string]any{"service": l.Service, "timeout": raw})
		}
		section["timeout"] = timeout
	}
	return section, nil
}
