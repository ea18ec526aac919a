package core

import (
	json "github.com/goccy/go-json"
)

const ContentTypeJSON = "application/json"

type JSONCodec struct{}

func (JSONCodec) ContentType() string {
	return ContentTypeJSON
}

func (JSONCodec) Marshal(value any) ([]byte, error) {
	return json.Marshal(value)
}

func (JSONCodec) Unmarshal(data []byte, target any) error {
	return json.Unmarshal(data, target)
}
