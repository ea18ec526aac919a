package query

import (
	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/services/languagetranslator"
)

const (
	TypeGetSpeechModel        = "watson.query.speech_to_text.model.get"
	TypeListSpeechModels      = "watson.query.speech_to_text.model.list"
	TypeCheckJob              = "watson.query.speech_to_text.job.check"
	TypeListVoices            = "watson.query.text_to_speech.voice.list"
	TypeGetVoice              = "watson.query.text_to_speech.voice.get"
	TypeListTranslationModels = "watson.query.language_translator.model.list"
	TypeIdentifyLanguage      = "watson.query.language_translator.identify"
)

type GetSpeechModelMessage struct {
	ModelID string
}

func (GetSpeechModelMessage) Type() string { return TypeGetSpeechModel }

func (m GetSpeechModelMessage) Validate() error {
	return core.Require(core.Arg("model_id", m.ModelID))
}

type ListSpeechModelsMessage struct{}

func (ListSpeechModelsMessage) Type() string { return TypeListSpeechModels }

func (ListSpeechModelsMessage) Validate() error { return nil }

type CheckJobMessage struct {
	JobID string
}

func (CheckJobMessage) Type() string { return TypeCheckJob }

func (m CheckJobMessage) Validate() error {
	return core.Require(core.Arg("id", m.JobID))
}

type ListVoicesMessage struct{}

func (ListVoicesMessage) Type() string { return TypeListVoices }

func (ListVoicesMessage) Validate() error { return nil }

type GetVoiceMessage struct {
	Voice           string
	CustomizationID string
}

func (GetVoiceMessage) Type() string { return TypeGetVoice }

func (m GetVoiceMessage) Validate() error {
	return core.Require(core.Arg("voice", m.Voice))
}

type ListTranslationModelsMessage struct {
	Options languagetranslator.ListModelsOptions
}

func (ListTranslationModelsMessage) Type() string { return TypeListTranslationModels }

func (ListTranslationModelsMessage) Validate() error { return nil }

type IdentifyLanguageMessage struct {
	Text string
}

func (IdentifyLanguageMessage) Type() string { return TypeIdentifyLanguage }

func (m IdentifyLanguageMessage) Validate() error {
	return core.Require(core.Arg("text", m.Text))
}
