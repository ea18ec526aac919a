package command

import (
	"io"

	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/services/languagetranslator"
	"github.com/goliatone/go-watson/services/personalityinsights"
	"github.com/goliatone/go-watson/services/speechtotext"
	"github.com/goliatone/go-watson/services/texttospeech"
)

const (
	TypeRecognize  = "watson.command.speech_to_text.recognize"
	TypeCreateJob  = "watson.command.speech_to_text.job.create"
	TypeAddCorpus  = "watson.command.speech_to_text.corpus.add"
	TypeSynthesize = "watson.command.text_to_speech.synthesize"
	TypeTranslate  = "watson.command.language_translator.translate"
	TypeProfile    = "watson.command.personality_insights.profile"
)

type RecognizeMessage struct {
	Audio       []byte
	ContentType string
	Options     speechtotext.RecognizeOptions
}

func (RecognizeMessage) Type() string { return TypeRecognize }

func (m RecognizeMessage) Validate() error {
	return core.Require(core.Arg("audio", m.Audio))
}

type CreateJobMessage struct {
	Audio       []byte
	ContentType string
	Options     speechtotext.CreateJobOptions
}

func (CreateJobMessage) Type() string { return TypeCreateJob }

func (m CreateJobMessage) Validate() error {
	return core.Require(core.Arg("audio", m.Audio), core.Arg("content_type", m.ContentType))
}

type AddCorpusMessage struct {
	CustomizationID string
	CorpusName      string
	Corpus          io.Reader
	Options         speechtotext.AddCorpusOptions
}

func (AddCorpusMessage) Type() string { return TypeAddCorpus }

func (m AddCorpusMessage) Validate() error {
	return core.Require(
		core.Arg("customization_id", m.CustomizationID),
		core.Arg("corpus_name", m.CorpusName),
		core.Arg("corpus_file", m.Corpus),
	)
}

// SynthesizeMessage copies the audio to Output when set; otherwise the audio
// is buffered into the result.
type SynthesizeMessage struct {
	Text    string
	Accept  string
	Options texttospeech.SynthesizeOptions
	Output  io.Writer
}

func (SynthesizeMessage) Type() string { return TypeSynthesize }

func (m SynthesizeMessage) Validate() error {
	return core.Require(core.Arg("text", m.Text), core.Arg("accept", m.Accept))
}

type SynthesisResult struct {
	ContentType string
	Bytes       int64
	Audio       []byte
	RequestID   string
}

type TranslateMessage struct {
	Request languagetranslator.TranslateRequest
}

func (TranslateMessage) Type() string { return TypeTranslate }

func (m TranslateMessage) Validate() error {
	return core.Require(core.Arg("text", m.Request.Text))
}

type ProfileMessage struct {
	Content     personalityinsights.Content
	ContentType string
	Options     personalityinsights.ProfileOptions
}

func (ProfileMessage) Type() string { return TypeProfile }

func (m ProfileMessage) Validate() error {
	return core.Require(core.Arg("content_items", m.Content.ContentItems), core.Arg("content_type", m.ContentType))
}
