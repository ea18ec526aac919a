package command

import (
	"bytes"
	"context"
	"io"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/services/languagetranslator"
	"github.com/goliatone/go-watson/services/personalityinsights"
	"github.com/goliatone/go-watson/services/speechtotext"
	"github.com/goliatone/go-watson/services/texttospeech"
)

type SpeechRecognizer interface {
	Recognize(ctx context.Context, audio []byte, contentType string, opts speechtotext.RecognizeOptions) (speechtotext.SpeechRecognitionResults, error)
	CreateJob(ctx context.Context, audio []byte, contentType string, opts speechtotext.CreateJobOptions) (speechtotext.RecognitionJob, error)
	AddCorpus(ctx context.Context, customizationID, corpusName string, corpus io.Reader, opts speechtotext.AddCorpusOptions) error
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text *texttospeech.Text, accept string, opts texttospeech.SynthesizeOptions) (*core.StreamResponse, error)
}

type Translator interface {
	Translate(ctx context.Context, request *languagetranslator.TranslateRequest) (languagetranslator.TranslationResult, error)
}

type Profiler interface {
	Profile(ctx context.Context, content *personalityinsights.Content, contentType string, opts personalityinsights.ProfileOptions) (personalityinsights.Profile, error)
}

type RecognizeCommand struct {
	service SpeechRecognizer
}

func NewRecognizeCommand(service SpeechRecognizer) *RecognizeCommand {
	return &RecognizeCommand{service: service}
}

func (c *RecognizeCommand) Execute(ctx context.Context, msg RecognizeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: speech to text service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.service.Recognize(ctx, msg.Audio, msg.ContentType, msg.Options)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateJobCommand struct {
	service SpeechRecognizer
}

func NewCreateJobCommand(service SpeechRecognizer) *CreateJobCommand {
	return &CreateJobCommand{service: service}
}

func (c *CreateJobCommand) Execute(ctx context.Context, msg CreateJobMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: speech to text service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.service.CreateJob(ctx, msg.Audio, msg.ContentType, msg.Options)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type AddCorpusCommand struct {
	service SpeechRecognizer
}

func NewAddCorpusCommand(service SpeechRecognizer) *AddCorpusCommand {
	return &AddCorpusCommand{service: service}
}

func (c *AddCorpusCommand) Execute(ctx context.Context, msg AddCorpusMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: speech to text service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return c.service.AddCorpus(ctx, msg.CustomizationID, msg.CorpusName, msg.Corpus, msg.Options)
}

type SynthesizeCommand struct {
	service SpeechSynthesizer
}

func NewSynthesizeCommand(service SpeechSynthesizer) *SynthesizeCommand {
	return &SynthesizeCommand{service: service}
}

func (c *SynthesizeCommand) Execute(ctx context.Context, msg SynthesizeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: text to speech service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	res, err := c.service.Synthesize(ctx, &texttospeech.Text{Text: msg.Text}, msg.Accept, msg.Options)
	if err != nil {
		return err
	}
	defer res.Close()

	out := SynthesisResult{ContentType: res.Headers.Get("Content-Type"), RequestID: res.RequestID}
	target := msg.Output
	var buffer *bytes.Buffer
	if target == nil {
		buffer = &bytes.Buffer{}
		target = buffer
	}
	written, err := io.Copy(target, res.Body)
	if err != nil {
		return core.TransportFault(err, map[string]any{"service": texttospeech.ServiceName, "request_id": res.RequestID})
	}
	out.Bytes = written
	if buffer != nil {
		out.Audio = buffer.Bytes()
	}
	storeResult(ctx, out)
	return nil
}

type TranslateCommand struct {
	service Translator
}

func NewTranslateCommand(service Translator) *TranslateCommand {
	return &TranslateCommand{service: service}
}

func (c *TranslateCommand) Execute(ctx context.Context, msg TranslateMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: language translator service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	request := msg.Request
	out, err := c.service.Translate(ctx, &request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ProfileCommand struct {
	service Profiler
}

func NewProfileCommand(service Profiler) *ProfileCommand {
	return &ProfileCommand{service: service}
}

func (c *ProfileCommand) Execute(ctx context.Context, msg ProfileMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: personality insights service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	content := msg.Content
	out, err := c.service.Profile(ctx, &content, msg.ContentType, msg.Options)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
