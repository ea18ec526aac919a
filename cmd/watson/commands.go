package main

import (
	"context"
	"os"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-watson"
	watsoncommand "github.com/goliatone/go-watson/command"
	"github.com/goliatone/go-watson/core"
	watsonquery "github.com/goliatone/go-watson/query"
	"github.com/goliatone/go-watson/services/languagetranslator"
	"github.com/goliatone/go-watson/services/personalityinsights"
	"github.com/goliatone/go-watson/services/speechtotext"
	"github.com/goliatone/go-watson/services/texttospeech"
)

// execute runs a command and returns the result it stored.
func execute[R any, M any](ctx context.Context, cmd gocmd.Commander[M], msg M) (R, error) {
	collector := gocmd.NewResult[R]()
	if err := cmd.Execute(gocmd.ContextWithResult(ctx, collector), msg); err != nil {
		var zero R
		return zero, err
	}
	result, _ := collector.Load()
	return result, nil
}

func optional(set bool) *bool {
	if !set {
		return nil
	}
	return core.Ptr(true)
}

type sttCmd struct {
	Models    sttModelsCmd    `cmd:"" help:"List the recognition models."`
	Model     sttModelCmd     `cmd:"" help:"Show one recognition model."`
	Recognize sttRecognizeCmd `cmd:"" help:"Transcribe an audio file."`
	Jobs      sttJobsCmd      `cmd:"" help:"List asynchronous recognition jobs."`
}

type sttModelsCmd struct{}

func (c *sttModelsCmd) Run(a *app) error {
	facade, err := a.facade(watson.Services{SpeechToText: a.config()})
	if err != nil {
		return err
	}
	models, err := facade.Queries().ListSpeechModels.Query(a.ctx, watsonquery.ListSpeechModelsMessage{})
	if err != nil {
		return err
	}
	return a.print(models)
}

type sttModelCmd struct {
	ID string `arg:"" help:"Model name, for example en-US_BroadbandModel."`
}

func (c *sttModelCmd) Run(a *app) error {
	facade, err := a.facade(watson.Services{SpeechToText: a.config()})
	if err != nil {
		return err
	}
	model, err := facade.Queries().GetSpeechModel.Query(a.ctx, watsonquery.GetSpeechModelMessage{ModelID: c.ID})
	if err != nil {
		return err
	}
	return a.print(model)
}

type sttRecognizeCmd struct {
	File        string   `arg:"" type:"existingfile" help:"Audio file."`
	ContentType string   `short:"t" help:"Audio format, for example audio/flac."`
	Model       string   `help:"Recognition model."`
	Keywords    []string `help:"Keywords to spot."`
	Timestamps  bool     `help:"Include word timestamps."`
	Stream      bool     `help:"Send the audio over the WebSocket interface."`
	ChunkSize   int      `help:"Frame size in bytes when streaming."`
}

func (c *sttRecognizeCmd) options() speechtotext.RecognizeOptions {
	return speechtotext.RecognizeOptions{
		Model:      c.Model,
		Keywords:   c.Keywords,
		Timestamps: optional(c.Timestamps),
	}
}

func (c *sttRecognizeCmd) Run(a *app) error {
	if c.Stream {
		return c.stream(a)
	}
	audio, err := os.ReadFile(c.File)
	if err != nil {
		return core.BadInputFault("watson: read audio: "+err.Error(), map[string]any{"file": c.File})
	}
	facade, err := a.facade(watson.Services{SpeechToText: a.config()})
	if err != nil {
		return err
	}
	results, err := execute[speechtotext.SpeechRecognitionResults](a.ctx, facade.Commands().Recognize, watsoncommand.RecognizeMessage{
		Audio:       audio,
		ContentType: c.ContentType,
		Options:     c.options(),
	})
	if err != nil {
		return err
	}
	return a.print(results)
}

func (c *sttRecognizeCmd) stream(a *app) error {
	file, err := os.Open(c.File)
	if err != nil {
		return core.BadInputFault("watson: open audio: "+err.Error(), map[string]any{"file": c.File})
	}
	defer file.Close()
	client, err := a.client(watson.Services{SpeechToText: a.config()})
	if err != nil {
		return err
	}
	results, err := client.SpeechToText.RecognizeStream(a.ctx, file, speechtotext.RecognizeStreamOptions{
		RecognizeOptions: c.options(),
		ContentType:      c.ContentType,
		ChunkSize:        c.ChunkSize,
	})
	if err != nil {
		return err
	}
	return a.print(results)
}

type sttJobsCmd struct{}

func (c *sttJobsCmd) Run(a *app) error {
	client, err := a.client(watson.Services{SpeechToText: a.config()})
	if err != nil {
		return err
	}
	jobs, err := client.SpeechToText.CheckJobs(a.ctx)
	if err != nil {
		return err
	}
	return a.print(jobs)
}

type ttsCmd struct {
	Voices     ttsVoicesCmd     `cmd:"" help:"List the synthesis voices."`
	Synthesize ttsSynthesizeCmd `cmd:"" help:"Synthesize text to an audio file."`
}

type ttsVoicesCmd struct{}

func (c *ttsVoicesCmd) Run(a *app) error {
	facade, err := a.facade(watson.Services{TextToSpeech: a.config()})
	if err != nil {
		return err
	}
	voices, err := facade.Queries().ListVoices.Query(a.ctx, watsonquery.ListVoicesMessage{})
	if err != nil {
		return err
	}
	return a.print(voices)
}

type ttsSynthesizeCmd struct {
	Text   string `arg:"" help:"Text to synthesize."`
	Voice  string `help:"Voice name."`
	Accept string `default:"audio/wav" help:"Audio format."`
	Output string `short:"o" required:"" help:"Audio file to write, or - for stdout."`
}

func (c *ttsSynthesizeCmd) Run(a *app) error {
	facade, err := a.facade(watson.Services{TextToSpeech: a.config()})
	if err != nil {
		return err
	}
	msg := watsoncommand.SynthesizeMessage{
		Text:    c.Text,
		Accept:  c.Accept,
		Options: texttospeech.SynthesizeOptions{Voice: c.Voice},
		Output:  a.out,
	}
	if c.Output == "-" {
		_, err := execute[watsoncommand.SynthesisResult](a.ctx, facade.Commands().Synthesize, msg)
		return err
	}
	file, err := os.Create(c.Output)
	if err != nil {
		return core.BadInputFault("watson: create output: "+err.Error(), map[string]any{"file": c.Output})
	}
	defer file.Close()
	msg.Output = file
	result, err := execute[watsoncommand.SynthesisResult](a.ctx, facade.Commands().Synthesize, msg)
	if err != nil {
		return err
	}
	return a.print(map[string]any{
		"file":         c.Output,
		"content_type": result.ContentType,
		"bytes":        result.Bytes,
		"request_id":   result.RequestID,
	})
}

type translateCmd struct {
	Text     translateTextCmd     `cmd:"" help:"Translate text."`
	Identify translateIdentifyCmd `cmd:"" help:"Identify the language of text."`
	Models   translateModelsCmd   `cmd:"" help:"List translation models."`
}

type translateTextCmd struct {
	Text   []string `arg:"" help:"Text to translate."`
	Model  string   `help:"Translation model, for example en-es."`
	Source string   `help:"Source language."`
	Target string   `help:"Target language."`
}

func (c *translateTextCmd) Run(a *app) error {
	facade, err := a.facade(watson.Services{LanguageTranslator: a.config()})
	if err != nil {
		return err
	}
	result, err := execute[languagetranslator.TranslationResult](a.ctx, facade.Commands().Translate, watsoncommand.TranslateMessage{
		Request: languagetranslator.TranslateRequest{Text: c.Text, ModelID: c.Model, Source: c.Source, Target: c.Target},
	})
	if err != nil {
		return err
	}
	return a.print(result)
}

type translateIdentifyCmd struct {
	Text string `arg:"" help:"Text to identify."`
}

func (c *translateIdentifyCmd) Run(a *app) error {
	facade, err := a.facade(watson.Services{LanguageTranslator: a.config()})
	if err != nil {
		return err
	}
	languages, err := facade.Queries().IdentifyLanguage.Query(a.ctx, watsonquery.IdentifyLanguageMessage{Text: c.Text})
	if err != nil {
		return err
	}
	return a.print(languages)
}

type translateModelsCmd struct {
	Source string `help:"Filter by source language."`
	Target string `help:"Filter by target language."`
}

func (c *translateModelsCmd) Run(a *app) error {
	facade, err := a.facade(watson.Services{LanguageTranslator: a.config()})
	if err != nil {
		return err
	}
	models, err := facade.Queries().ListTranslationModels.Query(a.ctx, watsonquery.ListTranslationModelsMessage{
		Options: languagetranslator.ListModelsOptions{Source: c.Source, Target: c.Target},
	})
	if err != nil {
		return err
	}
	return a.print(models)
}

type insightsCmd struct {
	Profile insightsProfileCmd `cmd:"" help:"Build a personality profile from a text or JSON file."`
}

type insightsProfileCmd struct {
	File                   string `arg:"" type:"existingfile" help:"Content file."`
	ContentType            string `short:"t" default:"text/plain" help:"Content type: text/plain, text/html or application/json."`
	Language               string `help:"Content language."`
	RawScores              bool   `help:"Include raw scores."`
	ConsumptionPreferences bool   `help:"Include consumption preferences."`
	CSV                    bool   `name:"csv" help:"Return the profile as CSV."`
}

func (c *insightsProfileCmd) Run(a *app) error {
	content, err := c.content()
	if err != nil {
		return err
	}
	opts := personalityinsights.ProfileOptions{
		ContentLanguage:        c.Language,
		RawScores:              optional(c.RawScores),
		ConsumptionPreferences: optional(c.ConsumptionPreferences),
	}
	if c.CSV {
		client, err := a.client(watson.Services{PersonalityInsights: a.config()})
		if err != nil {
			return err
		}
		opts.CSVHeaders = core.Ptr(true)
		csv, err := client.PersonalityInsights.ProfileCSV(a.ctx, &content, c.ContentType, opts)
		if err != nil {
			return err
		}
		_, err = a.out.Write([]byte(csv))
		return err
	}
	facade, err := a.facade(watson.Services{PersonalityInsights: a.config()})
	if err != nil {
		return err
	}
	profile, err := execute[personalityinsights.Profile](a.ctx, facade.Commands().Profile, watsoncommand.ProfileMessage{
		Content:     content,
		ContentType: c.ContentType,
		Options:     opts,
	})
	if err != nil {
		return err
	}
	return a.print(profile)
}

func (c *insightsProfileCmd) content() (personalityinsights.Content, error) {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return personalityinsights.Content{}, core.BadInputFault("watson: read content: "+err.Error(), map[string]any{"file": c.File})
	}
	if c.ContentType == personalityinsights.ContentTypeJSON {
		var content personalityinsights.Content
		if err := (core.JSONCodec{}).Unmarshal(raw, &content); err != nil {
			return personalityinsights.Content{}, core.BadInputFault("watson: decode content: "+err.Error(), map[string]any{"file": c.File})
		}
		return content, nil
	}
	return personalityinsights.Content{ContentItems: []personalityinsights.ContentItem{{Content: string(raw)}}}, nil
}
