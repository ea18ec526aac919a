package query

import (
	"context"

	"github.com/goliatone/go-watson/services/languagetranslator"
	"github.com/goliatone/go-watson/services/speechtotext"
	"github.com/goliatone/go-watson/services/texttospeech"
)

type SpeechModelReader interface {
	GetModel(ctx context.Context, modelID string) (speechtotext.SpeechModel, error)
	ListModels(ctx context.Context) (speechtotext.SpeechModels, error)
}

type RecognitionJobReader interface {
	CheckJob(ctx context.Context, id string) (speechtotext.RecognitionJob, error)
}

type VoiceReader interface {
	GetVoice(ctx context.Context, voice, customizationID string) (texttospeech.Voice, error)
	ListVoices(ctx context.Context) (texttospeech.Voices, error)
}

type TranslationReader interface {
	ListModels(ctx context.Context, opts languagetranslator.ListModelsOptions) (languagetranslator.TranslationModels, error)
	Identify(ctx context.Context, text string) (languagetranslator.IdentifiedLanguages, error)
}

type GetSpeechModelQuery struct {
	reader SpeechModelReader
}

func NewGetSpeechModelQuery(reader SpeechModelReader) *GetSpeechModelQuery {
	return &GetSpeechModelQuery{reader: reader}
}

func (q *GetSpeechModelQuery) Query(ctx context.Context, msg GetSpeechModelMessage) (speechtotext.SpeechModel, error) {
	if q == nil || q.reader == nil {
		return speechtotext.SpeechModel{}, queryDependencyError("query: speech model reader is required")
	}
	if err := msg.Validate(); err != nil {
		return speechtotext.SpeechModel{}, err
	}
	return q.reader.GetModel(ctx, msg.ModelID)
}

type ListSpeechModelsQuery struct {
	reader SpeechModelReader
}

func NewListSpeechModelsQuery(reader SpeechModelReader) *ListSpeechModelsQuery {
	return &ListSpeechModelsQuery{reader: reader}
}

func (q *ListSpeechModelsQuery) Query(ctx context.Context, _ ListSpeechModelsMessage) (speechtotext.SpeechModels, error) {
	if q == nil || q.reader == nil {
		return speechtotext.SpeechModels{}, queryDependencyError("query: speech model reader is required")
	}
	return q.reader.ListModels(ctx)
}

type CheckJobQuery struct {
	reader RecognitionJobReader
}

func NewCheckJobQuery(reader RecognitionJobReader) *CheckJobQuery {
	return &CheckJobQuery{reader: reader}
}

func (q *CheckJobQuery) Query(ctx context.Context, msg CheckJobMessage) (speechtotext.RecognitionJob, error) {
	if q == nil || q.reader == nil {
		return speechtotext.RecognitionJob{}, queryDependencyError("query: recognition job reader is required")
	}
	if err := msg.Validate(); err != nil {
		return speechtotext.RecognitionJob{}, err
	}
	return q.reader.CheckJob(ctx, msg.JobID)
}

type ListVoicesQuery struct {
	reader VoiceReader
}

func NewListVoicesQuery(reader VoiceReader) *ListVoicesQuery {
	return &ListVoicesQuery{reader: reader}
}

func (q *ListVoicesQuery) Query(ctx context.Context, _ ListVoicesMessage) (texttospeech.Voices, error) {
	if q == nil || q.reader == nil {
		return texttospeech.Voices{}, queryDependencyError("query: voice reader is required")
	}
	return q.reader.ListVoices(ctx)
}

type GetVoiceQuery struct {
	reader VoiceReader
}

func NewGetVoiceQuery(reader VoiceReader) *GetVoiceQuery {
	return &GetVoiceQuery{reader: reader}
}

func (q *GetVoiceQuery) Query(ctx context.Context, msg GetVoiceMessage) (texttospeech.Voice, error) {
	if q == nil || q.reader == nil {
		return texttospeech.Voice{}, queryDependencyError("query: voice reader is required")
	}
	if err := msg.Validate(); err != nil {
		return texttospeech.Voice{}, err
	}
	return q.reader.GetVoice(ctx, msg.Voice, msg.CustomizationID)
}

type ListTranslationModelsQuery struct {
	reader TranslationReader
}

func NewListTranslationModelsQuery(reader TranslationReader) *ListTranslationModelsQuery {
	return &ListTranslationModelsQuery{reader: reader}
}

func (q *ListTranslationModelsQuery) Query(ctx context.Context, msg ListTranslationModelsMessage) (languagetranslator.TranslationModels, error) {
	if q == nil || q.reader == nil {
		return languagetranslator.TranslationModels{}, queryDependencyError("query: translation reader is required")
	}
	return q.reader.ListModels(ctx, msg.Options)
}

type IdentifyLanguageQuery struct {
	reader TranslationReader
}

func NewIdentifyLanguageQuery(reader TranslationReader) *IdentifyLanguageQuery {
	return &IdentifyLanguageQuery{reader: reader}
}

func (q *IdentifyLanguageQuery) Query(ctx context.Context, msg IdentifyLanguageMessage) (languagetranslator.IdentifiedLanguages, error) {
	if q == nil || q.reader == nil {
		return languagetranslator.IdentifiedLanguages{}, queryDependencyError("query: translation reader is required")
	}
	if err := msg.Validate(); err != nil {
		return languagetranslator.IdentifiedLanguages{}, err
	}
	return q.reader.Identify(ctx, msg.Text)
}
