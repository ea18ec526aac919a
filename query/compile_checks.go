package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-watson/services/languagetranslator"
	"github.com/goliatone/go-watson/services/speechtotext"
	"github.com/goliatone/go-watson/services/texttospeech"
)

var (
	_ gocmd.Querier[GetSpeechModelMessage, speechtotext.SpeechModel]                    = (*GetSpeechModelQuery)(nil)
	_ gocmd.Querier[ListSpeechModelsMessage, speechtotext.SpeechModels]                 = (*ListSpeechModelsQuery)(nil)
	_ gocmd.Querier[CheckJobMessage, speechtotext.RecognitionJob]                       = (*CheckJobQuery)(nil)
	_ gocmd.Querier[ListVoicesMessage, texttospeech.Voices]                             = (*ListVoicesQuery)(nil)
	_ gocmd.Querier[GetVoiceMessage, texttospeech.Voice]                                = (*GetVoiceQuery)(nil)
	_ gocmd.Querier[ListTranslationModelsMessage, languagetranslator.TranslationModels] = (*ListTranslationModelsQuery)(nil)
	_ gocmd.Querier[IdentifyLanguageMessage, languagetranslator.IdentifiedLanguages]    = (*IdentifyLanguageQuery)(nil)

	_ SpeechModelReader    = (*speechtotext.Service)(nil)
	_ RecognitionJobReader = (*speechtotext.Service)(nil)
	_ VoiceReader          = (*texttospeech.Service)(nil)
	_ TranslationReader    = (*languagetranslator.Service)(nil)
)
