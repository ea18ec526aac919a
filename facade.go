package watson

import (
	watsoncommand "github.com/goliatone/go-watson/command"
	"github.com/goliatone/go-watson/core"
	watsonquery "github.com/goliatone/go-watson/query"
)

type Commands struct {
	Recognize  *watsoncommand.RecognizeCommand
	CreateJob  *watsoncommand.CreateJobCommand
	AddCorpus  *watsoncommand.AddCorpusCommand
	Synthesize *watsoncommand.SynthesizeCommand
	Translate  *watsoncommand.TranslateCommand
	Profile    *watsoncommand.ProfileCommand
}

type Queries struct {
	GetSpeechModel        *watsonquery.GetSpeechModelQuery
	ListSpeechModels      *watsonquery.ListSpeechModelsQuery
	CheckJob              *watsonquery.CheckJobQuery
	ListVoices            *watsonquery.ListVoicesQuery
	GetVoice              *watsonquery.GetVoiceQuery
	ListTranslationModels *watsonquery.ListTranslationModelsQuery
	IdentifyLanguage      *watsonquery.IdentifyLanguageQuery
}

// Facade holds the handlers for the services configured on a Client.
// Handlers of services the client does not carry stay nil.
type Facade struct {
	client   *Client
	commands Commands
	queries  Queries
}

func NewFacade(client *Client) (*Facade, error) {
	if client == nil {
		return nil, core.InternalFault("watson: client is required")
	}
	facade := &Facade{client: client}
	if stt := client.SpeechToText; stt != nil {
		facade.commands.Recognize = watsoncommand.NewRecognizeCommand(stt)
		facade.commands.CreateJob = watsoncommand.NewCreateJobCommand(stt)
		facade.commands.AddCorpus = watsoncommand.NewAddCorpusCommand(stt)
		facade.queries.GetSpeechModel = watsonquery.NewGetSpeechModelQuery(stt)
		facade.queries.ListSpeechModels = watsonquery.NewListSpeechModelsQuery(stt)
		facade.queries.CheckJob = watsonquery.NewCheckJobQuery(stt)
	}
	if tts := client.TextToSpeech; tts != nil {
		facade.commands.Synthesize = watsoncommand.NewSynthesizeCommand(tts)
		facade.queries.ListVoices = watsonquery.NewListVoicesQuery(tts)
		facade.queries.GetVoice = watsonquery.NewGetVoiceQuery(tts)
	}
	if lt := client.LanguageTranslator; lt != nil {
		facade.commands.Translate = watsoncommand.NewTranslateCommand(lt)
		facade.queries.ListTranslationModels = watsonquery.NewListTranslationModelsQuery(lt)
		facade.queries.IdentifyLanguage = watsonquery.NewIdentifyLanguageQuery(lt)
	}
	if pi := client.PersonalityInsights; pi != nil {
		facade.commands.Profile = watsoncommand.NewProfileCommand(pi)
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Client() *Client {
	if f == nil {
		return nil
	}
	return f.client
}
