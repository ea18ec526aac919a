package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-watson/services/languagetranslator"
	"github.com/goliatone/go-watson/services/personalityinsights"
	"github.com/goliatone/go-watson/services/speechtotext"
	"github.com/goliatone/go-watson/services/texttospeech"
)

var (
	_ gocmd.Commander[RecognizeMessage]  = (*RecognizeCommand)(nil)
	_ gocmd.Commander[CreateJobMessage]  = (*CreateJobCommand)(nil)
	_ gocmd.Commander[AddCorpusMessage]  = (*AddCorpusCommand)(nil)
	_ gocmd.Commander[SynthesizeMessage] = (*SynthesizeCommand)(nil)
	_ gocmd.Commander[TranslateMessage]  = (*TranslateCommand)(nil)
	_ gocmd.Commander[ProfileMessage]    = (*ProfileCommand)(nil)

	_ SpeechRecognizer  = (*speechtotext.Service)(nil)
	_ SpeechSynthesizer = (*texttospeech.Service)(nil)
	_ Translator        = (*languagetranslator.Service)(nil)
	_ Profiler          = (*personalityinsights.Service)(nil)
)
