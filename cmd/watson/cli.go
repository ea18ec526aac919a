package main

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kong"
	json "github.com/goccy/go-json"
	"github.com/goliatone/go-watson"
	"github.com/goliatone/go-watson/core"
)

type Globals struct {
	URL      string        `help:"Service endpoint. Overrides the credentials file."`
	Username string        `help:"Basic auth username."`
	Password string        `help:"Basic auth password."`
	APIKey   string        `name:"apikey" help:"IAM API key."`
	Token    string        `help:"Bearer access token."`
	Timeout  time.Duration `help:"Per-request timeout."`
	NoColor  bool          `help:"Disable colored output."`
	Verbose  bool          `short:"v" help:"Log every call to stderr."`
}

type cli struct {
	Globals `embed:""`

	STT       sttCmd       `cmd:"" name:"stt" help:"Speech to Text."`
	TTS       ttsCmd       `cmd:"" name:"tts" help:"Text to Speech."`
	Translate translateCmd `cmd:"" help:"Language Translator."`
	Insights  insightsCmd  `cmd:"" help:"Personality Insights."`
}

// app is bound into every command's Run method.
type app struct {
	globals *Globals
	out     io.Writer
	errOut  io.Writer
	ctx     context.Context
}

func run(args []string, stdout, stderr io.Writer) int {
	var root cli
	parser, err := kong.New(&root,
		kong.Name("watson"),
		kong.Description("Call the Watson services."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		printFault(stderr, core.InternalFault("watson: "+err.Error()))
		return 2
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		printFault(stderr, core.BadInputFault(err.Error(), nil))
		return 2
	}
	configureColor(root.NoColor)

	application := &app{globals: &root.Globals, out: stdout, errOut: stderr, ctx: context.Background()}
	if err := kctx.Run(application); err != nil {
		printFault(stderr, err)
		return 1
	}
	return 0
}

// facade connects only the services the command needs.
func (a *app) facade(services watson.Services) (*watson.Facade, error) {
	client, err := a.client(services)
	if err != nil {
		return nil, err
	}
	return watson.NewFacade(client)
}

func (a *app) client(services watson.Services) (*watson.Client, error) {
	services.CredentialSources = true
	var opts []watson.Option
	if a.globals.Verbose {
		opts = append(opts, watson.WithLogger(newConsoleLogger(a.errOut)))
	}
	return watson.New(services, opts...)
}

// config is the runtime layer built from the global flags.
func (a *app) config() *watson.Config {
	return &watson.Config{
		URL:     a.globals.URL,
		Timeout: a.globals.Timeout,
		Auth: watson.AuthConfig{
			Username:    a.globals.Username,
			Password:    a.globals.Password,
			APIKey:      a.globals.APIKey,
			BearerToken: a.globals.Token,
		},
	}
}

func (a *app) print(value any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
