package personalityinsights

import (
	"context"
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/internal/watsontest"
)

func newTestService(t *testing.T, server *watsontest.Server) *Service {
	t.Helper()
	svc, err := New(server.Config())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func sampleContent() *Content {
	return &Content{ContentItems: []ContentItem{
		{Content: "I enjoy long walks and quiet evenings.", ContentType: "text/plain", Language: "en"},
		{Content: "Work keeps me curious.", ContentType: "text/plain", Language: "en"},
	}}
}

func TestProfile_JSONContent(t *testing.T) {
	server := watsontest.NewServer(t)
	server.JSON(http.MethodPost, "/v3/profile", http.StatusOK, Profile{
		ProcessedLanguage: "en",
		WordCount:         11,
		Personality: []Trait{{
			TraitID:    "big5_openness",
			Name:       "Openness",
			Percentile: 0.8,
			Children:   []Trait{{TraitID: "facet_adventurousness", Percentile: 0.6}},
		}},
	})
	svc := newTestService(t, server)

	profile, err := svc.Profile(context.Background(), sampleContent(), ContentTypeJSON, ProfileOptions{
		ContentLanguage: "en",
		RawScores:       core.Ptr(true),
	})
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if trait, ok := profile.Trait("facet_adventurousness"); !ok || trait.Percentile != 0.6 {
		t.Fatalf("expected nested trait, got %+v", trait)
	}

	last := server.Last()
	if got := last.RawQuery; got != "raw_scores=true&version=2017-10-13" {
		t.Fatalf("unexpected query %q", got)
	}
	if got := last.Header.Get("Content-Language"); got != "en" {
		t.Fatalf("unexpected content language %q", got)
	}
	if _, ok := last.Header["Accept-Language"]; ok {
		t.Fatalf("expected Accept-Language to be omitted")
	}
	if got := last.Header.Get("Accept"); got != ContentTypeJSON {
		t.Fatalf("unexpected accept %q", got)
	}
	sent := Content{}
	if err := json.Unmarshal(last.Body, &sent); err != nil || len(sent.ContentItems) != 2 {
		t.Fatalf("unexpected body %q (%v)", last.Body, err)
	}
}

func TestProfile_PlainTextSendsJoinedContent(t *testing.T) {
	server := watsontest.NewServer(t)
	server.JSON(http.MethodPost, "/v3/profile", http.StatusOK, Profile{ProcessedLanguage: "en"})
	svc := newTestService(t, server)

	if _, err := svc.Profile(context.Background(), sampleContent(), "text/plain;charset=utf-8", ProfileOptions{}); err != nil {
		t.Fatalf("profile: %v", err)
	}
	last := server.Last()
	if got := string(last.Body); got != "I enjoy long walks and quiet evenings.\nWork keeps me curious." {
		t.Fatalf("unexpected body %q", got)
	}
	if got := last.Header.Get("Content-Type"); got != "text/plain;charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestProfileCSV_ReturnsRawCSV(t *testing.T) {
	server := watsontest.NewServer(t)
	server.Raw(http.MethodPost, "/v3/profile", http.StatusOK, ContentTypeCSV, []byte("big5_openness,big5_conscientiousness\n0.8,0.4\n"))
	svc := newTestService(t, server)

	out, err := svc.ProfileCSV(context.Background(), sampleContent(), ContentTypeJSON, ProfileOptions{CSVHeaders: core.Ptr(true)})
	if err != nil {
		t.Fatalf("profile csv: %v", err)
	}
	if out != "big5_openness,big5_conscientiousness\n0.8,0.4\n" {
		t.Fatalf("unexpected csv %q", out)
	}
	last := server.Last()
	if got := last.Header.Get("Accept"); got != ContentTypeCSV {
		t.Fatalf("unexpected accept %q", got)
	}
	if got := last.Query.Get("csv_headers"); got != "true" {
		t.Fatalf("unexpected csv_headers %q", got)
	}
}

func TestProfile_ValidatesInputsBeforeNetwork(t *testing.T) {
	server := watsontest.NewServer(t)
	svc := newTestService(t, server)

	_, err := svc.Profile(context.Background(), nil, "", ProfileOptions{})
	if got := core.MissingArguments(err); len(got) != 2 || got[0] != "content" || got[1] != "content_type" {
		t.Fatalf("expected content and content_type to be named, got %v", got)
	}
	_, err = svc.Profile(context.Background(), sampleContent(), "application/xml", ProfileOptions{})
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != core.WatsonErrorBadInput {
		t.Fatalf("expected bad input fault, got %v", err)
	}
	if server.Count() != 0 {
		t.Fatalf("expected no requests, got %d", server.Count())
	}
}

func TestProfile_InsufficientInputIsProtocolFault(t *testing.T) {
	server := watsontest.NewServer(t)
	server.JSON(http.MethodPost, "/v3/profile", http.StatusBadRequest, core.ServiceError{
		Code:  http.StatusBadRequest,
		Error: "The number of words 11 is less than the minimum number of words required for analysis: 100",
	})
	svc := newTestService(t, server)

	_, err := svc.Profile(context.Background(), sampleContent(), ContentTypeJSON, ProfileOptions{})
	if core.FaultKindOf(err) != core.FaultProtocol || core.StatusCodeOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 protocol fault, got %v", err)
	}
}
