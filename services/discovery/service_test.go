package discovery

import (
	"context"
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
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

func TestListEnvironments_AppendsVersion(t *testing.T) {
	server := watsontest.NewServer(t)
	server.JSON(http.MethodGet, "/v1/environments", http.StatusOK, Environments{Environments: []Environment{
		{EnvironmentID: "system", Name: "Watson System Environment", ReadOnly: true},
	}})
	svc := newTestService(t, server)

	envs, err := svc.ListEnvironments(context.Background(), "")
	if err != nil {
		t.Fatalf("list environments: %v", err)
	}
	if len(envs.Environments) != 1 || !envs.Environments[0].ReadOnly {
		t.Fatalf("unexpected environments %+v", envs)
	}
	if got := server.Last().RawQuery; got != "version="+DefaultVersion {
		t.Fatalf("unexpected query %q", got)
	}
}

func TestListEnvironments_ConfiguredVersionWins(t *testing.T) {
	server := watsontest.NewServer(t)
	server.JSON(http.MethodGet, "/v1/environments", http.StatusOK, Environments{})
	cfg := server.Config()
	cfg.Version = "2018-03-05"
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.ListEnvironments(context.Background(), "byod"); err != nil {
		t.Fatalf("list environments: %v", err)
	}
	if got := server.Last().RawQuery; got != "name=byod&version=2018-03-05" {
		t.Fatalf("unexpected query %q", got)
	}
}

func TestGetEnvironment_DecodesCapacity(t *testing.T) {
	server := watsontest.NewServer(t)
	server.JSON(http.MethodGet, "/v1/environments/{environment_id}", http.StatusOK, `{
		"environment_id": "env-1",
		"name": "byod",
		"index_capacity": {"documents": {"indexed": 42, "maximum_allowed": 1000}}
	}`)
	svc := newTestService(t, server)

	env, err := svc.GetEnvironment(context.Background(), "env-1")
	if err != nil {
		t.Fatalf("get environment: %v", err)
	}
	if env.IndexCapacity == nil || env.IndexCapacity.Documents == nil || env.IndexCapacity.Documents.Indexed != 42 {
		t.Fatalf("unexpected capacity %+v", env.IndexCapacity)
	}
}

func TestListCollections_RequiresEnvironment(t *testing.T) {
	server := watsontest.NewServer(t)
	svc := newTestService(t, server)

	_, err := svc.ListCollections(context.Background(), "", "")
	if got := core.MissingArguments(err); len(got) != 1 || got[0] != "environment_id" {
		t.Fatalf("expected environment_id to be named, got %v", got)
	}
	if server.Count() != 0 {
		t.Fatalf("expected no requests, got %d", server.Count())
	}
}

func TestQuery_EncodesDottedParameters(t *testing.T) {
	server := watsontest.NewServer(t)
	server.JSON(http.MethodGet, "/v1/environments/{environment_id}/collections/{collection_id}/query", http.StatusOK, `{
		"matching_results": 1,
		"results": [{"id": "doc-1", "score": 1.5, "title": "Watson"}]
	}`)
	svc := newTestService(t, server)

	res, err := svc.Query(context.Background(), "env-1", "col-1", QueryOptions{
		NaturalLanguageQuery: "who built watson",
		Count:                core.Ptr[int64](5),
		Return:               []string{"title", "url"},
		Passages:             core.Ptr(true),
		PassagesFields:       []string{"text"},
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if res.MatchingResults != 1 || res.Results[0].ID() != "doc-1" || res.Results[0].Score() != 1.5 {
		t.Fatalf("unexpected response %+v", res)
	}
	query := server.Last().Query
	if got := query.Get("return"); got != "title,url" {
		t.Fatalf("unexpected return %q", got)
	}
	if got := query.Get("passages.fields"); got != "text" {
		t.Fatalf("unexpected passages.fields %q", got)
	}
	if query.Has("filter") || query.Has("offset") || query.Has("similar") {
		t.Fatalf("expected absent options to be omitted, got %v", query)
	}
}

func TestQueryEntities_PostsEntityQuery(t *testing.T) {
	server := watsontest.NewServer(t)
	server.JSON(http.MethodPost, "/v1/environments/{environment_id}/collections/{collection_id}/query_entities", http.StatusOK, QueryEntitiesResponse{
		Entities: []QueryEntitiesResponseItem{{Text: "IBM", Type: "Company"}},
	})
	svc := newTestService(t, server)

	res, err := svc.QueryEntities(context.Background(), "env-1", "col-1", &QueryEntities{
		Feature: "disambiguate",
		Entity:  &QueryEntitiesEntity{Text: "Big Blue"},
		Count:   core.Ptr[int64](3),
	})
	if err != nil {
		t.Fatalf("query entities: %v", err)
	}
	if len(res.Entities) != 1 || res.Entities[0].Text != "IBM" {
		t.Fatalf("unexpected entities %+v", res)
	}
	sent := map[string]any{}
	if err := json.Unmarshal(server.Last().Body, &sent); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if sent["feature"] != "disambiguate" || sent["count"] != float64(3) {
		t.Fatalf("unexpected body %v", sent)
	}
	if _, ok := sent["context"]; ok {
		t.Fatalf("expected context to be omitted, got %v", sent)
	}
}
