// Package discovery is the client for the read side of the Watson Discovery
// v1 service: environments, collections, queries and entity queries.
package discovery

import (
	"context"
	"net/http"

	"github.com/goliatone/go-watson/core"
	"github.com/goliatone/go-watson/services"
)

const (
	ServiceName    = "discovery"
	DefaultURL     = "https://gateway.watsonplatform.net/discovery/api"
	DefaultVersion = "2017-11-07"
)

var Definition = services.Definition{Name: ServiceName, DefaultURL: DefaultURL, DefaultVersion: DefaultVersion}

type Service struct {
	invoker *core.Invoker
}

func New(cfg core.Config, opts ...core.Option) (*Service, error) {
	invoker, err := services.NewInvoker(Definition, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Service{invoker: invoker}, nil
}

func NewWithInvoker(invoker *core.Invoker) *Service {
	return &Service{invoker: invoker}
}

func (s *Service) Invoker() *core.Invoker {
	return s.invoker
}

func (s *Service) ListEnvironments(ctx context.Context, name string) (Environments, error) {
	return core.Invoke[Environments](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/environments").
		WithQuery("name", name))
}

func (s *Service) GetEnvironment(ctx context.Context, environmentID string) (Environment, error) {
	if err := core.Require(core.Arg("environment_id", environmentID)); err != nil {
		return Environment{}, err
	}
	return core.Invoke[Environment](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/environments/{environment_id}").
		WithPathParam("environment_id", environmentID))
}

func (s *Service) ListCollections(ctx context.Context, environmentID, name string) (Collections, error) {
	if err := core.Require(core.Arg("environment_id", environmentID)); err != nil {
		return Collections{}, err
	}
	return core.Invoke[Collections](ctx, s.invoker, core.NewRequest(http.MethodGet, "/v1/environments/{environment_id}/collections").
		WithPathParam("environment_id", environmentID).
		WithQuery("name", name))
}

type QueryOptions struct {
	Filter               string
	Query                string
	NaturalLanguageQuery string
	Aggregation          string
	Count                *int64
	Offset               *int64
	Return               []string
	Sort                 []string
	Highlight            *bool
	Passages             *bool
	PassagesFields       []string
	PassagesCount        *int64
	PassagesCharacters   *int64
	Deduplicate          *bool
	DeduplicateField     string
	Similar              *bool
	SimilarDocumentIDs   []string
	SimilarFields        []string
}

func (s *Service) Query(ctx context.Context, environmentID, collectionID string, opts QueryOptions) (QueryResponse, error) {
	if err := core.Require(core.Arg("environment_id", environmentID), core.Arg("collection_id", collectionID)); err != nil {
		return QueryResponse{}, err
	}
	req := collectionRequest(http.MethodGet, "/v1/environments/{environment_id}/collections/{collection_id}/query", environmentID, collectionID).
		WithQuery("filter", opts.Filter).
		WithQuery("query", opts.Query).
		WithQuery("natural_language_query", opts.NaturalLanguageQuery).
		WithQuery("aggregation", opts.Aggregation).
		WithQuery("count", opts.Count).
		WithQuery("offset", opts.Offset).
		WithQuery("return", opts.Return).
		WithQuery("sort", opts.Sort).
		WithQuery("highlight", opts.Highlight).
		WithQuery("passages", opts.Passages).
		WithQuery("passages.fields", opts.PassagesFields).
		WithQuery("passages.count", opts.PassagesCount).
		WithQuery("passages.characters", opts.PassagesCharacters).
		WithQuery("deduplicate", opts.Deduplicate).
		WithQuery("deduplicate.field", opts.DeduplicateField).
		WithQuery("similar", opts.Similar).
		WithQuery("similar.document_ids", opts.SimilarDocumentIDs).
		WithQuery("similar.fields", opts.SimilarFields)
	return core.Invoke[QueryResponse](ctx, s.invoker, req)
}

// QueryEntities finds entities related to the one described in query, with
// the documents that mention them as evidence.
func (s *Service) QueryEntities(ctx context.Context, environmentID, collectionID string, query *QueryEntities) (QueryEntitiesResponse, error) {
	if err := core.Require(
		core.Arg("environment_id", environmentID),
		core.Arg("collection_id", collectionID),
		core.Arg("entity_query", query),
	); err != nil {
		return QueryEntitiesResponse{}, err
	}
	return core.Invoke[QueryEntitiesResponse](ctx, s.invoker,
		collectionRequest(http.MethodPost, "/v1/environments/{environment_id}/collections/{collection_id}/query_entities", environmentID, collectionID).
			WithJSON(query))
}

func collectionRequest(method, path, environmentID, collectionID string) *core.Request {
	return core.NewRequest(method, path).
		WithPathParam("environment_id", environmentID).
		WithPathParam("collection_id", collectionID)
}
