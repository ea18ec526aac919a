package discovery

type Environment struct {
	EnvironmentID string         `json:"environment_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Created       string         `json:"created,omitempty"`
	Updated       string         `json:"updated,omitempty"`
	Status        string         `json:"status,omitempty"`
	ReadOnly      bool           `json:"read_only"`
	IndexCapacity *IndexCapacity `json:"index_capacity,omitempty"`
}

type IndexCapacity struct {
	Documents   *EnvironmentDocuments `json:"documents,omitempty"`
	DiskUsage   *DiskUsage            `json:"disk_usage,omitempty"`
	Collections *CollectionUsage      `json:"collections,omitempty"`
}

type EnvironmentDocuments struct {
	Indexed        int64 `json:"indexed"`
	MaximumAllowed int64 `json:"maximum_allowed"`
}

type DiskUsage struct {
	UsedBytes           int64 `json:"used_bytes"`
	MaximumAllowedBytes int64 `json:"maximum_allowed_bytes"`
}

type CollectionUsage struct {
	Available      int64 `json:"available"`
	MaximumAllowed int64 `json:"maximum_allowed"`
}

type Environments struct {
	Environments []Environment `json:"environments"`
}

type DocumentCounts struct {
	Available  int64 `json:"available"`
	Processing int64 `json:"processing"`
	Failed     int64 `json:"failed"`
}

type Collection struct {
	CollectionID    string          `json:"collection_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Created         string          `json:"created,omitempty"`
	Updated         string          `json:"updated,omitempty"`
	Status          string          `json:"status,omitempty"`
	ConfigurationID string          `json:"configuration_id,omitempty"`
	Language        string          `json:"language,omitempty"`
	DocumentCounts  *DocumentCounts `json:"document_counts,omitempty"`
}

type Collections struct {
	Collections []Collection `json:"collections"`
}

// QueryResult is one matching document. Its fields depend on the ingested
// content, so it is kept as a generic map.
type QueryResult map[string]any

func (r QueryResult) ID() string {
	id, _ := r["id"].(string)
	return id
}

func (r QueryResult) Score() float64 {
	score, _ := r["score"].(float64)
	return score
}

type QueryPassage struct {
	DocumentID   string  `json:"document_id"`
	PassageScore float64 `json:"passage_score"`
	PassageText  string  `json:"passage_text"`
	StartOffset  int64   `json:"start_offset"`
	EndOffset    int64   `json:"end_offset"`
	Field        string  `json:"field"`
}

type QueryWarning struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type QueryResponse struct {
	MatchingResults   int64            `json:"matching_results"`
	Results           []QueryResult    `json:"results"`
	Aggregations      []map[string]any `json:"aggregations,omitempty"`
	Passages          []QueryPassage   `json:"passages,omitempty"`
	DuplicatesRemoved int64            `json:"duplicates_removed,omitempty"`
	Warnings          []QueryWarning   `json:"warnings,omitempty"`
}

type QueryEntitiesEntity struct {
	Text string `json:"text,omitempty"`
	Type string `json:"type,omitempty"`
}

type QueryEntitiesContext struct {
	Text string `json:"text,omitempty"`
}

// QueryEntities asks for entities related to Entity, optionally within a
// context. Feature is "disambiguate" or "similar_entities".
type QueryEntities struct {
	Feature string                `json:"feature,omitempty"`
	Entity  *QueryEntitiesEntity  `json:"entity,omitempty"`
	Context *QueryEntitiesContext `json:"context,omitempty"`
	Count   *int64                `json:"count,omitempty"`
}

type QueryEvidenceEntity struct {
	Type        string `json:"type"`
	Text        string `json:"text"`
	StartOffset int64  `json:"start_offset"`
	EndOffset   int64  `json:"end_offset"`
}

type QueryEvidence struct {
	DocumentID  string                `json:"document_id"`
	Field       string                `json:"field"`
	StartOffset int64                 `json:"start_offset"`
	EndOffset   int64                 `json:"end_offset"`
	Entities    []QueryEvidenceEntity `json:"entities,omitempty"`
}

type QueryEntitiesResponseItem struct {
	Text     string          `json:"text"`
	Type     string          `json:"type"`
	Evidence []QueryEvidence `json:"evidence,omitempty"`
}

type QueryEntitiesResponse struct {
	Entities []QueryEntitiesResponseItem `json:"entities"`
}
