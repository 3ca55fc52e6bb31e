package db

// Index field and vector algorithm constants for FT.CREATE.
const (
	StorageHash = "HASH"

	IndexFieldTag     = "TAG"
	IndexFieldNumeric = "NUMERIC"
	IndexFieldVector  = "VECTOR"

	VectorHNSW     = "HNSW"
	DistanceCosine = "COSINE"
)

// IndexDefinition describes an FT index over hash records.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}

// IndexField is a single schema entry of an index. Alias names the
// queryable attribute (FT.SEARCH @alias) when it differs from the hash field.
type IndexField struct {
	Name              string
	Alias             string
	Type              string
	VectorDim         int
	VectorM           int
	VectorEFConstruct int
}

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single hit from a search. Score is normalized cosine
// similarity in [0,1] (1 = identical direction).
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
