// Package candidate adapts the vector store for the candidates namespace:
// upsert-by-id with metadata, fetch-by-id, metadata-only patch, and top-K
// similarity search. Each record is one Redis hash; the embedding lives in
// the __vector field as a binary FLOAT32 blob.
package candidate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/db"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
)

const namespace = "candidates"

// store is the consumer interface for candidate records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// HNSWConfig holds index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the candidate side of usecase contracts.
type Repo struct {
	store     store
	textLimit int
	vectorDim int
	hnsw      HNSWConfig
}

// New creates a candidate repository. textLimit bounds the resume text
// prefix persisted as metadata.
func New(s store, vectorDim, textLimit int) *Repo {
	if textLimit <= 0 {
		textLimit = 1000
	}
	return &Repo{store: s, textLimit: textLimit, vectorDim: vectorDim}
}

// WithHNSW configures HNSW index build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the candidates FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := &db.IndexDefinition{
		Name:     indexName(),
		Prefixes: []string{keyPrefix()},
		Fields: []db.IndexField{
			{Name: fieldStatus, Type: db.IndexFieldTag},
			{Name: fieldCreatedAt, Type: db.IndexFieldNumeric},
			{Name: fieldRelevance, Type: db.IndexFieldNumeric},
			{
				Name:              fieldVector,
				Alias:             "vector",
				Type:              db.IndexFieldVector,
				VectorDim:         r.vectorDim,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create candidates index: %w", err)
	}
	return nil
}

// Upsert inserts or replaces a candidate record keyed by its id. The stored
// resume text is truncated to the configured prefix length.
func (r *Repo) Upsert(ctx context.Context, c *domain.Candidate, vector []float32) error {
	fields := candidateToFields(c, r.textLimit)
	fields[fieldVector] = vectorToBytes(vector)

	if err := r.store.HSet(ctx, docKey(c.ID), fields); err != nil {
		return fmt.Errorf("upsert candidate %s: %w", c.ID, err)
	}
	return nil
}

// Fetch returns the stored candidate and its embedding vector.
func (r *Repo) Fetch(ctx context.Context, id string) (domain.Candidate, []float32, error) {
	m, err := r.store.HGetAll(ctx, docKey(id))
	if err != nil {
		return domain.Candidate{}, nil, fmt.Errorf("fetch candidate %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.Candidate{}, nil, fmt.Errorf("candidate %s: %w", id, domain.ErrNotFound)
	}

	c := candidateFromFields(id, m)
	return c, bytesToVector(m[fieldVector]), nil
}

// SetStatus patches the lifecycle status without touching the embedding:
// only the status and updated_at hash fields are written, so the stored
// __vector blob stays bit-identical.
func (r *Repo) SetStatus(ctx context.Context, id string, status domain.Status, now time.Time) error {
	key := docKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check candidate %s: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("candidate %s: %w", id, domain.ErrNotFound)
	}

	patch := map[string]string{
		fieldStatus:    string(status),
		fieldUpdatedAt: strconv.FormatInt(now.UnixMilli(), 10),
	}
	if err := r.store.HSet(ctx, key, patch); err != nil {
		return fmt.Errorf("update candidate %s status: %w", id, err)
	}
	return nil
}

// SearchKNN returns up to topK nearest candidates ordered by similarity
// descending, each with its normalized score as a rounded percentage.
func (r *Repo) SearchKNN(ctx context.Context, vector []float32, topK int) ([]domain.Match, error) {
	q := &db.KNNQuery{
		IndexName:    indexName(),
		Vector:       vector,
		K:            topK,
		ReturnFields: returnFields(),
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	matches := make([]domain.Match, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := idFromKey(entry.Key)
		matches = append(matches, domain.Match{
			Candidate:  candidateFromFields(id, entry.Fields),
			MatchScore: scorePercent(entry.Score),
		})
	}
	return matches, nil
}

// scorePercent converts a [0,1] similarity to a rounded integer percentage.
func scorePercent(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 100
	}
	return int(score*100 + 0.5)
}
