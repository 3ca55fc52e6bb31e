// Package job adapts the vector store for the jobs namespace. Postings are
// write-only in the observed flows: indexed once, never updated.
package job

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/db"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
)

const namespace = "jobs"

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldSkills      = "required_skills"
	fieldExperience  = "experience"
	fieldEducation   = "education"
	fieldCreatedAt   = "created_at"
	fieldVector      = "__vector"
)

// store is the consumer interface for job records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// HNSWConfig holds index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the job side of usecase contracts.
type Repo struct {
	store     store
	vectorDim int
	hnsw      HNSWConfig
}

// New creates a job repository.
func New(s store, vectorDim int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim}
}

// WithHNSW configures HNSW index build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the jobs FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := &db.IndexDefinition{
		Name:     indexName(),
		Prefixes: []string{keyPrefix()},
		Fields: []db.IndexField{
			{Name: fieldCreatedAt, Type: db.IndexFieldNumeric},
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
		return fmt.Errorf("create jobs index: %w", err)
	}
	return nil
}

// Upsert inserts or replaces a job posting keyed by its id. requiredSkills
// is flattened to a delimited string in metadata.
func (r *Repo) Upsert(ctx context.Context, j *domain.JobDescription, vector []float32) error {
	fields := map[string]string{
		fieldTitle:       j.Title,
		fieldDescription: j.Description,
		fieldSkills:      strings.Join(j.RequiredSkills, ", "),
		fieldExperience:  j.Experience,
		fieldEducation:   j.Education,
		fieldCreatedAt:   strconv.FormatInt(j.CreatedAt.UnixMilli(), 10),
		fieldVector:      vectorToBytes(vector),
	}

	if err := r.store.HSet(ctx, docKey(j.ID), fields); err != nil {
		return fmt.Errorf("upsert job %s: %w", j.ID, err)
	}
	return nil
}

// Fetch returns a stored job posting.
func (r *Repo) Fetch(ctx context.Context, id string) (domain.JobDescription, error) {
	m, err := r.store.HGetAll(ctx, docKey(id))
	if err != nil {
		return domain.JobDescription{}, fmt.Errorf("fetch job %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.JobDescription{}, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}

	ms, _ := strconv.ParseInt(m[fieldCreatedAt], 10, 64)
	j := domain.JobDescription{
		ID:             id,
		Title:          m[fieldTitle],
		Description:    m[fieldDescription],
		RequiredSkills: splitList(m[fieldSkills]),
		Experience:     m[fieldExperience],
		Education:      m[fieldEducation],
	}
	if ms > 0 {
		j.CreatedAt = time.UnixMilli(ms).UTC()
	}
	return j, nil
}

func docKey(id string) string {
	return keyPrefix() + id
}

func keyPrefix() string {
	return fmt.Sprintf("%s%s:", domain.KeyPrefix, namespace)
}

func indexName() string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, namespace)
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
