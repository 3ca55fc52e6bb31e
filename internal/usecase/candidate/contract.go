package candidate

import (
	"context"
	"time"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
)

// Repository defines the storage contract for candidate records.
type Repository interface {
	Upsert(ctx context.Context, c *domain.Candidate, vector []float32) error
	Fetch(ctx context.Context, id string) (domain.Candidate, []float32, error)
	SetStatus(ctx context.Context, id string, status domain.Status, now time.Time) error
	SearchKNN(ctx context.Context, vector []float32, topK int) ([]domain.Match, error)
}

// Extractor pulls plain text out of an uploaded resume file.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Enricher produces structured profiles and evaluations from resume text.
type Enricher interface {
	ExtractProfile(ctx context.Context, resumeText string) (domain.Profile, error)
	Summarize(ctx context.Context, c domain.Candidate, jobDescription string) (domain.Evaluation, error)
}
