package job

import (
	"context"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
)

// Repository defines the storage contract for job postings.
type Repository interface {
	Upsert(ctx context.Context, j *domain.JobDescription, vector []float32) error
	Fetch(ctx context.Context, id string) (domain.JobDescription, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
