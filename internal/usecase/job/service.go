// Package job handles job posting creation and retrieval.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
)

// CreateInput is a new job posting as submitted by a recruiter.
type CreateInput struct {
	Title          string
	Description    string
	RequiredSkills []string
	Experience     string
	Education      string
}

// Service handles the job posting lifecycle.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a job service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Create validates, vectorizes, and stores a job posting. The returned job
// carries the generated ID.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.JobDescription, error) {
	if in.Title == "" || in.Description == "" {
		return domain.JobDescription{}, fmt.Errorf(
			"title and description are required: %w", domain.ErrValidation,
		)
	}

	j := domain.JobDescription{
		ID:             uuid.NewString(),
		Title:          in.Title,
		Description:    in.Description,
		RequiredSkills: in.RequiredSkills,
		Experience:     in.Experience,
		Education:      in.Education,
		CreatedAt:      time.Now().UTC(),
	}
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}

	embResult, err := s.embed.Embed(ctx, j.EmbeddingText())
	if err != nil {
		return domain.JobDescription{}, fmt.Errorf("vectorize job: %w", err)
	}

	if err := s.repo.Upsert(ctx, &j, embResult.Embedding); err != nil {
		return domain.JobDescription{}, fmt.Errorf("store job: %w", err)
	}

	return j, nil
}

// Fetch returns a stored job posting by ID.
func (s *Service) Fetch(ctx context.Context, id string) (domain.JobDescription, error) {
	if id == "" {
		return domain.JobDescription{}, fmt.Errorf("job id is required: %w", domain.ErrValidation)
	}
	return s.repo.Fetch(ctx, id)
}
