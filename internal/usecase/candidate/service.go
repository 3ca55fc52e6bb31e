// Package candidate implements the application intake, search, and triage
// flows.
package candidate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/logger"
)

// ApplyInput is an application as submitted by a candidate. Skills,
// Experience, and Education are optional: anything missing is extracted
// from the resume.
type ApplyInput struct {
	Name           string
	Email          string
	LinkedinURL    string
	Skills         []string
	Experience     string
	Education      string
	Resume         []byte
	JobDescription string
}

// Service handles the candidate lifecycle: intake, semantic search, status
// triage, and retrieval.
type Service struct {
	repo    Repository
	extract Extractor
	embed   Embedder
	enrich  Enricher

	topKDefault int
	topKMax     int
}

// New creates a candidate service.
func New(repo Repository, extract Extractor, embed Embedder, enrich Enricher,
	topKDefault, topKMax int,
) *Service {
	if topKDefault <= 0 {
		topKDefault = 3
	}
	if topKMax <= 0 {
		topKMax = 20
	}
	return &Service{
		repo:        repo,
		extract:     extract,
		embed:       embed,
		enrich:      enrich,
		topKDefault: topKDefault,
		topKMax:     topKMax,
	}
}

// Apply ingests an application: extracts resume text, fills in any profile
// fields the candidate did not provide, evaluates the profile, and stores
// the record with its embedding. Validation happens before any external
// call is made.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (domain.Candidate, error) {
	if in.Name == "" || in.Email == "" || in.LinkedinURL == "" {
		return domain.Candidate{}, fmt.Errorf(
			"name, email and linkedinUrl are required: %w", domain.ErrValidation,
		)
	}
	if len(in.Resume) == 0 {
		return domain.Candidate{}, fmt.Errorf("resume file is required: %w", domain.ErrValidation)
	}

	resumeText, err := s.extract.Extract(in.Resume)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("extract resume: %w", err)
	}

	skills, experience, education := in.Skills, in.Experience, in.Education
	if len(skills) == 0 || experience == "" || education == "" {
		profile, err := s.enrich.ExtractProfile(ctx, resumeText)
		if err != nil {
			// One bad generation call must not abort the application.
			logger.FromContext(ctx).Warn("profile extraction failed, using defaults",
				zap.Error(err),
			)
			profile = domain.FallbackProfile()
		}
		if len(skills) == 0 {
			skills = profile.Skills
		}
		if experience == "" {
			experience = profile.Experience
		}
		if education == "" {
			education = profile.Education
		}
	}
	if skills == nil {
		skills = []string{}
	}

	now := time.Now().UTC()
	c := domain.Candidate{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		LinkedinURL: in.LinkedinURL,
		Skills:      skills,
		Experience:  experience,
		Education:   education,
		ResumeText:  resumeText,
		Status:      domain.StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	eval, err := s.enrich.Summarize(ctx, c, in.JobDescription)
	if err != nil {
		logger.FromContext(ctx).Warn("candidate evaluation failed, using defaults",
			zap.String("candidate_id", c.ID),
			zap.Error(err),
		)
		eval = domain.FallbackEvaluation()
	}
	c.AISummary = eval.Summary
	c.RelevanceScore = eval.RelevanceScore
	c.MissingSkills = eval.MissingSkills

	embResult, err := s.embed.Embed(ctx, c.EmbeddingText())
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("vectorize candidate: %w", err)
	}

	if err := s.repo.Upsert(ctx, &c, embResult.Embedding); err != nil {
		return domain.Candidate{}, fmt.Errorf("store candidate: %w", err)
	}

	return c, nil
}

// Search embeds the recruiter query, runs KNN over the candidate index, and
// re-evaluates each hit against the query. Per-hit evaluation failures
// degrade that hit to default evaluation fields instead of failing the
// whole search.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]domain.Match, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required: %w", domain.ErrValidation)
	}
	if topK <= 0 {
		topK = s.topKDefault
	}
	if topK > s.topKMax {
		topK = s.topKMax
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	matches, err := s.repo.SearchKNN(ctx, embResult.Embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	// Re-evaluate every hit against the query in parallel. Rank order is
	// preserved: each task writes only its own slot.
	g, gctx := errgroup.WithContext(ctx)
	for i := range matches {
		i := i
		g.Go(func() error {
			eval, err := s.enrich.Summarize(gctx, matches[i].Candidate, query)
			if err != nil {
				logger.FromContext(ctx).Warn("per-hit evaluation failed",
					zap.String("candidate_id", matches[i].Candidate.ID),
					zap.Error(err),
				)
				eval = domain.FallbackEvaluation()
			}
			matches[i].Candidate.AISummary = eval.Summary
			matches[i].Candidate.RelevanceScore = eval.RelevanceScore
			matches[i].Candidate.MissingSkills = eval.MissingSkills
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return matches, nil
}

// UpdateStatus transitions a candidate to a new lifecycle status.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return fmt.Errorf("candidate id is required: %w", domain.ErrValidation)
	}
	st, err := domain.ParseStatus(status)
	if err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, id, st, time.Now().UTC())
}

// Fetch returns a stored candidate by ID.
func (s *Service) Fetch(ctx context.Context, id string) (domain.Candidate, error) {
	if id == "" {
		return domain.Candidate{}, fmt.Errorf("candidate id is required: %w", domain.ErrValidation)
	}
	c, _, err := s.repo.Fetch(ctx, id)
	return c, err
}
