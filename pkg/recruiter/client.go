package recruiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/roshan-Kawale/AI-Resume-Parser/internal/db/redis"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/extract"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/metrics"
	candidaterepo "github.com/roshan-Kawale/AI-Resume-Parser/internal/repository/candidate"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/repository/embcache"
	jobrepo "github.com/roshan-Kawale/AI-Resume-Parser/internal/repository/job"
	openaiLLM "github.com/roshan-Kawale/AI-Resume-Parser/internal/transport/openai"
	candidateuc "github.com/roshan-Kawale/AI-Resume-Parser/internal/usecase/candidate"
	healthuc "github.com/roshan-Kawale/AI-Resume-Parser/internal/usecase/health"
	jobuc "github.com/roshan-Kawale/AI-Resume-Parser/internal/usecase/job"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the services.
type candidateUseCase interface {
	Apply(ctx context.Context, in candidateuc.ApplyInput) (domain.Candidate, error)
	Search(ctx context.Context, query string, topK int) ([]domain.Match, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Fetch(ctx context.Context, id string) (domain.Candidate, error)
}

type jobUseCase interface {
	Create(ctx context.Context, in jobuc.CreateInput) (domain.JobDescription, error)
	Fetch(ctx context.Context, id string) (domain.JobDescription, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the embedded recruiting client entry point.
type Client struct {
	store     *dbRedis.Store
	candSvc   candidateUseCase
	jobSvc    jobUseCase
	healthSvc healthUseCase
}

// New creates a Client and connects to the database. The provided context
// is used for the initial readiness check and index creation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		dimensions:        1024,
		topKDefault:       3,
		topKMax:           20,
		metadataTextLimit: 1000,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("recruiter: database address required (use WithRedis)")
	}
	if cfg.chatModel == "" || cfg.embeddingModel == "" {
		return nil, errors.New("recruiter: LLM models required (use WithLLM)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("recruiter: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("recruiter: database not ready: %w", err)
	}

	return wireClient(ctx, store, cfg)
}

func wireClient(ctx context.Context, store *dbRedis.Store, cfg *clientConfig) (*Client, error) {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var embedder domain.Embedder = openaiLLM.NewEmbedder(&openaiLLM.Config{
		APIKey:     cfg.apiKey,
		BaseURL:    cfg.baseURL,
		Model:      cfg.embeddingModel,
		Dimensions: cfg.dimensions,
		Logger:     logger,
	})
	embedder = embcache.New(embedder, store, metrics.EmbeddingCacheTotal, logger)

	enricher := openaiLLM.NewEnricher(&openaiLLM.Config{
		APIKey:  cfg.apiKey,
		BaseURL: cfg.baseURL,
		Model:   cfg.chatModel,
		Logger:  logger,
	})

	candRepo := candidaterepo.New(store, cfg.dimensions, cfg.metadataTextLimit)
	jRepo := jobrepo.New(store, cfg.dimensions)
	if cfg.hnswM > 0 || cfg.hnswEFConstruct > 0 {
		candRepo = candRepo.WithHNSW(candidaterepo.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		})
		jRepo = jRepo.WithHNSW(jobrepo.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		})
	}

	if err := candRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("recruiter: create candidate index: %w", err)
	}
	if err := jRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("recruiter: create job index: %w", err)
	}

	return &Client{
		store: store,
		candSvc: candidateuc.New(
			candRepo, extract.NewPDF(), embedder, enricher,
			cfg.topKDefault, cfg.topKMax,
		),
		jobSvc:    jobuc.New(jRepo, embedder),
		healthSvc: healthuc.New(store, nil),
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// ApplyRequest is a candidate application. Name, Email, LinkedinURL, and
// Resume (PDF bytes) are required. Skills, Experience, and Education are
// optional: anything missing is extracted from the resume.
type ApplyRequest struct {
	Name           string
	Email          string
	LinkedinURL    string
	Skills         []string
	Experience     string
	Education      string
	Resume         []byte
	JobDescription string
}

// JobRequest is a new job posting. Title and Description are required.
type JobRequest struct {
	Title          string
	Description    string
	RequiredSkills []string
	Experience     string
	Education      string
}

// Candidate is a stored applicant record.
type Candidate struct {
	ID             string
	Name           string
	Email          string
	LinkedinURL    string
	Skills         []string
	Experience     string
	Education      string
	AISummary      string
	RelevanceScore int
	MissingSkills  []string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Match is a search hit: a candidate plus the vector similarity of its
// profile to the query, as a rounded percentage in [0,100].
type Match struct {
	Candidate  Candidate
	MatchScore int
}

// Job is a stored job posting.
type Job struct {
	ID             string
	Title          string
	Description    string
	RequiredSkills []string
	Experience     string
	Education      string
	CreatedAt      time.Time
}

// Health is the aggregated health report.
type Health struct {
	OK     bool
	Checks map[string]string
}

// Apply ingests a candidate application and returns the stored record.
func (c *Client) Apply(ctx context.Context, req ApplyRequest) (Candidate, error) {
	cand, err := c.candSvc.Apply(ctx, candidateuc.ApplyInput{
		Name:           req.Name,
		Email:          req.Email,
		LinkedinURL:    req.LinkedinURL,
		Skills:         req.Skills,
		Experience:     req.Experience,
		Education:      req.Education,
		Resume:         req.Resume,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		return Candidate{}, err
	}
	return candidateFromDomain(cand), nil
}

// Search finds the topK candidates most similar to the query. topK <= 0
// uses the configured default.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]Match, error) {
	matches, err := c.candSvc.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = Match{
			Candidate:  candidateFromDomain(m.Candidate),
			MatchScore: m.MatchScore,
		}
	}
	return out, nil
}

// UpdateStatus transitions a candidate to a new lifecycle status
// ("new", "shortlisted", or "rejected").
func (c *Client) UpdateStatus(ctx context.Context, id, status string) error {
	return c.candSvc.UpdateStatus(ctx, id, status)
}

// Candidate returns a stored candidate by ID.
func (c *Client) Candidate(ctx context.Context, id string) (Candidate, error) {
	cand, err := c.candSvc.Fetch(ctx, id)
	if err != nil {
		return Candidate{}, err
	}
	return candidateFromDomain(cand), nil
}

// CreateJob validates, vectorizes, and stores a job posting.
func (c *Client) CreateJob(ctx context.Context, req JobRequest) (Job, error) {
	j, err := c.jobSvc.Create(ctx, jobuc.CreateInput{
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		Experience:     req.Experience,
		Education:      req.Education,
	})
	if err != nil {
		return Job{}, err
	}
	return jobFromDomain(j), nil
}

// Job returns a stored job posting by ID.
func (c *Client) Job(ctx context.Context, id string) (Job, error) {
	j, err := c.jobSvc.Fetch(ctx, id)
	if err != nil {
		return Job{}, err
	}
	return jobFromDomain(j), nil
}

// HealthCheck reports component health.
func (c *Client) HealthCheck(ctx context.Context) Health {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for name, result := range report.Checks {
		checks[name] = string(result)
	}
	return Health{
		OK:     report.Status == healthuc.Healthy,
		Checks: checks,
	}
}

func candidateFromDomain(c domain.Candidate) Candidate {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	missing := c.MissingSkills
	if missing == nil {
		missing = []string{}
	}
	return Candidate{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		LinkedinURL:    c.LinkedinURL,
		Skills:         skills,
		Experience:     c.Experience,
		Education:      c.Education,
		AISummary:      c.AISummary,
		RelevanceScore: c.RelevanceScore,
		MissingSkills:  missing,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func jobFromDomain(j domain.JobDescription) Job {
	skills := j.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return Job{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		RequiredSkills: skills,
		Experience:     j.Experience,
		Education:      j.Education,
		CreatedAt:      j.CreatedAt,
	}
}
