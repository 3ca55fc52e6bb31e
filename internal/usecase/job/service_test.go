package job

import (
	"context"
	"errors"
	"testing"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
)

type mockRepo struct {
	upsertCalls  int
	upsertJob    *domain.JobDescription
	upsertVector []float32
	upsertErr    error

	fetchJob domain.JobDescription
	fetchErr error
}

func (m *mockRepo) Upsert(_ context.Context, j *domain.JobDescription, vector []float32) error {
	m.upsertCalls++
	m.upsertJob = j
	m.upsertVector = vector
	return m.upsertErr
}

func (m *mockRepo) Fetch(_ context.Context, _ string) (domain.JobDescription, error) {
	return m.fetchJob, m.fetchErr
}

type mockEmbedder struct {
	calls  int
	result domain.EmbeddingResult
	err    error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return m.result, nil
}

func TestCreate_Success(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.5}}}

	svc := New(repo, embed)

	j, err := svc.Create(context.Background(), CreateInput{
		Title:          "Senior Go Engineer",
		Description:    "Build backend services",
		RequiredSkills: []string{"Go", "Redis"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if j.ID == "" {
		t.Error("expected generated ID")
	}
	if j.CreatedAt.IsZero() {
		t.Error("expected CreatedAt set")
	}
	if repo.upsertCalls != 1 {
		t.Errorf("expected 1 upsert, got %d", repo.upsertCalls)
	}
	if len(repo.upsertVector) != 1 {
		t.Errorf("expected stored vector, got %v", repo.upsertVector)
	}
}

func TestCreate_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		in   CreateInput
	}{
		{"no title", CreateInput{Description: "d"}},
		{"no description", CreateInput{Title: "t"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			embed := &mockEmbedder{}
			svc := New(repo, embed)

			_, err := svc.Create(context.Background(), tc.in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if embed.calls != 0 || repo.upsertCalls != 0 {
				t.Errorf("expected no external calls, got embed=%d upsert=%d", embed.calls, repo.upsertCalls)
			}
		})
	}
}

func TestCreate_NilSkillsNormalized(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}

	svc := New(repo, embed)

	j, err := svc.Create(context.Background(), CreateInput{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.RequiredSkills == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestCreate_EmbedError(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{err: domain.ErrEmbeddingProviderError}

	svc := New(repo, embed)

	_, err := svc.Create(context.Background(), CreateInput{Title: "t", Description: "d"})
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
	if repo.upsertCalls != 0 {
		t.Errorf("expected no upsert after embedding failure")
	}
}

func TestFetch_EmptyID(t *testing.T) {
	svc := New(&mockRepo{}, &mockEmbedder{})

	_, err := svc.Fetch(context.Background(), "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestFetch_NotFound(t *testing.T) {
	svc := New(&mockRepo{fetchErr: domain.ErrNotFound}, &mockEmbedder{})

	_, err := svc.Fetch(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
