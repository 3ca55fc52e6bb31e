package candidate

import (
	"context"
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/db"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
)

// --- Mock store ---

type mockStore struct {
	hsetKey    string
	hsetFields map[string]string
	hsetErr    error

	hgetallResult map[string]string
	hgetallErr    error

	existsResult bool
	existsErr    error

	createIndexDef *db.IndexDefinition
	createIndexErr error

	searchResult *db.SearchResult
	searchQuery  *db.KNNQuery
	searchErr    error
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	m.hsetKey = key
	m.hsetFields = fields
	return m.hsetErr
}

func (m *mockStore) HGetAll(_ context.Context, _ string) (map[string]string, error) {
	return m.hgetallResult, m.hgetallErr
}

func (m *mockStore) Exists(_ context.Context, _ string) (bool, error) {
	return m.existsResult, m.existsErr
}

func (m *mockStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	m.createIndexDef = def
	return m.createIndexErr
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.searchQuery = q
	return m.searchResult, m.searchErr
}

func makeCandidate(t *testing.T) domain.Candidate {
	t.Helper()
	now := time.UnixMilli(1700000000000).UTC()
	return domain.Candidate{
		ID:             "c-1",
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		LinkedinURL:    "https://linkedin.com/in/janedoe",
		Skills:         []string{"Go", "Redis"},
		Experience:     "5 years backend",
		Education:      "BSc",
		ResumeText:     "full resume text",
		AISummary:      "strong candidate",
		RelevanceScore: 85,
		MissingSkills:  []string{"Kubernetes"},
		Status:         domain.StatusNew,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// --- DTO tests ---

func TestCandidateFields_RoundTrip(t *testing.T) {
	c := makeCandidate(t)

	fields := candidateToFields(&c, 1000)
	got := candidateFromFields(c.ID, fields)

	if got.Name != c.Name || got.Email != c.Email || got.LinkedinURL != c.LinkedinURL {
		t.Errorf("identity fields mismatch: %+v", got)
	}
	if len(got.Skills) != 2 || got.Skills[0] != "Go" || got.Skills[1] != "Redis" {
		t.Errorf("skills mismatch: %v", got.Skills)
	}
	if got.RelevanceScore != 85 {
		t.Errorf("relevance mismatch: %d", got.RelevanceScore)
	}
	if got.Status != domain.StatusNew {
		t.Errorf("status mismatch: %q", got.Status)
	}
	if !got.CreatedAt.Equal(c.CreatedAt) || !got.UpdatedAt.Equal(c.UpdatedAt) {
		t.Errorf("timestamps mismatch: %v / %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestCandidateToFields_TruncatesResumeText(t *testing.T) {
	c := makeCandidate(t)
	c.ResumeText = "0123456789abcdef"

	fields := candidateToFields(&c, 10)
	if fields[fieldResumeText] != "0123456789" {
		t.Errorf("expected 10-byte prefix, got %q", fields[fieldResumeText])
	}
}

func TestCandidateToFields_TruncationKeepsValidUTF8(t *testing.T) {
	c := makeCandidate(t)
	// "é" is 2 bytes; a limit of 5 lands mid-rune.
	c.ResumeText = "abcdéf"

	fields := candidateToFields(&c, 5)
	got := fields[fieldResumeText]
	if got != "abcd" {
		t.Errorf("expected rune-aligned prefix %q, got %q", "abcd", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("stored prefix is not valid UTF-8: %q", got)
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"Go", []string{"Go"}},
		{"Go, Redis, Docker", []string{"Go", "Redis", "Docker"}},
		{"Go,,Redis, ", []string{"Go", "Redis"}},
	}

	for _, tc := range cases {
		got := splitList(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("splitList(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("splitList(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestVectorBytes_RoundTrip(t *testing.T) {
	v := []float32{0.1, -2.5, 0, 100.25}

	got := bytesToVector(vectorToBytes(v))
	if len(got) != len(v) {
		t.Fatalf("length mismatch: %d != %d", len(got), len(v))
	}
	for i := range v {
		if got[i] != v[i] {
			t.Errorf("index %d: %v != %v", i, got[i], v[i])
		}
	}
}

func TestBytesToVector_InvalidLength(t *testing.T) {
	if v := bytesToVector("abc"); v != nil {
		t.Errorf("expected nil for misaligned blob, got %v", v)
	}
}

func TestScorePercent(t *testing.T) {
	cases := []struct {
		score float64
		want  int
	}{
		{0, 0},
		{1, 100},
		{0.854, 85},
		{0.855, 86},
		{-0.2, 0},
		{1.5, 100},
	}
	for _, tc := range cases {
		if got := scorePercent(tc.score); got != tc.want {
			t.Errorf("scorePercent(%v) = %d, want %d", tc.score, got, tc.want)
		}
	}
}

// --- Repo tests ---

func TestUpsert_StoresVectorBlob(t *testing.T) {
	store := &mockStore{}
	repo := New(store, 2, 1000)
	c := makeCandidate(t)

	if err := repo.Upsert(context.Background(), &c, []float32{0.5, 0.25}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.hsetKey != "recruit:candidates:c-1" {
		t.Errorf("unexpected key: %q", store.hsetKey)
	}
	blob, ok := store.hsetFields[fieldVector]
	if !ok {
		t.Fatal("vector field not written")
	}
	if len(blob) != 8 {
		t.Errorf("expected 8-byte blob, got %d", len(blob))
	}
}

func TestFetch_NotFound(t *testing.T) {
	store := &mockStore{hgetallResult: map[string]string{}}
	repo := New(store, 2, 1000)

	_, _, err := repo.Fetch(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetStatus_PatchesOnlyStatusFields(t *testing.T) {
	store := &mockStore{existsResult: true}
	repo := New(store, 2, 1000)

	now := time.UnixMilli(1700000123456).UTC()
	if err := repo.SetStatus(context.Background(), "c-1", domain.StatusShortlisted, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.hsetFields) != 2 {
		t.Fatalf("expected 2 patched fields, got %v", store.hsetFields)
	}
	if store.hsetFields[fieldStatus] != "shortlisted" {
		t.Errorf("unexpected status: %q", store.hsetFields[fieldStatus])
	}
	if store.hsetFields[fieldUpdatedAt] != "1700000123456" {
		t.Errorf("unexpected updated_at: %q", store.hsetFields[fieldUpdatedAt])
	}
	if _, ok := store.hsetFields[fieldVector]; ok {
		t.Error("vector must not be touched by a status patch")
	}
}

func TestSetStatus_NotFound(t *testing.T) {
	store := &mockStore{existsResult: false}
	repo := New(store, 2, 1000)

	err := repo.SetStatus(context.Background(), "missing", domain.StatusRejected, time.Now())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if store.hsetFields != nil {
		t.Error("expected no write for a missing candidate")
	}
}

func TestEnsureIndex_ToleratesExisting(t *testing.T) {
	store := &mockStore{createIndexErr: db.ErrIndexExists}
	repo := New(store, 2, 1000)

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchKNN_MapsEntries(t *testing.T) {
	store := &mockStore{searchResult: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			{
				Key:   "recruit:candidates:a",
				Score: 0.92,
				Fields: map[string]string{
					fieldName:   "A",
					fieldStatus: "new",
				},
			},
			{
				Key:   "recruit:candidates:b",
				Score: 0.4,
				Fields: map[string]string{
					fieldName:   "B",
					fieldStatus: "shortlisted",
				},
			},
		},
	}}
	repo := New(store, 2, 1000)

	matches, err := repo.SearchKNN(context.Background(), []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Candidate.ID != "a" || matches[0].MatchScore != 92 {
		t.Errorf("unexpected first match: %+v", matches[0])
	}
	if matches[1].Candidate.ID != "b" || matches[1].MatchScore != 40 {
		t.Errorf("unexpected second match: %+v", matches[1])
	}
	if store.searchQuery.K != 2 {
		t.Errorf("unexpected K: %d", store.searchQuery.K)
	}
}

func TestSearchKNN_EmptyResult(t *testing.T) {
	store := &mockStore{searchResult: &db.SearchResult{Total: 0}}
	repo := New(store, 2, 1000)

	matches, err := repo.SearchKNN(context.Background(), []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}
