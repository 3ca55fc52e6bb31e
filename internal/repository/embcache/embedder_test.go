package embcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/db"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
)

type mockStore struct {
	data map[string][]byte

	getErr error
	setErr error

	setCalls int
	setTTL   time.Duration
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string][]byte{}}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.setCalls++
	m.setTTL = ttl
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
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

func TestEmbed_MissThenHit(t *testing.T) {
	store := newMockStore()
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:   []float32{0.5, -1.25},
		TotalTokens: 12,
	}}

	cached := New(inner, store, nil, zap.NewNop())

	first, err := cached.Embed(context.Background(), "some resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}
	if first.TotalTokens != 12 {
		t.Errorf("miss must report real token usage, got %d", first.TotalTokens)
	}
	if store.setCalls != 1 || store.setTTL != DefaultTTL {
		t.Errorf("expected cache write with default TTL, got calls=%d ttl=%v", store.setCalls, store.setTTL)
	}

	second, err := cached.Embed(context.Background(), "some resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("hit must not call inner embedder, got %d calls", inner.calls)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit must report zero tokens, got %d", second.TotalTokens)
	}
	if len(second.Embedding) != 2 || second.Embedding[0] != 0.5 || second.Embedding[1] != -1.25 {
		t.Errorf("cached vector mismatch: %v", second.Embedding)
	}
}

func TestEmbed_DifferentTextsDifferentKeys(t *testing.T) {
	store := newMockStore()
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}

	cached := New(inner, store, nil, zap.NewNop())

	if _, err := cached.Embed(context.Background(), "text one"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cached.Embed(context.Background(), "text two"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.calls != 2 {
		t.Errorf("expected 2 inner calls for distinct texts, got %d", inner.calls)
	}
	if len(store.data) != 2 {
		t.Errorf("expected 2 cache entries, got %d", len(store.data))
	}
}

func TestEmbed_StoreGetFailureFallsThrough(t *testing.T) {
	store := newMockStore()
	store.getErr = errors.New("connection refused")
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}

	cached := New(inner, store, nil, zap.NewNop())

	if _, err := cached.Embed(context.Background(), "text"); err != nil {
		t.Fatalf("cache failure must not fail the embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected fall-through to inner embedder, got %d calls", inner.calls)
	}
}

func TestEmbed_InnerError(t *testing.T) {
	store := newMockStore()
	inner := &mockEmbedder{err: domain.ErrEmbeddingProviderError}

	cached := New(inner, store, nil, zap.NewNop())

	_, err := cached.Embed(context.Background(), "text")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
	if store.setCalls != 0 {
		t.Errorf("expected no cache write on error, got %d", store.setCalls)
	}
}

func TestEmbed_CorruptCacheEntryIgnored(t *testing.T) {
	store := newMockStore()
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}

	cached := New(inner, store, nil, zap.NewNop())

	// Seed a misaligned blob under the exact cache key.
	store.data[cached.cacheKey("text")] = []byte{1, 2, 3}

	if _, err := cached.Embed(context.Background(), "text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("corrupt entry must fall through to inner embedder, got %d calls", inner.calls)
	}
}
