package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, report.Status)
	}
	if report.Checks["database"] != CheckOK || report.Checks["embedding"] != CheckOK {
		t.Errorf("unexpected checks: %v", report.Checks)
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, report.Status)
	}
	if report.Checks["database"] != CheckError {
		t.Errorf("expected database check error, got %v", report.Checks)
	}
}

func TestCheck_EmbeddingDown(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{err: errors.New("provider unreachable")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, report.Status)
	}
	if report.Checks["embedding"] != CheckError {
		t.Errorf("expected embedding check error, got %v", report.Checks)
	}
}

func TestCheck_NilEmbedding(t *testing.T) {
	svc := New(&mockPinger{}, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, report.Status)
	}
	if _, ok := report.Checks["embedding"]; ok {
		t.Error("expected no embedding check when checker is nil")
	}
}
