package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		LLM: LLMConfig{
			ChatModel:      "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
		},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingModels(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.ChatModel = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing chat model")
	}

	cfg = validConfig()
	cfg.LLM.EmbeddingModel = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding model")
	}
}

func TestValidate_TopKDefaultExceedsMax(t *testing.T) {
	cfg := validConfig()
	cfg.Index.TopKDefault = 50
	cfg.Index.TopKMax = 10

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for top_k_default > top_k_max")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.LLM.Dimensions != 1024 {
		t.Errorf("expected Dimensions=1024, got %d", cfg.LLM.Dimensions)
	}
	if cfg.Index.HNSWM != 32 || cfg.Index.HNSWEFConstruct != 400 {
		t.Errorf("unexpected HNSW defaults: %d / %d", cfg.Index.HNSWM, cfg.Index.HNSWEFConstruct)
	}
	if cfg.Index.TopKDefault != 3 || cfg.Index.TopKMax != 20 {
		t.Errorf("unexpected topK defaults: %d / %d", cfg.Index.TopKDefault, cfg.Index.TopKMax)
	}
	if cfg.Limits.MaxResumeBytes != 5<<20 {
		t.Errorf("expected MaxResumeBytes=5MiB, got %d", cfg.Limits.MaxResumeBytes)
	}
	if cfg.Limits.MetadataTextLimit != 1000 {
		t.Errorf("expected MetadataTextLimit=1000, got %d", cfg.Limits.MetadataTextLimit)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Index:  IndexConfig{HNSWM: 16, HNSWEFConstruct: 200, TopKDefault: 5, TopKMax: 50},
		Limits: LimitsConfig{MaxResumeBytes: 1 << 20, MetadataTextLimit: 500},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Index.HNSWM != 16 {
		t.Errorf("expected HNSWM=16, got %d", cfg.Index.HNSWM)
	}
	if cfg.Index.TopKDefault != 5 {
		t.Errorf("expected TopKDefault=5, got %d", cfg.Index.TopKDefault)
	}
	if cfg.Limits.MetadataTextLimit != 500 {
		t.Errorf("expected MetadataTextLimit=500, got %d", cfg.Limits.MetadataTextLimit)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_CONFIG_VAR", "from-env")

	got := string(expandEnvVars([]byte("value: ${TEST_CONFIG_VAR}")))
	if got != "value: from-env" {
		t.Errorf("unexpected expansion: %q", got)
	}

	got = string(expandEnvVars([]byte("value: ${MISSING_VAR:-fallback}")))
	if got != "value: fallback" {
		t.Errorf("unexpected default expansion: %q", got)
	}

	got = string(expandEnvVars([]byte("value: ${MISSING_VAR}")))
	if got != "value: " {
		t.Errorf("unexpected empty expansion: %q", got)
	}
}
