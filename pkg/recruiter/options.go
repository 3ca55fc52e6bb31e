package recruiter

import "go.uber.org/zap"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	apiKey         string
	baseURL        string
	chatModel      string
	embeddingModel string
	dimensions     int

	hnswM           int
	hnswEFConstruct int

	topKDefault       int
	topKMax           int
	metadataTextLimit int

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithLLM configures the embedding and chat completion provider. baseURL
// may be empty for the default OpenAI endpoint.
func WithLLM(apiKey, baseURL, chatModel, embeddingModel string, dimensions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = apiKey
		c.baseURL = baseURL
		c.chatModel = chatModel
		c.embeddingModel = embeddingModel
		c.dimensions = dimensions
	})
}

// WithHNSW configures HNSW index parameters (M and EF construction).
// Defaults: M=32, EFConstruct=400.
func WithHNSW(m, efConstruct int) Option {
	return optionFunc(func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	})
}

// WithTopK sets the default and maximum number of search hits.
// Defaults: 3 and 20.
func WithTopK(def, maxK int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topKDefault = def
		c.topKMax = maxK
	})
}

// WithMetadataTextLimit bounds the resume text prefix stored as metadata.
// Default: 1000.
func WithMetadataTextLimit(limit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.metadataTextLimit = limit
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
