package recruiter

import "github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"

// Sentinel errors returned by the client. Check them with errors.Is.
var (
	// ErrValidation indicates a missing or malformed input field.
	ErrValidation = domain.ErrValidation

	// ErrNotFound indicates the requested candidate or job does not exist.
	ErrNotFound = domain.ErrNotFound

	// ErrExtraction indicates resume text could not be extracted.
	ErrExtraction = domain.ErrExtraction

	// ErrInvalidStatus indicates an unknown candidate status value.
	ErrInvalidStatus = domain.ErrInvalidStatus

	// ErrEmbeddingProviderError indicates the embedding provider failed.
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
)
