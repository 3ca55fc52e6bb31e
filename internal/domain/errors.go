package domain

import "errors"

var (
	// ErrValidation signals missing or malformed request fields.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a missing candidate or job record.
	ErrNotFound = errors.New("not found")
	// ErrExtraction signals an unparsable resume document.
	ErrExtraction = errors.New("resume extraction failed")
	// ErrEnrichment signals a generation provider failure. Recovered locally
	// via degraded defaults, never surfaced to callers.
	ErrEnrichment = errors.New("enrichment failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	// Fatal to the calling operation: a record is never indexed without a real vector.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrInvalidStatus signals a status value outside the lifecycle enum.
	ErrInvalidStatus = errors.New("invalid candidate status")
)
