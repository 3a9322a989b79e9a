package domain

import "errors"

var (
	// ErrValidation signals missing or malformed required input.
	ErrValidation = errors.New("invalid request")
	// ErrEmbeddingProviderError signals an embedding or language-model API failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrSearchUnavailable signals a vector-store query failure. The semantic
	// leg is required infrastructure, so this aborts the whole search.
	ErrSearchUnavailable = errors.New("semantic search unavailable")
	// ErrKeywordIndexUnavailable signals a full-text index failure. Callers
	// degrade to semantic-only results instead of failing.
	ErrKeywordIndexUnavailable = errors.New("keyword index unavailable")
	// ErrNoContent signals a record with no indexable text after filtering
	// empty fields.
	ErrNoContent = errors.New("record has no indexable content")
)
