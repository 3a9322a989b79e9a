package domain

// SemanticHit is one row from the weighted vector-similarity match.
type SemanticHit struct {
	RecordID   string
	Similarity float64
}

// KeywordHit is one hit from the full-text index, scored in the index's
// native scale. Keyword scores and semantic similarities are not comparable
// directly; ranking treats them as independent sort keys.
type KeywordHit struct {
	RecordID string
	Score    float64
}

// Result is one merged search result. A record found by only one leg keeps a
// zero for the other score; it is never dropped just for missing a leg.
type Result struct {
	RecordID           string  `json:"profile_id"`
	SemanticSimilarity float64 `json:"semantic_similarity"`
	KeywordScore       float64 `json:"keyword_score"`
}

// IndexReport summarizes a batch indexing run with per-record error detail,
// so callers see partial success rather than all-or-nothing.
type IndexReport struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors,omitempty"`
}

// AddError records a per-record failure without aborting the batch.
func (r *IndexReport) AddError(msg string) {
	r.ErrorCount++
	r.Errors = append(r.Errors, msg)
}
