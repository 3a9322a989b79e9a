package domain

// Weights are the per-field relevance weights applied to the weighted
// similarity match. Computed fresh per query, never persisted.
type Weights struct {
	Bio        float64
	Skills     float64
	Experience float64
	FullText   float64
}

// UniformWeights is the fallback weight vector: every field counts equally.
// The search path must always have usable weights, so any weighting failure
// resolves to this.
func UniformWeights() Weights {
	return Weights{Bio: 1.0, Skills: 1.0, Experience: 1.0, FullText: 1.0}
}
