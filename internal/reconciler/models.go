package reconciler

// RecommendationRef is the make+model projection of a recommendation; the
// reconciler never needs the reasoning or category.
type RecommendationRef struct {
	Make  string `json:"make"`
	Model string `json:"model"`
}

// Candidate is the normalized (id, make, model, optional description) view
// of an inventory record. It is the reconciler's only input/output currency;
// list-valued source fields are joined into single strings before reaching
// here.
type Candidate struct {
	ID          string `json:"id"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Description string `json:"description,omitempty"`
}

// MatchResult is the set of candidate identifiers that correspond to at
// least one recommendation. Identifiers outside the supplied candidate list
// never appear; no confidence score is exposed.
type MatchResult struct {
	MatchedIDs []string `json:"matchedIds"`
}
