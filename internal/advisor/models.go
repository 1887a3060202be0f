package advisor

// Recommendation is one AI-suggested make/model pairing with its
// justification. Recommendations are never matched against inventory
// directly; spelling or script may differ, so they go through the
// reconciler first.
type Recommendation struct {
	Make      string `json:"make"`
	Model     string `json:"model"`
	Reasoning string `json:"reasoning"`
	Category  string `json:"category"`
}
