package store

import (
	"encoding/json"
	"strings"

	"carmarket-api/internal/reconciler"
)

// Record is one seller-submitted car from the remote store. The store's
// records are schema-optional (fields present or absent, several of them
// list-valued), so the raw fields are kept as a map and typed access goes
// through the helpers below.
type Record struct {
	ID     string
	UserID string
	Fields map[string]interface{}
}

// MarshalJSON flattens the record the way the store path encodes it: the raw
// fields plus the id and userId drawn from the tree position.
func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(r.Fields)+2)
	for k, v := range r.Fields {
		flat[k] = v
	}
	flat["id"] = r.ID
	flat["userId"] = r.UserID
	return json.Marshal(flat)
}

// Candidate projects the record into the reconciler's input currency,
// joining list-valued fields into single strings.
func (r Record) Candidate() reconciler.Candidate {
	company := r.joined("carCompany")
	model := r.joined("carModel")

	descParts := []string{company, model, r.joined("carYear"), r.text("area")}
	desc := strings.TrimSpace(strings.Join(descParts, " "))
	desc = strings.Join(strings.Fields(desc), " ")

	return reconciler.Candidate{
		ID:          r.ID,
		Make:        company,
		Model:       model,
		Description: desc,
	}
}

// joined returns a list-valued field as a single space-joined string. A
// plain string value is returned as is; anything else is empty.
func (r Record) joined(key string) string {
	switch v := r.Fields[key].(type) {
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case string:
		return v
	default:
		return ""
	}
}

func (r Record) text(key string) string {
	if s, ok := r.Fields[key].(string); ok {
		return s
	}
	return ""
}
