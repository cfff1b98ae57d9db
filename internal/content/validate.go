package content

import (
	"encoding/json"

	"github.com/randomtoy/volva-go/internal/domain"
)

// detailRequiredKeys is the canonical required-field set for detail entries.
// Earlier data shipped both an "energy" and a "potential" variant of the same
// concept; this store requires the key the renderer actually consumes.
var detailRequiredKeys = []string{"meaning", "symbolism", "potential", "practical_use"}

// fullRequiredKeys must all be present for a full record to be accepted.
var fullRequiredKeys = []string{
	"name", "short_description", "long_description", "meaning",
	"interpretation", "keywords", "image_url", "source_url", "aett", "position",
}

// runeDetail mirrors one detail-map entry.
type runeDetail struct {
	Meaning        string            `json:"meaning"`
	Symbolism      map[string]string `json:"symbolism"`
	Potential      []string          `json:"potential"`
	PracticalUse   []string          `json:"practical_use"`
	AdditionalInfo string            `json:"additional_info"`
	Symbol         string            `json:"symbol"`
	Aett           string            `json:"aett"`
	Position       string            `json:"position"`
}

func requireKeys(runeName string, elem json.RawMessage, keys []string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil {
		return &domain.MalformedContentError{Rune: runeName, Key: "(not an object)"}
	}
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return &domain.MalformedContentError{Rune: runeName, Key: k}
		}
	}
	return nil
}

func missingKeys(fields map[string]json.RawMessage, keys []string) []string {
	var missing []string
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

func extraFields(fields map[string]json.RawMessage, known []string) map[string]any {
	knownSet := make(map[string]bool, len(known))
	for _, k := range known {
		knownSet[k] = true
	}

	var extra map[string]any
	for k, v := range fields {
		if knownSet[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = val
	}
	return extra
}

func decodeString(raw json.RawMessage) string {
	var s string
	if raw == nil || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func nameOrUnnamed(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
