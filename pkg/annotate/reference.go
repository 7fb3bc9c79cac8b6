package annotate

import (
	"encoding/json"
	"fmt"
)

// Location pins a reference to a 1-based line number in the SQL text.
type Location struct {
	Line int `json:"line"`
}

// Reference is a provenance annotation supplied by an upstream analysis.
// It claims that Snippet occurs on the line named by Location, and carries
// the display identity (Num, Type) used when the match is rendered.
type Reference struct {
	Num      string    `json:"referenceNum"`
	Type     string    `json:"type"`
	Snippet  string    `json:"sqlSnippet"`
	Location *Location `json:"sqlLocation,omitempty"`
}

// Locatable reports whether the reference carries a usable location.
// References without one are excluded from matching entirely.
func (r Reference) Locatable() bool {
	return r.Location != nil && r.Location.Line >= 1
}

// referenceJSON mirrors Reference for decoding, with Num left raw so both
// numeric and string reference identifiers are accepted on the wire.
type referenceJSON struct {
	Num      json.RawMessage `json:"referenceNum"`
	Type     string          `json:"type"`
	Snippet  string          `json:"sqlSnippet"`
	Location *Location       `json:"sqlLocation"`
}

// UnmarshalJSON decodes a reference, accepting referenceNum as either a
// JSON number or a JSON string. Upstream sources emit both.
func (r *Reference) UnmarshalJSON(data []byte) error {
	var raw referenceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Type = raw.Type
	r.Snippet = raw.Snippet
	r.Location = raw.Location
	r.Num = ""

	if len(raw.Num) == 0 || string(raw.Num) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw.Num, &s); err == nil {
		r.Num = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(raw.Num, &n); err == nil {
		r.Num = n.String()
		return nil
	}

	return fmt.Errorf("referenceNum must be a string or number, got %s", raw.Num)
}

// Equal reports whether two references are identical field-for-field,
// comparing locations by value.
func (r Reference) Equal(other Reference) bool {
	if r.Num != other.Num || r.Type != other.Type || r.Snippet != other.Snippet {
		return false
	}
	if (r.Location == nil) != (other.Location == nil) {
		return false
	}
	if r.Location != nil && r.Location.Line != other.Location.Line {
		return false
	}
	return true
}
