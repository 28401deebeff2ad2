package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// String is a tolerant JSON string field. It distinguishes a field that was
// absent (or null) from one that was present with a non-string value, so the
// validators can report the same codes the API has always produced for
// duck-typed payloads instead of failing the bind.
type String struct {
	present bool
	str     bool
	val     string
}

// StringValue returns a String carrying s, as if it had been supplied in a payload.
func StringValue(s string) String {
	return String{present: true, str: true, val: s}
}

func (s *String) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	s.present = true
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		// present but not a string; validators decide what that means per field
		return nil
	}
	s.str = true
	s.val = v
	return nil
}

// Present reports whether the field appeared in the payload with a non-null value.
func (s String) Present() bool { return s.present }

// Valid reports whether the field carried an actual string.
func (s String) Valid() bool { return s.present && s.str }

// Value returns the string contents; empty when the field was absent or not a string.
func (s String) Value() string { return s.val }

// Number is a tolerant JSON numeric field accepting number literals and
// numeric strings. An explicit empty string counts as missing, matching the
// form-driven clients this API serves.
type Number struct {
	present bool
	empty   bool
	parsed  bool
	val     float64
}

// NumberValue returns a Number carrying f, as if it had been supplied in a payload.
func NumberValue(f float64) Number {
	return Number{present: true, parsed: true, val: f}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	n.present = true
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			n.empty = true
			return nil
		}
		raw = s
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n.parsed = true
	n.val = f
	return nil
}

// Missing reports whether the field was absent, null, or an empty string.
func (n Number) Missing() bool { return !n.present || n.empty }

// Present reports whether the field appeared with a non-null value.
func (n Number) Present() bool { return n.present }

// Parsed reports whether the value parsed to a finite number.
func (n Number) Parsed() bool { return n.parsed }

// Value returns the parsed value; zero when Parsed is false.
func (n Number) Value() float64 { return n.val }
