package model

import (
	"strconv"
	"strings"
)

// FlexFloat is a float64 that unmarshals from a JSON number, a numeric
// string, or null. The swap-data provider is inconsistent about which one it
// sends per field, so every amount in its payloads uses this type.
//
// A value that cannot be parsed decodes to 0 instead of failing: one
// malformed amount must not abort decoding of a whole page. Zero amounts are
// rejected later by the normalizer, so the bad record is dropped either way.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// Float64 returns the plain float64 value.
func (f FlexFloat) Float64() float64 {
	return float64(f)
}
