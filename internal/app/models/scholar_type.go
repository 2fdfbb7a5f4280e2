package models

import "strings"

// ScholarType is the canonical admission type of a scholar. It selects which
// capacity bucket applies on the supervisor side.
type ScholarType string

const (
	TypeFullTime         ScholarType = "Full Time"
	TypePartTimeInternal ScholarType = "Part Time Internal"
	TypePartTimeExternal ScholarType = "Part Time External"
	TypePartTimeIndustry ScholarType = "Part Time External (Industry)"
)

// AllScholarTypes lists the four canonical types in display order.
var AllScholarTypes = []ScholarType{
	TypeFullTime,
	TypePartTimeInternal,
	TypePartTimeExternal,
	TypePartTimeIndustry,
}

// ParseScholarType maps a raw string to a canonical type.
// Returns false when the string matches none of the four types.
func ParseScholarType(raw string) (ScholarType, bool) {
	return canonicalTypeFrom(raw)
}

// CanonicalType resolves the scholar type from the three data sources in
// priority order: the explicit type field, then the program-type field, then a
// substring search inside the free-text program string. Records that resolve
// nowhere default to Full Time.
func CanonicalType(typeField, programType, program string) ScholarType {
	for _, source := range []string{typeField, programType, program} {
		if t, ok := canonicalTypeFrom(source); ok {
			return t
		}
	}
	return TypeFullTime
}

// abbreviation table, longest first so "pte(industry)" is not swallowed by "pt"
var typeAbbreviations = []struct {
	abbr string
	t    ScholarType
}{
	{"pte(industry)", TypePartTimeIndustry},
	{"pte (industry)", TypePartTimeIndustry},
	{"pte", TypePartTimeExternal},
	{"pti", TypePartTimeInternal},
	{"ft", TypeFullTime},
	{"pt", TypePartTimeInternal},
}

func canonicalTypeFrom(raw string) (ScholarType, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	if norm == "" {
		return "", false
	}

	// Abbreviations match either as the whole value or as a "- xx " segment
	// embedded in a longer program string (e.g. "Ph.D. - ft - Chemistry").
	for _, entry := range typeAbbreviations {
		if norm == entry.abbr ||
			strings.Contains(norm, "- "+entry.abbr+" ") ||
			strings.HasSuffix(norm, "- "+entry.abbr) {
			return entry.t, true
		}
	}

	return wordType(norm)
}

func wordType(norm string) (ScholarType, bool) {
	norm = strings.ReplaceAll(norm, "-", " ")
	switch {
	case strings.Contains(norm, "industry"):
		return TypePartTimeIndustry, true
	case strings.Contains(norm, "part time external"):
		return TypePartTimeExternal, true
	case strings.Contains(norm, "part time internal"):
		return TypePartTimeInternal, true
	case strings.Contains(norm, "part time"):
		return TypePartTimeInternal, true
	case strings.Contains(norm, "full time"):
		return TypeFullTime, true
	}
	return "", false
}
