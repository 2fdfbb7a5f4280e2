// Package matching resolves free-text faculty, department and program strings
// to canonical entities. Scholar records carry names typed or imported by
// hand, so resolution is tolerant: normalize aggressively, then match exact
// before substring. Absence is data, not an error; every resolver returns an
// empty result when nothing matches and callers render "N/A".
package matching

import (
	"regexp"
	"strings"
)

// CanonicalFaculties is the enumerated faculty set. Resolution tolerates
// spelling variants, so the list is safe to match against bidirectionally at
// this size; a canonical foreign key should replace it if the list grows.
var CanonicalFaculties = []string{
	"Faculty of Engineering & Technology",
	"Faculty of Science and Humanities",
	"Faculty of Medical & Health Sciences",
	"Faculty of Management",
}

var (
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]+`)
	facultyWordRe   = regexp.MustCompile(`\bfaculty\b`)
	ofWordRe        = regexp.MustCompile(`\bof\b`)
	phdPrefixRe     = regexp.MustCompile(`(?i)^\s*ph\.?\s*d\.?\s*-\s*`)
	trailingParenRe = regexp.MustCompile(`\s*\([^()]*\)\s*$`)
)

// NormalizeFacultyName reduces a faculty name to a comparable key: lower
// case, "&" spelled out, the words "faculty" and "of" dropped, plural
// "sciences" collapsed, and everything outside [a-z0-9] removed. The function
// is idempotent.
func NormalizeFacultyName(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "&", "and")
	s = facultyWordRe.ReplaceAllString(s, " ")
	s = ofWordRe.ReplaceAllString(s, " ")
	s = nonAlnumRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "sciences", "science")
	return s
}

// FacultyMatches reports whether two faculty names are the same faculty under
// normalization. Containment is checked in both directions, so "Medical &
// Health Sciences" matches "faculty of medical and health science".
func FacultyMatches(a, b string) bool {
	na, nb := NormalizeFacultyName(a), NormalizeFacultyName(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// ResolveFaculty maps free text to a canonical faculty name. Returns the
// empty string when nothing matches.
func ResolveFaculty(freeText string) string {
	for _, f := range CanonicalFaculties {
		if FacultyMatches(freeText, f) {
			return f
		}
	}
	return ""
}

// ExtractDepartmentFromProgram pulls the candidate department name out of a
// free-text program string: a leading "Ph.D. -" prefix and a trailing
// parenthetical qualifier are stripped, the remainder is the candidate.
// "Ph.D. - Mechanical Engineering (Part Time)" yields "Mechanical Engineering".
func ExtractDepartmentFromProgram(program string) string {
	s := phdPrefixRe.ReplaceAllString(program, "")
	s = trailingParenRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ResolveDepartment matches a candidate department name against the known
// department names. Precedence is fixed: first exact match (case-insensitive,
// trimmed) wins; otherwise the first substring containment in either
// direction. Returns the empty string when nothing matches.
func ResolveDepartment(candidate string, departments []string) string {
	c := strings.ToLower(strings.TrimSpace(candidate))
	if c == "" {
		return ""
	}
	for _, d := range departments {
		if strings.ToLower(strings.TrimSpace(d)) == c {
			return d
		}
	}
	for _, d := range departments {
		dn := strings.ToLower(strings.TrimSpace(d))
		if dn == "" {
			continue
		}
		if strings.Contains(dn, c) || strings.Contains(c, dn) {
			return d
		}
	}
	return ""
}

// ResolveDepartmentFromProgram combines extraction and resolution: the
// department name is extracted from the program string and matched against
// the department list of the scholar's faculty.
func ResolveDepartmentFromProgram(program string, departments []string) string {
	return ResolveDepartment(ExtractDepartmentFromProgram(program), departments)
}
