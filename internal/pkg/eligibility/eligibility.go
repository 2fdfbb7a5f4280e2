// Package eligibility implements the admission readiness rules: a fixed set
// of required fields must be filled, and a scholar whose name collides with
// another record is never eligible. Both checks are pure functions of the
// current scholar collection and are recomputed on demand.
package eligibility

import (
	"strings"

	"github.com/yigit/phdportal/internal/app/models"
)

// Result is the computed readiness flag stored on a scholar record.
type Result string

const (
	Eligible    Result = "Eligible"
	NotEligible Result = "Not Eligible"
)

// Check computes eligibility for one scholar against the full collection.
// All required fields must be valid and no other scholar may share the same
// trimmed, case-insensitive name.
func Check(s *models.Scholar, all []*models.Scholar) Result {
	for _, value := range RequiredFields(s) {
		if !isValidField(value) {
			return NotEligible
		}
	}
	if hasNameDuplicate(s, all) {
		return NotEligible
	}
	return Eligible
}

// RequiredFields returns the values of the fields that must be filled for a
// scholar to be eligible, keyed by field name.
func RequiredFields(s *models.Scholar) map[string]string {
	return map[string]string{
		"fullName":        s.FullName,
		"email":           s.Email,
		"mobile":          s.Mobile,
		"certificates":    s.Certificates,
		"facultyName":     s.FacultyName,
		"program":         s.Program,
		"ugDegree":        s.UGDegree,
		"ugBranch":        s.UGBranch,
		"ugUniversity":    s.UGUniversity,
		"ugCollege":       s.UGCollege,
		"ugMode":          s.UGMode,
		"ugYearOfPassing": s.UGYearOfPassing,
		"ugPercentage":    s.UGPercentage,
		"ugCgpa":          s.UGCGPA,
		"ugClass":         s.UGClass,
		"ugDuration":      s.UGDuration,
		"pgDegree":        s.PGDegree,
		"pgBranch":        s.PGBranch,
		"pgUniversity":    s.PGUniversity,
		"pgCollege":       s.PGCollege,
		"pgMode":          s.PGMode,
		"pgYearOfPassing": s.PGYearOfPassing,
		"pgPercentage":    s.PGPercentage,
		"pgCgpa":          s.PGCGPA,
		"pgClass":         s.PGClass,
		"pgDuration":      s.PGDuration,
	}
}

// isValidField accepts a value that, after stripping surrounding quotes and
// whitespace, is neither empty nor a literal "n/a".
func isValidField(v string) bool {
	trimmed := strings.Trim(v, ` "'`)
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return false
	}
	return !strings.EqualFold(trimmed, "n/a")
}

func hasNameDuplicate(s *models.Scholar, all []*models.Scholar) bool {
	name := normalizeName(s.FullName)
	if name == "" {
		return false
	}
	for _, other := range all {
		if other.ID == s.ID {
			continue
		}
		if normalizeName(other.FullName) == name {
			return true
		}
	}
	return false
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
