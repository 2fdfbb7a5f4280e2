package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/phdportal/internal/app/models"
)

func completeScholar(id int64, name string) *models.Scholar {
	return &models.Scholar{
		ID:           id,
		FullName:     name,
		Email:        name + "@example.edu",
		Mobile:       "9876543210",
		Certificates: "attached",
		FacultyName:  "Faculty of Engineering & Technology",
		Program:      "Ph.D. - Mechanical Engineering",

		UGDegree: "B.E.", UGBranch: "Mechanical", UGUniversity: "Anna University",
		UGCollege: "SRM", UGMode: "Regular", UGYearOfPassing: "2018",
		UGPercentage: "82", UGCGPA: "8.2", UGClass: "First", UGDuration: "4",

		PGDegree: "M.E.", PGBranch: "Thermal", PGUniversity: "Anna University",
		PGCollege: "SRM", PGMode: "Regular", PGYearOfPassing: "2020",
		PGPercentage: "85", PGCGPA: "8.5", PGClass: "First", PGDuration: "2",
	}
}

func TestCheckCompleteScholarIsEligible(t *testing.T) {
	s := completeScholar(1, "Asha Rao")
	assert.Equal(t, Eligible, Check(s, []*models.Scholar{s}))
}

// clearing any single required field flips the result, refilling flips it back
func TestCheckFieldMonotonicity(t *testing.T) {
	fields := map[string]func(*models.Scholar, string){
		"fullName":        func(s *models.Scholar, v string) { s.FullName = v },
		"email":           func(s *models.Scholar, v string) { s.Email = v },
		"mobile":          func(s *models.Scholar, v string) { s.Mobile = v },
		"certificates":    func(s *models.Scholar, v string) { s.Certificates = v },
		"facultyName":     func(s *models.Scholar, v string) { s.FacultyName = v },
		"program":         func(s *models.Scholar, v string) { s.Program = v },
		"ugDegree":        func(s *models.Scholar, v string) { s.UGDegree = v },
		"ugBranch":        func(s *models.Scholar, v string) { s.UGBranch = v },
		"ugUniversity":    func(s *models.Scholar, v string) { s.UGUniversity = v },
		"ugCollege":       func(s *models.Scholar, v string) { s.UGCollege = v },
		"ugMode":          func(s *models.Scholar, v string) { s.UGMode = v },
		"ugYearOfPassing": func(s *models.Scholar, v string) { s.UGYearOfPassing = v },
		"ugPercentage":    func(s *models.Scholar, v string) { s.UGPercentage = v },
		"ugCgpa":          func(s *models.Scholar, v string) { s.UGCGPA = v },
		"ugClass":         func(s *models.Scholar, v string) { s.UGClass = v },
		"ugDuration":      func(s *models.Scholar, v string) { s.UGDuration = v },
		"pgDegree":        func(s *models.Scholar, v string) { s.PGDegree = v },
		"pgBranch":        func(s *models.Scholar, v string) { s.PGBranch = v },
		"pgUniversity":    func(s *models.Scholar, v string) { s.PGUniversity = v },
		"pgCollege":       func(s *models.Scholar, v string) { s.PGCollege = v },
		"pgMode":          func(s *models.Scholar, v string) { s.PGMode = v },
		"pgYearOfPassing": func(s *models.Scholar, v string) { s.PGYearOfPassing = v },
		"pgPercentage":    func(s *models.Scholar, v string) { s.PGPercentage = v },
		"pgCgpa":          func(s *models.Scholar, v string) { s.PGCGPA = v },
		"pgClass":         func(s *models.Scholar, v string) { s.PGClass = v },
		"pgDuration":      func(s *models.Scholar, v string) { s.PGDuration = v },
	}

	s := completeScholar(1, "Asha Rao")
	require.Len(t, fields, len(RequiredFields(s)))

	for name, set := range fields {
		s := completeScholar(1, "Asha Rao")
		all := []*models.Scholar{s}
		original := RequiredFields(s)[name]

		set(s, "")
		assert.Equal(t, NotEligible, Check(s, all), "cleared field %s", name)

		set(s, original)
		assert.Equal(t, Eligible, Check(s, all), "restored field %s", name)
	}
}

func TestCheckInvalidFieldValues(t *testing.T) {
	for _, bad := range []string{"", "   ", "n/a", "N/A", `"n/a"`, `" "`, "'  '"} {
		s := completeScholar(1, "Asha Rao")
		s.UGDegree = bad
		assert.Equal(t, NotEligible, Check(s, []*models.Scholar{s}), "value %q", bad)
	}
	// quoted real content is fine
	s := completeScholar(1, "Asha Rao")
	s.UGDegree = `"B.E."`
	assert.Equal(t, Eligible, Check(s, []*models.Scholar{s}))
}

func TestCheckNameDuplicateBlocksEligibility(t *testing.T) {
	a := completeScholar(1, "Asha Rao")
	b := completeScholar(2, "asha rao ")
	b.Email = "different@example.edu"
	b.Mobile = "9123456780"
	all := []*models.Scholar{a, b}

	assert.Equal(t, NotEligible, Check(a, all))
	assert.Equal(t, NotEligible, Check(b, all))
}

func TestDuplicateGroupsExclusivity(t *testing.T) {
	// a and b share phone; b and c share email; c and d share name.
	a := completeScholar(1, "A One")
	b := completeScholar(2, "B Two")
	c := completeScholar(3, "C Three")
	d := completeScholar(4, "C Three")

	a.Mobile, b.Mobile = "9000000001", "+91 90000 00001"
	c.Mobile, d.Mobile = "9000000003", "9000000004"
	b.Email, c.Email = "shared@example.edu", "shared@example.edu"
	a.Email, d.Email = "a@example.edu", "d@example.edu"

	groups := DuplicateGroups([]*models.Scholar{a, b, c, d})

	seen := make(map[int64]int)
	for _, g := range groups {
		for _, s := range g.Scholars {
			seen[s.ID]++
		}
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "scholar %d reported more than once", id)
	}

	// phone group wins for a+b, so the email key cannot re-claim b; c pairs
	// with d on name only after both earlier passes leave them unclaimed.
	require.Len(t, groups, 2)
	assert.Equal(t, "Phone", groups[0].Type)
	assert.Equal(t, "Name", groups[1].Type)
}

func TestDuplicateGroupsPhoneNormalization(t *testing.T) {
	a := completeScholar(1, "A One")
	b := completeScholar(2, "B Two")
	a.Mobile = "+91 98765-43210"
	b.Mobile = "9876543210"
	b.Email = "b@example.edu"

	groups := DuplicateGroups([]*models.Scholar{a, b})
	require.Len(t, groups, 1)
	assert.Equal(t, "Phone", groups[0].Type)
	assert.Len(t, groups[0].Scholars, 2)
}
