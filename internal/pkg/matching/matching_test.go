package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFacultyNameIdempotent(t *testing.T) {
	inputs := []string{
		"Faculty of Engineering & Technology",
		"medical and health science",
		"Medical & Health Sciences",
		"FACULTY OF MANAGEMENT",
		"  science and humanities ",
		"",
		"!!weird--input??",
	}
	for _, in := range inputs {
		once := NormalizeFacultyName(in)
		assert.Equal(t, once, NormalizeFacultyName(once), "input %q", in)
	}
}

func TestResolveFacultyReflexive(t *testing.T) {
	for _, f := range CanonicalFaculties {
		assert.Equal(t, f, ResolveFaculty(f))
	}
}

func TestResolveFacultyVariants(t *testing.T) {
	assert.Equal(t, "Faculty of Medical & Health Sciences", ResolveFaculty("medical and health science"))
	assert.Equal(t, "Faculty of Engineering & Technology", ResolveFaculty("Engineering and Technology"))
	assert.Equal(t, "Faculty of Management", ResolveFaculty("FACULTY OF MANAGEMENT"))
	assert.Equal(t, "", ResolveFaculty("Faculty of Fine Arts"))
	assert.Equal(t, "", ResolveFaculty(""))
}

func TestExtractDepartmentFromProgram(t *testing.T) {
	assert.Equal(t, "Mechanical Engineering", ExtractDepartmentFromProgram("Ph.D. - Mechanical Engineering (Part Time)"))
	assert.Equal(t, "Chemistry", ExtractDepartmentFromProgram("Ph.d. - Chemistry"))
	assert.Equal(t, "Physics", ExtractDepartmentFromProgram("PhD - Physics"))
	assert.Equal(t, "Economics", ExtractDepartmentFromProgram("Economics"))
	assert.Equal(t, "", ExtractDepartmentFromProgram(""))
}

func TestResolveDepartmentPrecedence(t *testing.T) {
	departments := []string{"Mechanical Engineering", "Engineering Physics", "Chemistry"}

	// exact beats substring even when a substring match comes first
	assert.Equal(t, "Chemistry", ResolveDepartment("chemistry", departments))
	assert.Equal(t, "Mechanical Engineering", ResolveDepartment("Mechanical Engineering", departments))

	// substring containment, either direction, first list entry wins
	assert.Equal(t, "Mechanical Engineering", ResolveDepartment("Mechanical", departments))
	assert.Equal(t, "Mechanical Engineering", ResolveDepartment("Dept of Mechanical Engineering Research", departments))

	assert.Equal(t, "", ResolveDepartment("History", departments))
	assert.Equal(t, "", ResolveDepartment("  ", departments))
}

func TestResolveDepartmentFromProgram(t *testing.T) {
	departments := []string{"Mechanical Engineering", "Chemistry"}
	got := ResolveDepartmentFromProgram("Ph.D. - Mechanical Engineering (Full Time)", departments)
	assert.Equal(t, "Mechanical Engineering", got)
}
