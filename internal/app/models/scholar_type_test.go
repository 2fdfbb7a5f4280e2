package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalTypeAbbreviations(t *testing.T) {
	assert.Equal(t, TypePartTimeIndustry, CanonicalType("pte(industry)", "", ""))
	assert.Equal(t, TypePartTimeExternal, CanonicalType("pte", "", ""))
	assert.Equal(t, TypePartTimeInternal, CanonicalType("pti", "", ""))
	assert.Equal(t, TypePartTimeInternal, CanonicalType("pt", "", ""))
	assert.Equal(t, TypeFullTime, CanonicalType("ft", "", ""))
}

func TestCanonicalTypeWordForms(t *testing.T) {
	assert.Equal(t, TypeFullTime, CanonicalType("Full Time", "", ""))
	assert.Equal(t, TypePartTimeInternal, CanonicalType("Part Time Internal", "", ""))
	assert.Equal(t, TypePartTimeExternal, CanonicalType("part time external", "", ""))
	assert.Equal(t, TypePartTimeIndustry, CanonicalType("part time external (industry)", "", ""))
}

func TestCanonicalTypeSourcePriority(t *testing.T) {
	// explicit type field wins over program type and program string
	assert.Equal(t, TypePartTimeExternal, CanonicalType("pte", "ft", "Ph.D. - Full Time - Chemistry"))
	// program type is consulted when the type field resolves nowhere
	assert.Equal(t, TypeFullTime, CanonicalType("", "ft", "Ph.D. - pt - Chemistry"))
	// program string segment is the last resort
	assert.Equal(t, TypePartTimeInternal, CanonicalType("", "", "Ph.D. - pt - Chemistry"))
}

func TestCanonicalTypeDefault(t *testing.T) {
	assert.Equal(t, TypeFullTime, CanonicalType("", "", ""))
	assert.Equal(t, TypeFullTime, CanonicalType("??", "unknown", "Ph.D. History"))
}

func TestCanonicalTypeEmbeddedSegment(t *testing.T) {
	assert.Equal(t, TypePartTimeExternal, CanonicalType("", "", "Ph.D. - pte - Mechanical Engineering"))
	assert.Equal(t, TypeFullTime, CanonicalType("", "", "Ph.D. - ft"))
	// "pt" inside an ordinary word must not match
	assert.Equal(t, TypeFullTime, CanonicalType("", "", "Ph.D. Computer Science"))
}

func TestParseScholarType(t *testing.T) {
	got, ok := ParseScholarType("Part Time External (Industry)")
	assert.True(t, ok)
	assert.Equal(t, TypePartTimeIndustry, got)

	_, ok = ParseScholarType("something else")
	assert.False(t, ok)
}
