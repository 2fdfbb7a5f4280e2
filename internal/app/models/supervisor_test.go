package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVacancyDerivation(t *testing.T) {
	s := &Supervisor{
		MaxFullTime:             2,
		CurrentFullTime:         1,
		MaxPartTimeInternal:     1,
		CurrentPartTimeInternal: 1,
	}

	assert.Equal(t, 1, s.Vacancy(TypeFullTime))
	assert.True(t, s.HasVacancy(TypeFullTime))
	assert.Equal(t, 0, s.Vacancy(TypePartTimeInternal))
	assert.False(t, s.HasVacancy(TypePartTimeInternal))
}

func TestVacancyNonNegativeUnderDrift(t *testing.T) {
	// counters drifted past their limit must still report zero, not negative
	s := &Supervisor{MaxPartTimeExternal: 1, CurrentPartTimeExternal: 3}
	for _, typ := range AllScholarTypes {
		assert.GreaterOrEqual(t, s.Vacancy(typ), 0)
	}
	assert.Equal(t, 0, s.Vacancy(TypePartTimeExternal))
}

func TestVacancyUnknownType(t *testing.T) {
	s := &Supervisor{MaxFullTime: 5}
	assert.Equal(t, 0, s.Vacancy(ScholarType("Something Else")))
	assert.False(t, s.HasVacancy(ScholarType("Something Else")))
}
