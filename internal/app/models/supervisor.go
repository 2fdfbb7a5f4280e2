package models

// Supervisor is a faculty member who can take on scholars, with independent
// capacity limits per scholar type. Vacancy is always derived from max and
// current at read time; it is never stored.
type Supervisor struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	FacultyID      int64  `json:"facultyId"`
	DepartmentID   int64  `json:"departmentId"`
	Specialization string `json:"specialization,omitempty"`

	MaxFullTime         int `json:"maxFullTimeScholars"`
	MaxPartTimeInternal int `json:"maxPartTimeInternalScholars"`
	MaxPartTimeExternal int `json:"maxPartTimeExternalScholars"`
	MaxPartTimeIndustry int `json:"maxPartTimeIndustryScholars"`

	CurrentFullTime         int `json:"currentFullTimeScholars"`
	CurrentPartTimeInternal int `json:"currentPartTimeInternalScholars"`
	CurrentPartTimeExternal int `json:"currentPartTimeExternalScholars"`
	CurrentPartTimeIndustry int `json:"currentPartTimeIndustryScholars"`

	// Relations (populated when needed)
	Faculty    *Faculty    `json:"faculty,omitempty"`
	Department *Department `json:"department,omitempty"`
}

// Max returns the capacity limit for the given scholar type.
func (s *Supervisor) Max(t ScholarType) int {
	switch t {
	case TypeFullTime:
		return s.MaxFullTime
	case TypePartTimeInternal:
		return s.MaxPartTimeInternal
	case TypePartTimeExternal:
		return s.MaxPartTimeExternal
	case TypePartTimeIndustry:
		return s.MaxPartTimeIndustry
	}
	return 0
}

// Current returns the occupied slots for the given scholar type.
func (s *Supervisor) Current(t ScholarType) int {
	switch t {
	case TypeFullTime:
		return s.CurrentFullTime
	case TypePartTimeInternal:
		return s.CurrentPartTimeInternal
	case TypePartTimeExternal:
		return s.CurrentPartTimeExternal
	case TypePartTimeIndustry:
		return s.CurrentPartTimeIndustry
	}
	return 0
}

// Vacancy returns the remaining slots for the given type, floored at zero so
// counters drifted past their limit never report negative capacity.
func (s *Supervisor) Vacancy(t ScholarType) int {
	v := s.Max(t) - s.Current(t)
	if v < 0 {
		return 0
	}
	return v
}

// HasVacancy reports whether at least one slot of the given type is open.
func (s *Supervisor) HasVacancy(t ScholarType) bool {
	return s.Vacancy(t) > 0
}
