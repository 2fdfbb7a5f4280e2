package dto

// CreateSupervisorRequest represents supervisor creation data.
type CreateSupervisorRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	FacultyID      int64  `json:"facultyId" binding:"required,gt=0"`
	DepartmentID   int64  `json:"departmentId" binding:"required,gt=0"`
	Specialization string `json:"specialization"`

	MaxFullTime         int `json:"maxFullTimeScholars" binding:"min=0"`
	MaxPartTimeInternal int `json:"maxPartTimeInternalScholars" binding:"min=0"`
	MaxPartTimeExternal int `json:"maxPartTimeExternalScholars" binding:"min=0"`
	MaxPartTimeIndustry int `json:"maxPartTimeIndustryScholars" binding:"min=0"`
}

// UpdateSupervisorRequest represents supervisor update data. Capacity limits
// may change; occupied-slot counters are never set directly.
type UpdateSupervisorRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	DepartmentID   int64  `json:"departmentId" binding:"required,gt=0"`
	Specialization string `json:"specialization"`

	MaxFullTime         int `json:"maxFullTimeScholars" binding:"min=0"`
	MaxPartTimeInternal int `json:"maxPartTimeInternalScholars" binding:"min=0"`
	MaxPartTimeExternal int `json:"maxPartTimeExternalScholars" binding:"min=0"`
	MaxPartTimeIndustry int `json:"maxPartTimeIndustryScholars" binding:"min=0"`
}

// SupervisorVacancies is the derived per-type vacancy view of a supervisor.
type SupervisorVacancies struct {
	FullTime         int `json:"fullTime"`
	PartTimeInternal int `json:"partTimeInternal"`
	PartTimeExternal int `json:"partTimeExternal"`
	PartTimeIndustry int `json:"partTimeIndustry"`
}

// ReconcileDrift reports one supervisor whose stored counters disagreed with
// the authoritative count of admitted scholars.
type ReconcileDrift struct {
	SupervisorID   int64  `json:"supervisorId"`
	SupervisorName string `json:"supervisorName"`
	ScholarType    string `json:"scholarType"`
	Stored         int    `json:"stored"`
	Actual         int    `json:"actual"`
}

// ReconcileResult reports a full counter reconciliation pass.
type ReconcileResult struct {
	Checked   int              `json:"checked"`
	Corrected int              `json:"corrected"`
	Drift     []ReconcileDrift `json:"drift,omitempty"`
}
