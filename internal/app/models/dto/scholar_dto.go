package dto

// ScholarFilter carries the list-screen filters. All fields are optional.
type ScholarFilter struct {
	Faculty     string `form:"faculty"`
	Department  string `form:"department"`
	Status      string `form:"status"`
	ScholarType string `form:"type"`
	Eligibility string `form:"eligibility"`
	Search      string `form:"search"`
	Unassigned  bool   `form:"unassigned"`
}

// UpdateMarksRequest records examination marks for a scholar.
type UpdateMarksRequest struct {
	WrittenMarks   float64 `json:"writtenMarks" binding:"min=0"`
	InterviewMarks float64 `json:"interviewMarks" binding:"min=0"`
	Absent         bool    `json:"absent"`
}

// StatusChangeRequest moves a scholar to a new lifecycle state.
type StatusChangeRequest struct {
	Status string `json:"status" binding:"required"`
}

// PublishRequest records a department or director result on a scholar.
type PublishRequest struct {
	Result string `json:"result" binding:"required,oneof=Selected 'Not Selected' Waitlisted"`
}

// BatchForwardRequest forwards a set of scholars to the research coordinator.
type BatchForwardRequest struct {
	ScholarIDs []int64 `json:"scholarIds" binding:"required,min=1"`
}

// BatchItemError reports one failed item of a batch operation.
type BatchItemError struct {
	ScholarID int64  `json:"scholarId"`
	Message   string `json:"message"`
}

// BatchResult aggregates per-item outcomes of a batch operation. Items are
// settled independently; a failed item never hides the succeeded ones.
type BatchResult struct {
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Errors    []BatchItemError `json:"errors,omitempty"`
}

// ImportSummary reports the outcome of a spreadsheet import.
type ImportSummary struct {
	Imported  int              `json:"imported"`
	Rejected  int              `json:"rejected"`
	RowErrors []ImportRowError `json:"rowErrors,omitempty"`
}

// ImportRowError reports one workbook row that could not be imported.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// EligibilityRecomputeResult reports a full eligibility recompute.
type EligibilityRecomputeResult struct {
	Total   int `json:"total"`
	Changed int `json:"changed"`
}
