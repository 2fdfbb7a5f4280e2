package dto

// AssignScholarRequest assigns a scholar to a supervisor in one capacity
// bucket. The bucket must be named explicitly; the service rejects requests
// without one.
type AssignScholarRequest struct {
	ScholarID   int64  `json:"scholarId" binding:"required,gt=0"`
	ScholarType string `json:"scholarType" binding:"required"`
}

// UnassignScholarRequest releases a scholar from their supervisor.
type UnassignScholarRequest struct {
	ScholarID int64 `json:"scholarId" binding:"required,gt=0"`
}

// AssignmentResponse describes a completed assignment.
type AssignmentResponse struct {
	ScholarID        int64  `json:"scholarId"`
	ScholarName      string `json:"scholarName"`
	SupervisorID     int64  `json:"supervisorId"`
	SupervisorName   string `json:"supervisorName"`
	ScholarType      string `json:"scholarType"`
	RemainingVacancy int    `json:"remainingVacancy"`
}

// CandidateFilter narrows the assignment candidate list.
type CandidateFilter struct {
	ScholarType string `form:"type"`
}
