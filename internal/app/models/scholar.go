package models

import "time"

// Scholar is the central examination/admission record of a PhD applicant.
// Faculty and department are carried as free-text names (legacy of the import
// pipeline), which is why matching resolves them instead of joining on keys.
type Scholar struct {
	ID int64 `json:"id"`

	// Personal information
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	Gender       string `json:"gender,omitempty"`
	Category     string `json:"category,omitempty"`
	Nationality  string `json:"nationality,omitempty"`
	Address      string `json:"address,omitempty"`
	Certificates string `json:"certificates,omitempty"`

	// Program and placement
	Program        string `json:"program"`
	ProgramType    string `json:"programType,omitempty"`
	Type           string `json:"type,omitempty"`
	FacultyName    string `json:"facultyName"`
	DepartmentName string `json:"departmentName,omitempty"`

	// Undergraduate degree block
	UGDegree        string `json:"ugDegree,omitempty"`
	UGBranch        string `json:"ugBranch,omitempty"`
	UGUniversity    string `json:"ugUniversity,omitempty"`
	UGCollege       string `json:"ugCollege,omitempty"`
	UGMode          string `json:"ugMode,omitempty"`
	UGYearOfPassing string `json:"ugYearOfPassing,omitempty"`
	UGPercentage    string `json:"ugPercentage,omitempty"`
	UGCGPA          string `json:"ugCgpa,omitempty"`
	UGClass         string `json:"ugClass,omitempty"`
	UGDuration      string `json:"ugDuration,omitempty"`

	// Postgraduate degree block
	PGDegree        string `json:"pgDegree,omitempty"`
	PGBranch        string `json:"pgBranch,omitempty"`
	PGUniversity    string `json:"pgUniversity,omitempty"`
	PGCollege       string `json:"pgCollege,omitempty"`
	PGMode          string `json:"pgMode,omitempty"`
	PGYearOfPassing string `json:"pgYearOfPassing,omitempty"`
	PGPercentage    string `json:"pgPercentage,omitempty"`
	PGCGPA          string `json:"pgCgpa,omitempty"`
	PGClass         string `json:"pgClass,omitempty"`
	PGDuration      string `json:"pgDuration,omitempty"`

	// Other qualification, if any
	OtherDegree        string `json:"otherDegree,omitempty"`
	OtherDegreeDetails string `json:"otherDegreeDetails,omitempty"`

	// Up to three competitive-exam blocks
	Exam1Name  string `json:"exam1Name,omitempty"`
	Exam1Score string `json:"exam1Score,omitempty"`
	Exam1Year  string `json:"exam1Year,omitempty"`
	Exam2Name  string `json:"exam2Name,omitempty"`
	Exam2Score string `json:"exam2Score,omitempty"`
	Exam2Year  string `json:"exam2Year,omitempty"`
	Exam3Name  string `json:"exam3Name,omitempty"`
	Exam3Score string `json:"exam3Score,omitempty"`
	Exam3Year  string `json:"exam3Year,omitempty"`

	// Examination marks
	WrittenMarks   float64 `json:"writtenMarks"`
	InterviewMarks float64 `json:"interviewMarks"`
	TotalScore     float64 `json:"totalScore"`

	// Workflow state
	Status           string  `json:"status"`
	Eligibility      string  `json:"eligibility,omitempty"`
	Absent           bool    `json:"absent"`
	SupervisorName   *string `json:"supervisorName,omitempty"`
	SupervisorStatus *string `json:"supervisorStatus,omitempty"`
	DeptResult       string  `json:"deptResult,omitempty"`
	ResultDir        string  `json:"resultDir,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAssigned reports whether the scholar currently has a supervisor.
func (s *Scholar) IsAssigned() bool {
	return s.SupervisorName != nil && *s.SupervisorName != ""
}

// CanonicalType resolves the scholar's admission type from its three
// possible sources (type field, program-type field, program string).
func (s *Scholar) CanonicalType() ScholarType {
	return CanonicalType(s.Type, s.ProgramType, s.Program)
}
