package models

// Department represents a sub-unit of a faculty. It owns supervisors and is
// referenced by name (not id) from scholar records.
type Department struct {
	ID        int64    `json:"id"`
	FacultyID int64    `json:"faculty_id"`
	Name      string   `json:"name"`
	Faculty   *Faculty `json:"faculty,omitempty"`
}
