package models

import "strings"

// ScholarStatus is the typed lifecycle state of a scholar record. Historic
// data carries free-text status tags; new writes only use these values.
type ScholarStatus string

const (
	StatusPending   ScholarStatus = "Pending"
	StatusForwarded ScholarStatus = "Forwarded"
	StatusAdmitted  ScholarStatus = "Admitted"
	StatusPublished ScholarStatus = "Published"
	StatusRejected  ScholarStatus = "Rejected"
)

// allowed lifecycle transitions; Published and Rejected are terminal
var statusTransitions = map[ScholarStatus][]ScholarStatus{
	StatusPending:   {StatusForwarded, StatusRejected},
	StatusForwarded: {StatusAdmitted, StatusRejected},
	StatusAdmitted:  {StatusPublished, StatusRejected},
}

// IsValid reports whether s is one of the known lifecycle states.
func (s ScholarStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusForwarded, StatusAdmitted, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is a legal lifecycle step.
func (s ScholarStatus) CanTransition(next ScholarStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanonicalStatus collapses a raw status string to its display label.
//
// Any value containing "forwarded" maps to Forwarded regardless of what
// follows ("Forwarded to RC" and plain "forwarded" are the same stage).
// The four known literals map 1:1. Anything else maps to Rejected; historic
// records carry accumulated free text and the original system treated every
// unrecognized tag as a rejection, a behavior callers rely on.
func CanonicalStatus(raw string) ScholarStatus {
	norm := strings.ToLower(strings.TrimSpace(raw))

	if strings.Contains(norm, "forwarded") {
		return StatusForwarded
	}

	switch norm {
	case "pending":
		return StatusPending
	case "admitted":
		return StatusAdmitted
	case "published":
		return StatusPublished
	case "rejected":
		return StatusRejected
	}
	return StatusRejected
}

// SupervisorStatusAdmitted is the supervisor sub-state tag written on a
// scholar record when an assignment succeeds. An unassigned scholar carries
// no supervisor name and no supervisor status.
const SupervisorStatusAdmitted = "Admitted"
