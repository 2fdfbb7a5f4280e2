package models

// Faculty represents a top-level academic division. The canonical set is
// small and seeded at startup; scholar records reference it by free-text name.
type Faculty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
