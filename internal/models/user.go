package models

// User represents one Geolife dataset user directory
type User struct {
	ID        string `json:"id" db:"id"`                // zero-padded dataset user code, e.g. "010"
	HasLabels bool   `json:"hasLabels" db:"has_labels"` // true iff the user appears in labeled_ids.txt
}
