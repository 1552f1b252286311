package models

import "time"

// TimeLayout is the wall-clock format used for activity and trackpoint
// timestamps, both in the trajectory files and in the database.
const TimeLayout = "2006-01-02 15:04:05"

// ModeUnlabeled is the transportation mode recorded for activities that have
// no matching entry in the user's label file.
const ModeUnlabeled = "-"

// Activity represents one continuous recorded trip, spanning one trajectory file.
// IDs are assigned sequentially during ingestion and never reused.
type Activity struct {
	ID                 int64     `json:"id" db:"id"`
	UserID             string    `json:"userId" db:"user_id"`
	TransportationMode string    `json:"transportationMode" db:"transportation_mode"`
	StartDateTime      time.Time `json:"startDateTime" db:"start_date_time"`
	EndDateTime        time.Time `json:"endDateTime" db:"end_date_time"`
}

// StartYear returns the 4-character year prefix of the start timestamp.
func (a Activity) StartYear() string {
	return a.StartDateTime.Format("2006")
}

// DurationHours returns the activity duration in whole hours.
func (a Activity) DurationHours() int64 {
	return int64(a.EndDateTime.Sub(a.StartDateTime).Hours())
}
