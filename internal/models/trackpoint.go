package models

import "time"

// AltitudeSentinel marks an unknown altitude. Points at or below this value
// are excluded from elevation computations.
const AltitudeSentinel = -777

// TrackPoint represents one GPS fix within an activity. Points for a single
// activity are stored in file order, which is chronological order.
type TrackPoint struct {
	ActivityID int64     `json:"activityId" db:"activity_id"`
	UserID     string    `json:"userId" db:"user_id"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	Altitude   int       `json:"altitude" db:"altitude"`
	DateDays   float64   `json:"dateDays" db:"date_days"` // fractional day count, for gap arithmetic
	DateTime   time.Time `json:"dateTime" db:"date_time"`
}

// HasAltitude reports whether the altitude reading is usable.
func (p TrackPoint) HasAltitude() bool {
	return p.Altitude > AltitudeSentinel
}
