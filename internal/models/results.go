package models

// RecordCounts holds the number of rows in each collection.
type RecordCounts struct {
	Users       int64 `json:"users"`
	Activities  int64 `json:"activities"`
	TrackPoints int64 `json:"trackpoints"`
}

// ActivityAverages holds the average number of activities per user,
// against all users and against users with at least one activity.
type ActivityAverages struct {
	PerUser       float64 `json:"perUser"`
	PerActiveUser float64 `json:"perActiveUser"`
}

// UserActivityCount is one row of the most-active-users ranking.
type UserActivityCount struct {
	UserID        string `json:"userId"`
	ActivityCount int64  `json:"activityCount"`
}

// YearCount is a year grouped with its activity count.
type YearCount struct {
	Year  string `json:"year"`
	Count int64  `json:"count"`
}

// YearHours is a year grouped with its total recorded whole hours.
type YearHours struct {
	Year  string `json:"year"`
	Hours int64  `json:"hours"`
}

// UserElevationGain is one row of the elevation-gain ranking.
type UserElevationGain struct {
	UserID string `json:"userId"`
	Gain   int64  `json:"gain"` // accumulated positive altitude delta
}

// UserInvalidCount is one row of the invalid-activity report.
type UserInvalidCount struct {
	UserID       string `json:"userId"`
	InvalidCount int64  `json:"invalidCount"`
}

// UserMode is a user paired with their most used transportation mode.
type UserMode struct {
	UserID string `json:"userId"`
	Mode   string `json:"mode"`
}

// ModeCount is a transportation mode with its activity count.
type ModeCount struct {
	Mode  string `json:"mode"`
	Count int64  `json:"count"`
}

// WalkedDistance is the result of the distance-walked query.
type WalkedDistance struct {
	UserID     string  `json:"userId"`
	Year       int     `json:"year"`
	Kilometers float64 `json:"kilometers"`
}
