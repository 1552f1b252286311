package query

import (
	"math"
	"sort"

	"github.com/gpstrack/geolife-backend-go/internal/models"
)

// Streaming accumulators for the single-pass trackpoint queries. Each one
// consumes points in storage order (grouped by activity, chronological within
// an activity) and holds O(users) state.

const (
	secondsPerDay = 86400

	// invalidGapSeconds is the adjacent-point gap that marks an activity
	// invalid: five minutes.
	invalidGapSeconds = 300
)

// ElevationAccumulator tracks accumulated altitude gain per user. Points with
// sentinel altitudes must be filtered out before they reach the accumulator;
// ObservePoint does that for callers streaming whole trackpoints.
type ElevationAccumulator struct {
	state map[string]*elevationState
	order []string
}

type elevationState struct {
	gain int64
	last int
}

// NewElevationAccumulator creates an empty accumulator.
func NewElevationAccumulator() *ElevationAccumulator {
	return &ElevationAccumulator{state: make(map[string]*elevationState)}
}

// ObservePoint feeds one trackpoint, dropping sentinel altitudes.
func (a *ElevationAccumulator) ObservePoint(p models.TrackPoint) {
	if !p.HasAltitude() {
		return
	}
	a.Observe(p.UserID, p.Altitude)
}

// Observe feeds one valid altitude reading for a user. Positive deltas are
// accumulated; the last altitude is updated on every reading, gain or not.
func (a *ElevationAccumulator) Observe(userID string, altitude int) {
	s, exists := a.state[userID]
	if !exists {
		a.state[userID] = &elevationState{last: altitude}
		a.order = append(a.order, userID)
		return
	}
	if altitude > s.last {
		s.gain += int64(altitude - s.last)
	}
	s.last = altitude
}

// Top returns the n users with the highest accumulated gain, in descending
// order. Internally the ranking is sorted ascending and sliced from the back:
// slicing an ascending sort from the front would return the lowest gains.
func (a *ElevationAccumulator) Top(n int) []models.UserElevationGain {
	ranked := make([]models.UserElevationGain, 0, len(a.order))
	for _, userID := range a.order {
		ranked = append(ranked, models.UserElevationGain{UserID: userID, Gain: a.state[userID].gain})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Gain < ranked[j].Gain
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	top := ranked[len(ranked)-n:]

	// Reverse the tail so the highest gain comes first.
	result := make([]models.UserElevationGain, n)
	for i, g := range top {
		result[n-1-i] = g
	}
	return result
}

// GapDetector counts invalid activities per user: every chronologically
// adjacent point pair within one activity whose time gap reaches five minutes
// increments the owning user's counter, once per qualifying pair.
type GapDetector struct {
	counts map[string]int64
	order  []string

	lastActivity int64
	lastDays     float64
	have         bool
}

// NewGapDetector creates an empty detector.
func NewGapDetector() *GapDetector {
	return &GapDetector{counts: make(map[string]int64)}
}

// Observe feeds one trackpoint. Points must arrive grouped by activity and in
// chronological order within each activity.
func (d *GapDetector) Observe(activityID int64, userID string, dateDays float64) {
	if d.have && activityID == d.lastActivity {
		if (dateDays-d.lastDays)*secondsPerDay >= invalidGapSeconds {
			if _, exists := d.counts[userID]; !exists {
				d.order = append(d.order, userID)
			}
			d.counts[userID]++
		}
	}
	d.lastActivity = activityID
	d.lastDays = dateDays
	d.have = true
}

// Counts returns the per-user invalid counts in first-seen order.
func (d *GapDetector) Counts() []models.UserInvalidCount {
	result := make([]models.UserInvalidCount, 0, len(d.order))
	for _, userID := range d.order {
		result = append(result, models.UserInvalidCount{UserID: userID, InvalidCount: d.counts[userID]})
	}
	return result
}

// GeofenceMatcher collects the distinct users with a trackpoint at the target
// coordinate, matched after rounding to three decimal places.
type GeofenceMatcher struct {
	targetLat float64
	targetLon float64
	seen      map[string]bool
	users     []string
}

// NewGeofenceMatcher creates a matcher for the given coordinate.
func NewGeofenceMatcher(lat, lon float64) *GeofenceMatcher {
	return &GeofenceMatcher{targetLat: lat, targetLon: lon, seen: make(map[string]bool)}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Observe feeds one trackpoint position.
func (m *GeofenceMatcher) Observe(userID string, lat, lon float64) {
	if round3(lat) != m.targetLat || round3(lon) != m.targetLon {
		return
	}
	if !m.seen[userID] {
		m.seen[userID] = true
		m.users = append(m.users, userID)
	}
}

// Users returns the matched users in first-seen order.
func (m *GeofenceMatcher) Users() []string {
	return m.users
}
