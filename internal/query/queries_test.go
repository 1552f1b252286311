package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gpstrack/geolife-backend-go/internal/models"
)

func activity(id int64, user, mode string, start, end time.Time) models.Activity {
	return models.Activity{
		ID:                 id,
		UserID:             user,
		TransportationMode: mode,
		StartDateTime:      start,
		EndDateTime:        end,
	}
}

func at(year, month, day, hour int) time.Time {
	return time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC)
}

func TestTopActiveUsers(t *testing.T) {
	activities := []models.Activity{
		activity(1, "010", "-", at(2008, 1, 1, 8), at(2008, 1, 1, 9)),
		activity(2, "011", "-", at(2008, 1, 2, 8), at(2008, 1, 2, 9)),
		activity(3, "011", "-", at(2008, 1, 3, 8), at(2008, 1, 3, 9)),
		activity(4, "012", "-", at(2008, 1, 4, 8), at(2008, 1, 4, 9)),
	}

	top := TopActiveUsers(activities, 2)
	require.Len(t, top, 2)
	require.Equal(t, "011", top[0].UserID)
	require.Equal(t, int64(2), top[0].ActivityCount)
	// 010 and 012 tie with one activity each; first-seen wins.
	require.Equal(t, "010", top[1].UserID)
}

func TestTopActiveUsersNLargerThanUsers(t *testing.T) {
	activities := []models.Activity{
		activity(1, "010", "-", at(2008, 1, 1, 8), at(2008, 1, 1, 9)),
	}
	require.Len(t, TopActiveUsers(activities, 20), 1)
}

func TestYearGroupings(t *testing.T) {
	activities := []models.Activity{
		activity(1, "010", "-", at(2008, 3, 1, 8), at(2008, 3, 1, 9)),   // 1h
		activity(2, "010", "-", at(2008, 5, 1, 8), at(2008, 5, 1, 9)),   // 1h
		activity(3, "011", "-", at(2009, 7, 1, 8), at(2009, 7, 1, 13)),  // 5h
	}

	mostActivities, found := YearWithMostActivities(activities)
	require.True(t, found)
	require.Equal(t, "2008", mostActivities.Year)
	require.Equal(t, int64(2), mostActivities.Count)

	// Computed independently; the two groupings disagree here.
	mostHours, found := YearWithMostHours(activities)
	require.True(t, found)
	require.Equal(t, "2009", mostHours.Year)
	require.Equal(t, int64(5), mostHours.Hours)
}

func TestYearGroupingsEmpty(t *testing.T) {
	_, found := YearWithMostActivities(nil)
	require.False(t, found)
	_, found = YearWithMostHours(nil)
	require.False(t, found)
}

func TestDurationWholeHours(t *testing.T) {
	a := activity(1, "010", "-", at(2008, 1, 1, 8), time.Date(2008, 1, 1, 9, 45, 0, 0, time.UTC))
	require.Equal(t, int64(1), a.DurationHours(), "durations count whole hours")
}

func TestMostUsedModePerUser(t *testing.T) {
	activities := []models.Activity{
		activity(1, "010", "walk", at(2008, 1, 1, 8), at(2008, 1, 1, 9)),
		activity(2, "010", "bus", at(2008, 1, 2, 8), at(2008, 1, 2, 9)),
		activity(3, "010", "walk", at(2008, 1, 3, 8), at(2008, 1, 3, 9)),
		activity(4, "011", "taxi", at(2008, 1, 4, 8), at(2008, 1, 4, 9)),
		activity(5, "011", "bike", at(2008, 1, 5, 8), at(2008, 1, 5, 9)),
		activity(6, "012", "-", at(2008, 1, 6, 8), at(2008, 1, 6, 9)),
	}

	modes := MostUsedModePerUser(activities)
	require.Len(t, modes, 2, "unlabeled users are excluded")
	require.Equal(t, models.UserMode{UserID: "010", Mode: "walk"}, modes[0])
	// taxi and bike tie; the mode encountered first wins.
	require.Equal(t, models.UserMode{UserID: "011", Mode: "taxi"}, modes[1])
}

func TestModeCounts(t *testing.T) {
	activities := []models.Activity{
		activity(1, "010", "walk", at(2008, 1, 1, 8), at(2008, 1, 1, 9)),
		activity(2, "010", "walk", at(2008, 1, 2, 8), at(2008, 1, 2, 9)),
		activity(3, "011", "bus", at(2008, 1, 3, 8), at(2008, 1, 3, 9)),
		activity(4, "012", "-", at(2008, 1, 4, 8), at(2008, 1, 4, 9)),
	}

	counts := ModeCounts(activities)
	require.Equal(t, []models.ModeCount{
		{Mode: "walk", Count: 2},
		{Mode: "bus", Count: 1},
	}, counts)
}

func TestUsersByMode(t *testing.T) {
	activities := []models.Activity{
		activity(1, "112", "taxi", at(2008, 1, 1, 8), at(2008, 1, 1, 9)),
		activity(2, "010", "taxi", at(2008, 1, 2, 8), at(2008, 1, 2, 9)),
		activity(3, "112", "taxi", at(2008, 1, 3, 8), at(2008, 1, 3, 9)),
		activity(4, "011", "walk", at(2008, 1, 4, 8), at(2008, 1, 4, 9)),
	}

	require.Equal(t, []string{"010", "112"}, UsersByMode(activities, "taxi"))
	require.Empty(t, UsersByMode(activities, "airplane"))
}

func TestAverageActivities(t *testing.T) {
	avg := AverageActivities(3, 2, 7)
	require.InDelta(t, 2.33, avg.PerUser, 1e-9)
	require.InDelta(t, 3.5, avg.PerActiveUser, 1e-9)

	require.Equal(t, models.ActivityAverages{}, AverageActivities(0, 0, 0))
}

func TestWalkActivityIDs(t *testing.T) {
	activities := []models.Activity{
		activity(1, "112", "walk", at(2008, 1, 1, 8), at(2008, 1, 1, 9)),
		activity(2, "112", "walk", at(2009, 1, 1, 8), at(2009, 1, 1, 9)), // wrong year
		activity(3, "112", "bus", at(2008, 2, 1, 8), at(2008, 2, 1, 9)),  // wrong mode
		activity(4, "010", "walk", at(2008, 3, 1, 8), at(2008, 3, 1, 9)), // wrong user
		activity(5, "112", "walk", at(2008, 4, 1, 8), at(2008, 4, 1, 9)),
	}

	require.Equal(t, []int64{1, 5}, WalkActivityIDs(activities, "112", 2008))
}

func TestWalkedDistanceKm(t *testing.T) {
	points := []models.TrackPoint{
		{ActivityID: 1, Latitude: 39.0, Longitude: 116.000},
		{ActivityID: 1, Latitude: 39.0, Longitude: 116.001},
		{ActivityID: 1, Latitude: 39.0, Longitude: 116.002},
	}

	km := WalkedDistanceKm(points)
	// 0.001 degrees of longitude at latitude 39 is roughly 86 meters.
	require.InDelta(t, 0.173, km, 0.01)
}

func TestWalkedDistanceKmActivityBoundary(t *testing.T) {
	points := []models.TrackPoint{
		{ActivityID: 1, Latitude: 39.0, Longitude: 116.0},
		{ActivityID: 2, Latitude: 40.0, Longitude: 117.0},
	}

	require.Equal(t, 0.0, WalkedDistanceKm(points), "pairs spanning two activities are never summed")
}
