package query

import (
	"math"
	"sort"

	"github.com/gpstrack/geolife-backend-go/internal/models"
	"github.com/gpstrack/geolife-backend-go/internal/spatial"
)

// Aggregations over the activity collection. All functions are read-only.

// TopActiveUsers groups activities by user and returns the n users with the
// most activities, descending. Ties keep the first-seen order.
func TopActiveUsers(activities []models.Activity, n int) []models.UserActivityCount {
	counts := make(map[string]int64)
	var order []string
	for _, a := range activities {
		if _, exists := counts[a.UserID]; !exists {
			order = append(order, a.UserID)
		}
		counts[a.UserID]++
	}

	ranked := make([]models.UserActivityCount, 0, len(order))
	for _, userID := range order {
		ranked = append(ranked, models.UserActivityCount{UserID: userID, ActivityCount: counts[userID]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ActivityCount > ranked[j].ActivityCount
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// YearWithMostActivities groups activities by the year prefix of their start
// timestamp and returns the year with the highest count.
func YearWithMostActivities(activities []models.Activity) (models.YearCount, bool) {
	counts := make(map[string]int64)
	var order []string
	for _, a := range activities {
		year := a.StartYear()
		if _, exists := counts[year]; !exists {
			order = append(order, year)
		}
		counts[year]++
	}

	var best models.YearCount
	found := false
	for _, year := range order {
		if !found || counts[year] > best.Count {
			best = models.YearCount{Year: year, Count: counts[year]}
			found = true
		}
	}
	return best, found
}

// YearWithMostHours sums whole activity hours per start year and returns the
// year with the largest total. It is computed independently of
// YearWithMostActivities; the two may disagree.
func YearWithMostHours(activities []models.Activity) (models.YearHours, bool) {
	hours := make(map[string]int64)
	var order []string
	for _, a := range activities {
		year := a.StartYear()
		if _, exists := hours[year]; !exists {
			order = append(order, year)
		}
		hours[year] += a.DurationHours()
	}

	var best models.YearHours
	found := false
	for _, year := range order {
		if !found || hours[year] > best.Hours {
			best = models.YearHours{Year: year, Hours: hours[year]}
			found = true
		}
	}
	return best, found
}

// MostUsedModePerUser returns, for every user with at least one labeled
// activity, the transportation mode with the highest activity count. Ties go
// to the mode encountered first. Results are ordered by user ID.
func MostUsedModePerUser(activities []models.Activity) []models.UserMode {
	type modeCount struct {
		mode  string
		count int64
	}
	perUser := make(map[string][]modeCount)
	for _, a := range activities {
		if a.TransportationMode == models.ModeUnlabeled {
			continue
		}
		modes := perUser[a.UserID]
		found := false
		for i := range modes {
			if modes[i].mode == a.TransportationMode {
				modes[i].count++
				found = true
				break
			}
		}
		if !found {
			modes = append(modes, modeCount{mode: a.TransportationMode, count: 1})
		}
		perUser[a.UserID] = modes
	}

	userIDs := make([]string, 0, len(perUser))
	for userID := range perUser {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	result := make([]models.UserMode, 0, len(userIDs))
	for _, userID := range userIDs {
		modes := perUser[userID]
		sort.SliceStable(modes, func(i, j int) bool {
			return modes[i].count > modes[j].count
		})
		result = append(result, models.UserMode{UserID: userID, Mode: modes[0].mode})
	}
	return result
}

// ModeCounts returns every registered transportation mode with its activity
// count, descending. The unlabeled sentinel is excluded.
func ModeCounts(activities []models.Activity) []models.ModeCount {
	counts := make(map[string]int64)
	var order []string
	for _, a := range activities {
		if a.TransportationMode == models.ModeUnlabeled {
			continue
		}
		if _, exists := counts[a.TransportationMode]; !exists {
			order = append(order, a.TransportationMode)
		}
		counts[a.TransportationMode]++
	}

	result := make([]models.ModeCount, 0, len(order))
	for _, mode := range order {
		result = append(result, models.ModeCount{Mode: mode, Count: counts[mode]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// UsersByMode returns the distinct users with at least one activity of the
// given mode, sorted by user ID.
func UsersByMode(activities []models.Activity, mode string) []string {
	seen := make(map[string]bool)
	var users []string
	for _, a := range activities {
		if a.TransportationMode != mode || seen[a.UserID] {
			continue
		}
		seen[a.UserID] = true
		users = append(users, a.UserID)
	}
	sort.Strings(users)
	return users
}

// AverageActivities computes the average number of activities per user,
// against all users and against users with at least one activity, rounded to
// two decimals.
func AverageActivities(userCount, activeUserCount, activityCount int64) models.ActivityAverages {
	avg := models.ActivityAverages{}
	if userCount > 0 {
		avg.PerUser = round2(float64(activityCount) / float64(userCount))
	}
	if activeUserCount > 0 {
		avg.PerActiveUser = round2(float64(activityCount) / float64(activeUserCount))
	}
	return avg
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WalkActivityIDs filters activities to the walk trips of one user starting
// in the given year and returns their IDs.
func WalkActivityIDs(activities []models.Activity, userID string, year int) []int64 {
	var ids []int64
	for _, a := range activities {
		if a.UserID != userID || a.TransportationMode != "walk" {
			continue
		}
		if a.StartDateTime.Year() != year {
			continue
		}
		ids = append(ids, a.ID)
	}
	return ids
}

// WalkedDistanceKm sums the haversine distance between chronologically
// adjacent trackpoints in kilometers. Points must arrive grouped by activity;
// a pair spanning two activities is never summed.
func WalkedDistanceKm(points []models.TrackPoint) float64 {
	var km float64
	for i := 0; i+1 < len(points); i++ {
		if points[i].ActivityID != points[i+1].ActivityID {
			continue
		}
		km += spatial.HaversineDistanceKm(
			points[i].Latitude, points[i].Longitude,
			points[i+1].Latitude, points[i+1].Longitude,
		)
	}
	return km
}
