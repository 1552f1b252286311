package service

import (
	"errors"
	"fmt"

	"github.com/gpstrack/geolife-backend-go/internal/models"
	"github.com/gpstrack/geolife-backend-go/internal/query"
	"github.com/gpstrack/geolife-backend-go/internal/repository"
)

// ForbiddenCity is the geofence target coordinate (Beijing).
const (
	ForbiddenCityLat = 39.916
	ForbiddenCityLon = 116.397
)

// ErrUserNotFound is returned for queries scoped to a user that was never
// ingested.
var ErrUserNotFound = errors.New("user not found")

// QueryService runs the analytical queries over the ingested collections
type QueryService struct {
	userRepo       *repository.UserRepository
	activityRepo   *repository.ActivityRepository
	trackPointRepo *repository.TrackPointRepository
}

// NewQueryService creates a new query service
func NewQueryService(
	userRepo *repository.UserRepository,
	activityRepo *repository.ActivityRepository,
	trackPointRepo *repository.TrackPointRepository,
) *QueryService {
	return &QueryService{
		userRepo:       userRepo,
		activityRepo:   activityRepo,
		trackPointRepo: trackPointRepo,
	}
}

// RecordCounts returns the number of users, activities and trackpoints.
func (s *QueryService) RecordCounts() (models.RecordCounts, error) {
	var counts models.RecordCounts
	var err error

	if counts.Users, err = s.userRepo.Count(); err != nil {
		return counts, err
	}
	if counts.Activities, err = s.activityRepo.Count(); err != nil {
		return counts, err
	}
	if counts.TrackPoints, err = s.trackPointRepo.Count(); err != nil {
		return counts, err
	}
	return counts, nil
}

// AverageActivities returns the average number of activities per user.
func (s *QueryService) AverageActivities() (models.ActivityAverages, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return models.ActivityAverages{}, err
	}
	activeUsers, err := s.activityRepo.DistinctUserCount()
	if err != nil {
		return models.ActivityAverages{}, err
	}
	activities, err := s.activityRepo.Count()
	if err != nil {
		return models.ActivityAverages{}, err
	}
	return query.AverageActivities(users, activeUsers, activities), nil
}

// TopActiveUsers returns the n users with the most activities.
func (s *QueryService) TopActiveUsers(n int) ([]models.UserActivityCount, error) {
	if n < 1 {
		return nil, fmt.Errorf("n must be positive")
	}
	activities, err := s.activityRepo.All()
	if err != nil {
		return nil, err
	}
	return query.TopActiveUsers(activities, n), nil
}

// YearWithMostActivities returns the year with the most recorded activities.
func (s *QueryService) YearWithMostActivities() (models.YearCount, error) {
	activities, err := s.activityRepo.All()
	if err != nil {
		return models.YearCount{}, err
	}
	best, found := query.YearWithMostActivities(activities)
	if !found {
		return models.YearCount{}, fmt.Errorf("no activities ingested")
	}
	return best, nil
}

// YearWithMostHours returns the year with the most recorded hours.
func (s *QueryService) YearWithMostHours() (models.YearHours, error) {
	activities, err := s.activityRepo.All()
	if err != nil {
		return models.YearHours{}, err
	}
	best, found := query.YearWithMostHours(activities)
	if !found {
		return models.YearHours{}, fmt.Errorf("no activities ingested")
	}
	return best, nil
}

// TopElevationGain returns the n users with the highest accumulated altitude
// gain, computed in one streaming pass over the trackpoints.
func (s *QueryService) TopElevationGain(n int) ([]models.UserElevationGain, error) {
	if n < 1 {
		return nil, fmt.Errorf("n must be positive")
	}
	acc := query.NewElevationAccumulator()
	err := s.trackPointRepo.ForEach(func(p models.TrackPoint) error {
		acc.ObservePoint(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc.Top(n), nil
}

// InvalidActivityCounts returns, per user, the number of invalid adjacent
// point pairs (time gap of five minutes or more within one activity).
func (s *QueryService) InvalidActivityCounts() ([]models.UserInvalidCount, error) {
	detector := query.NewGapDetector()
	err := s.trackPointRepo.ForEach(func(p models.TrackPoint) error {
		detector.Observe(p.ActivityID, p.UserID, p.DateDays)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detector.Counts(), nil
}

// GeofenceUsers returns the users with a trackpoint in the Forbidden City.
func (s *QueryService) GeofenceUsers() ([]string, error) {
	matcher := query.NewGeofenceMatcher(ForbiddenCityLat, ForbiddenCityLon)
	err := s.trackPointRepo.ForEach(func(p models.TrackPoint) error {
		matcher.Observe(p.UserID, p.Latitude, p.Longitude)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matcher.Users(), nil
}

// MostUsedModePerUser returns each labeled user's most used transportation mode.
func (s *QueryService) MostUsedModePerUser() ([]models.UserMode, error) {
	activities, err := s.activityRepo.All()
	if err != nil {
		return nil, err
	}
	return query.MostUsedModePerUser(activities), nil
}

// ModeCounts returns every registered mode with its activity count.
func (s *QueryService) ModeCounts() ([]models.ModeCount, error) {
	activities, err := s.activityRepo.All()
	if err != nil {
		return nil, err
	}
	return query.ModeCounts(activities), nil
}

// UsersByMode returns the users with at least one activity of the given mode.
func (s *QueryService) UsersByMode(mode string) ([]string, error) {
	if mode == "" || mode == models.ModeUnlabeled {
		return nil, fmt.Errorf("a registered transportation mode is required")
	}
	activities, err := s.activityRepo.All()
	if err != nil {
		return nil, err
	}
	return query.UsersByMode(activities, mode), nil
}

// DistanceWalked returns the distance in kilometers walked by a user in a
// year, summed over adjacent trackpoints within each walk activity.
func (s *QueryService) DistanceWalked(userID string, year int) (models.WalkedDistance, error) {
	result := models.WalkedDistance{UserID: userID, Year: year}

	exists, err := s.userRepo.Exists(userID)
	if err != nil {
		return result, err
	}
	if !exists {
		return result, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}

	activities, err := s.activityRepo.All()
	if err != nil {
		return result, err
	}
	ids := query.WalkActivityIDs(activities, userID, year)
	if len(ids) == 0 {
		return result, nil
	}

	var points []models.TrackPoint
	err = s.trackPointRepo.ForEachOfActivities(ids, func(p models.TrackPoint) error {
		points = append(points, p)
		return nil
	})
	if err != nil {
		return result, err
	}

	result.Kilometers = query.WalkedDistanceKm(points)
	return result, nil
}
