package service

import (
	"fmt"
	"log"

	"github.com/gpstrack/geolife-backend-go/internal/geolife"
	"github.com/gpstrack/geolife-backend-go/internal/models"
	"github.com/gpstrack/geolife-backend-go/internal/repository"
)

// IngestService loads the Geolife dataset into the database
type IngestService struct {
	userRepo       *repository.UserRepository
	activityRepo   *repository.ActivityRepository
	trackPointRepo *repository.TrackPointRepository
}

// NewIngestService creates a new ingest service
func NewIngestService(
	userRepo *repository.UserRepository,
	activityRepo *repository.ActivityRepository,
	trackPointRepo *repository.TrackPointRepository,
) *IngestService {
	return &IngestService{
		userRepo:       userRepo,
		activityRepo:   activityRepo,
		trackPointRepo: trackPointRepo,
	}
}

// Run ingests the dataset under root. Users are processed one at a time in
// sorted order: activities are assembled and inserted, then the same files
// are re-read to assemble and insert trackpoints, per activity, so memory is
// bounded by the largest single file rather than the dataset. The activity
// ID counter and the filename-to-ID map are threaded sequentially through
// the user loop; this pipeline is deliberately single-threaded.
func (s *IngestService) Run(datasetRoot string) (models.RecordCounts, error) {
	var counts models.RecordCounts

	labeledIDs, err := geolife.ReadLabeledIDs(geolife.LabeledIDsPath(datasetRoot))
	if err != nil {
		return counts, err
	}
	userIDs, err := geolife.ListUserDirs(datasetRoot)
	if err != nil {
		return counts, err
	}

	idMap := make(map[string]int64)
	var nextID int64

	for _, userID := range userIDs {
		hasLabels := geolife.IsLabeled(labeledIDs, userID)

		if err := s.userRepo.InsertUsers([]models.User{{ID: userID, HasLabels: hasLabels}}); err != nil {
			return counts, err
		}
		counts.Users++

		labels, err := geolife.UserLabels(datasetRoot, userID, hasLabels)
		if err != nil {
			return counts, err
		}

		userDir := geolife.UserDir(datasetRoot, userID)
		activities, updatedID, err := geolife.AssembleActivities(userDir, userID, labels, idMap, nextID)
		if err != nil {
			return counts, fmt.Errorf("failed to assemble activities for user %s: %w", userID, err)
		}
		nextID = updatedID

		if err := s.activityRepo.InsertActivities(activities); err != nil {
			return counts, err
		}
		counts.Activities += int64(len(activities))

		groups, err := geolife.AssembleTrackPoints(userDir, userID, idMap)
		if err != nil {
			return counts, fmt.Errorf("failed to assemble trackpoints for user %s: %w", userID, err)
		}
		for _, group := range groups {
			if err := s.trackPointRepo.InsertTrackPoints(group.Points); err != nil {
				return counts, err
			}
			counts.TrackPoints += int64(len(group.Points))
		}

		log.Printf("Ingested user %s: %d activities, %d trackpoints so far", userID, len(activities), counts.TrackPoints)
	}

	return counts, nil
}
