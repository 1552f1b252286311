package geolife

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gpstrack/geolife-backend-go/internal/models"
)

const (
	dataDirName     = "Data"
	labeledFileName = "labeled_ids.txt"
	labelsFileName  = "labels.txt"
)

// Dataset is the fully assembled result of one ingestion run.
type Dataset struct {
	Users       []models.User
	Activities  []models.Activity
	TrackPoints []ActivityPoints
}

// ListUserDirs returns the numeric user directory names under root/Data in
// sorted order.
func ListUserDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, dataDirName))
	if err != nil {
		return nil, fmt.Errorf("failed to list dataset root: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() && isDigits(e.Name()) {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// UserLabels loads the label map for a labeled user, or nil when the user has
// no labels.
func UserLabels(root, userID string, hasLabels bool) (map[time.Time]string, error) {
	if !hasLabels {
		return nil, nil
	}
	return ReadLabels(filepath.Join(root, dataDirName, userID, labelsFileName))
}

// UserDir returns the directory of one user within the dataset.
func UserDir(root, userID string) string {
	return filepath.Join(root, dataDirName, userID)
}

// LabeledIDsPath returns the path of the labeled-ID index within the dataset.
func LabeledIDsPath(root string) string {
	return filepath.Join(root, labeledFileName)
}

// Ingest assembles the whole dataset under root into memory: users,
// activities and trackpoints, with the activity ID counter and the
// filename-to-ID map threaded through the users in sorted order. The two
// assembly passes are strictly sequential; trackpoint assembly needs IDs that
// only exist once activity assembly has finished for a file.
func Ingest(root string) (*Dataset, error) {
	labeledIDs, err := ReadLabeledIDs(LabeledIDsPath(root))
	if err != nil {
		return nil, err
	}
	userIDs, err := ListUserDirs(root)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	idMap := make(map[string]int64)
	var nextID int64

	for _, userID := range userIDs {
		hasLabels := IsLabeled(labeledIDs, userID)
		ds.Users = append(ds.Users, models.User{ID: userID, HasLabels: hasLabels})

		labels, err := UserLabels(root, userID, hasLabels)
		if err != nil {
			return nil, err
		}

		activities, updatedID, err := AssembleActivities(UserDir(root, userID), userID, labels, idMap, nextID)
		if err != nil {
			return nil, err
		}
		nextID = updatedID
		ds.Activities = append(ds.Activities, activities...)
	}

	// Second pass over the same files, joined by base filename.
	for _, userID := range userIDs {
		points, err := AssembleTrackPoints(UserDir(root, userID), userID, idMap)
		if err != nil {
			return nil, err
		}
		ds.TrackPoints = append(ds.TrackPoints, points...)
	}

	log.Printf("Assembled %d users, %d activities", len(ds.Users), len(ds.Activities))
	return ds, nil
}
