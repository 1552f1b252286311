package geolife

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gpstrack/geolife-backend-go/internal/models"
)

// trajectoryDirName is the subdirectory of each user holding .plt files.
const trajectoryDirName = "Trajectory"

// listTrajectoryFiles returns the .plt file names of a user directory in
// sorted order.
func listTrajectoryFiles(userDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(userDir, trajectoryDirName))
	if err != nil {
		return nil, fmt.Errorf("failed to list trajectory dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".plt") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// AssembleActivities builds the activity records for one user. Activity IDs
// are drawn from nextID, which the caller threads through sequential calls so
// IDs stay globally unique and strictly increasing across the whole run. For
// every kept file the base name (without extension) is recorded into idMap
// for the trackpoint pass. labels may be nil for unlabeled users.
//
// Files over the point cap are skipped without an activity. Files that fail
// to parse are abandoned whole and logged; they do not stop the run.
func AssembleActivities(userDir, userID string, labels map[time.Time]string, idMap map[string]int64, nextID int64) ([]models.Activity, int64, error) {
	names, err := listTrajectoryFiles(userDir)
	if err != nil {
		return nil, nextID, err
	}

	var activities []models.Activity
	for _, name := range names {
		path := filepath.Join(userDir, trajectoryDirName, name)
		span, ok, err := ReadTimeSpan(path)
		if err != nil {
			log.Printf("Skipping unparseable trajectory file: %v", err)
			continue
		}
		if !ok {
			continue
		}

		mode := models.ModeUnlabeled
		if labels != nil {
			if m, found := labels[span.Start]; found {
				mode = m
			}
		}

		activities = append(activities, models.Activity{
			ID:                 nextID,
			UserID:             userID,
			TransportationMode: mode,
			StartDateTime:      span.Start,
			EndDateTime:        span.End,
		})
		idMap[strings.TrimSuffix(name, filepath.Ext(name))] = nextID
		nextID++
	}

	return activities, nextID, nil
}
