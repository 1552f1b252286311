package geolife

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/gpstrack/geolife-backend-go/internal/models"
)

// ActivityPoints is the ordered trackpoint sequence of one activity.
type ActivityPoints struct {
	ActivityID int64
	Points     []models.TrackPoint
}

// AssembleTrackPoints re-parses a user's trajectory files in full-record mode
// and stamps every point with its resolved activity ID. Files with no entry
// in idMap are skipped silently: they were discarded during activity assembly
// and must not produce orphan trackpoints. The point cap is re-checked here
// and agrees with the assembly pass by construction.
func AssembleTrackPoints(userDir, userID string, idMap map[string]int64) ([]ActivityPoints, error) {
	names, err := listTrajectoryFiles(userDir)
	if err != nil {
		return nil, err
	}

	var result []ActivityPoints
	for _, name := range names {
		activityID, found := idMap[strings.TrimSuffix(name, filepath.Ext(name))]
		if !found {
			continue
		}

		path := filepath.Join(userDir, trajectoryDirName, name)
		raw, ok, err := ReadPoints(path)
		if err != nil {
			log.Printf("Skipping unparseable trajectory file: %v", err)
			continue
		}
		if !ok {
			continue
		}

		points := make([]models.TrackPoint, len(raw))
		for i, p := range raw {
			points[i] = models.TrackPoint{
				ActivityID: activityID,
				UserID:     userID,
				Latitude:   p.Latitude,
				Longitude:  p.Longitude,
				Altitude:   p.Altitude,
				DateDays:   p.DateDays,
				DateTime:   p.DateTime,
			}
		}
		result = append(result, ActivityPoints{ActivityID: activityID, Points: points})
	}

	return result, nil
}
