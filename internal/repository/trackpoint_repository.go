package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gpstrack/geolife-backend-go/internal/database"
	"github.com/gpstrack/geolife-backend-go/internal/models"
)

// TrackPointRepository handles database operations for trackpoints
type TrackPointRepository struct {
	db *sql.DB
}

// NewTrackPointRepository creates a new trackpoint repository
func NewTrackPointRepository(db *sql.DB) *TrackPointRepository {
	return &TrackPointRepository{db: db}
}

// InsertTrackPoints bulk-inserts trackpoints within a single transaction.
// Callers pass one activity group at a time so insertion order matches file
// order and peak memory stays bounded.
func (r *TrackPointRepository) InsertTrackPoints(points []models.TrackPoint) error {
	if len(points) == 0 {
		return nil
	}

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO trackpoint (activity_id, user_id, latitude, longitude, altitude, date_days, date_time)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, p := range points {
			_, err := stmt.Exec(
				p.ActivityID, p.UserID, p.Latitude, p.Longitude, p.Altitude,
				p.DateDays, p.DateTime.Format(models.TimeLayout),
			)
			if err != nil {
				return fmt.Errorf("failed to insert trackpoint for activity %d: %w", p.ActivityID, err)
			}
		}
		return nil
	})
}

// Count returns the number of trackpoints
func (r *TrackPointRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM trackpoint").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trackpoints: %w", err)
	}
	return count, nil
}

// ForEach streams every trackpoint to fn, grouped by activity and in file
// (chronological) order within each activity. The streaming queries rely on
// this ordering.
func (r *TrackPointRepository) ForEach(fn func(models.TrackPoint) error) error {
	rows, err := r.db.Query(`SELECT activity_id, user_id, latitude, longitude, altitude, date_days, date_time
		FROM trackpoint ORDER BY activity_id, id`)
	if err != nil {
		return fmt.Errorf("failed to query trackpoints: %w", err)
	}
	defer rows.Close()

	return streamTrackPoints(rows, fn)
}

// ForEachOfActivities streams the trackpoints of the given activities to fn,
// grouped by activity and in file order within each activity.
func (r *TrackPointRepository) ForEachOfActivities(activityIDs []int64, fn func(models.TrackPoint) error) error {
	if len(activityIDs) == 0 {
		return nil
	}

	placeholders := make([]string, len(activityIDs))
	args := make([]interface{}, len(activityIDs))
	for i, id := range activityIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT activity_id, user_id, latitude, longitude, altitude, date_days, date_time
		FROM trackpoint WHERE activity_id IN (%s) ORDER BY activity_id, id`, strings.Join(placeholders, ","))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return fmt.Errorf("failed to query trackpoints: %w", err)
	}
	defer rows.Close()

	return streamTrackPoints(rows, fn)
}

func streamTrackPoints(rows *sql.Rows, fn func(models.TrackPoint) error) error {
	for rows.Next() {
		var p models.TrackPoint
		var dateTime string
		err := rows.Scan(&p.ActivityID, &p.UserID, &p.Latitude, &p.Longitude, &p.Altitude, &p.DateDays, &dateTime)
		if err != nil {
			return fmt.Errorf("failed to scan trackpoint: %w", err)
		}
		p.DateTime, err = time.Parse(models.TimeLayout, dateTime)
		if err != nil {
			return fmt.Errorf("failed to parse trackpoint time: %w", err)
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate trackpoints: %w", err)
	}
	return nil
}
