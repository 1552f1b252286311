package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gpstrack/geolife-backend-go/internal/database"
	"github.com/gpstrack/geolife-backend-go/internal/models"
)

// ActivityRepository handles database operations for activities
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// InsertActivities bulk-inserts activities within a single transaction.
// Callers pass one user's activities at a time to bound memory.
func (r *ActivityRepository) InsertActivities(activities []models.Activity) error {
	if len(activities) == 0 {
		return nil
	}

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO activity (id, user_id, transportation_mode, start_date_time, end_date_time)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, a := range activities {
			_, err := stmt.Exec(
				a.ID, a.UserID, a.TransportationMode,
				a.StartDateTime.Format(models.TimeLayout),
				a.EndDateTime.Format(models.TimeLayout),
			)
			if err != nil {
				return fmt.Errorf("failed to insert activity %d: %w", a.ID, err)
			}
		}
		return nil
	})
}

// Count returns the number of activities
func (r *ActivityRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM activity").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}

// DistinctUserCount returns the number of users with at least one activity
func (r *ActivityRepository) DistinctUserCount() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(DISTINCT user_id) FROM activity").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return count, nil
}

// All retrieves every activity ordered by ID
func (r *ActivityRepository) All() ([]models.Activity, error) {
	rows, err := r.db.Query(`SELECT id, user_id, transportation_mode, start_date_time, end_date_time
		FROM activity ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return activities, nil
}

func scanActivity(rows *sql.Rows) (models.Activity, error) {
	var a models.Activity
	var start, end string
	if err := rows.Scan(&a.ID, &a.UserID, &a.TransportationMode, &start, &end); err != nil {
		return models.Activity{}, fmt.Errorf("failed to scan activity: %w", err)
	}

	var err error
	a.StartDateTime, err = time.Parse(models.TimeLayout, start)
	if err != nil {
		return models.Activity{}, fmt.Errorf("failed to parse activity start time: %w", err)
	}
	a.EndDateTime, err = time.Parse(models.TimeLayout, end)
	if err != nil {
		return models.Activity{}, fmt.Errorf("failed to parse activity end time: %w", err)
	}

	return a, nil
}
