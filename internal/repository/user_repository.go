package repository

import (
	"database/sql"
	"fmt"

	"github.com/gpstrack/geolife-backend-go/internal/database"
	"github.com/gpstrack/geolife-backend-go/internal/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// InsertUsers bulk-inserts users within a single transaction
func (r *UserRepository) InsertUsers(users []models.User) error {
	if len(users) == 0 {
		return nil
	}

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare("INSERT INTO user (id, has_labels) VALUES (?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, u := range users {
			hasLabels := 0
			if u.HasLabels {
				hasLabels = 1
			}
			if _, err := stmt.Exec(u.ID, hasLabels); err != nil {
				return fmt.Errorf("failed to insert user %s: %w", u.ID, err)
			}
		}
		return nil
	})
}

// Exists reports whether a user with the given ID was ingested
func (r *UserRepository) Exists(userID string) (bool, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM user WHERE id = ?", userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to look up user %s: %w", userID, err)
	}
	return count > 0, nil
}

// Count returns the number of users
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM user").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
