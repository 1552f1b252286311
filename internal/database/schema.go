package database

import (
	"database/sql"
	"fmt"
	"log"
)

// The three collections are created and dropped wholesale: records are only
// ever bulk-inserted during an ingestion run, never updated, so there is no
// versioned migration path.

var collectionDDL = []string{
	`CREATE TABLE IF NOT EXISTS user (
		id TEXT PRIMARY KEY,
		has_labels INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS activity (
		id INTEGER PRIMARY KEY,
		user_id TEXT NOT NULL,
		transportation_mode TEXT NOT NULL,
		start_date_time TEXT NOT NULL,
		end_date_time TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES user(id)
	)`,
	`CREATE TABLE IF NOT EXISTS trackpoint (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		activity_id INTEGER NOT NULL,
		user_id TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		altitude INTEGER NOT NULL,
		date_days REAL NOT NULL,
		date_time TEXT NOT NULL,
		FOREIGN KEY (activity_id) REFERENCES activity(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_user ON activity(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trackpoint_activity ON trackpoint(activity_id)`,
}

// Collections are dropped in reverse dependency order.
var collectionNames = []string{"trackpoint", "activity", "user"}

// CreateCollections creates the user, activity and trackpoint tables.
func CreateCollections(db *sql.DB) error {
	for _, ddl := range collectionDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create collections: %w", err)
		}
	}
	log.Println("Collections created")
	return nil
}

// DropCollections drops the user, activity and trackpoint tables.
func DropCollections(db *sql.DB) error {
	for _, name := range collectionNames {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + name); err != nil {
			return fmt.Errorf("failed to drop collection %s: %w", name, err)
		}
	}
	log.Println("Collections dropped")
	return nil
}

// ResetCollections drops and recreates all collections.
func ResetCollections(db *sql.DB) error {
	if err := DropCollections(db); err != nil {
		return err
	}
	return CreateCollections(db)
}
