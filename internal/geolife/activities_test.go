package geolife

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gpstrack/geolife-backend-go/internal/models"
)

func newUserDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, trajectoryDirName), 0o755))
	return dir
}

func TestAssembleActivities(t *testing.T) {
	userDir := newUserDir(t)
	trajDir := filepath.Join(userDir, trajectoryDirName)

	writeTrajectory(t, trajDir, "20081023025304.plt", []string{
		dataLine(39.9, 116.3, 100, 39744.1, "2008-10-23", "02:53:04"),
		dataLine(39.9, 116.3, 100, 39744.2, "2008-10-23", "03:10:00"),
	})
	writeTrajectory(t, trajDir, "20081024110000.plt", []string{
		dataLine(39.9, 116.3, 100, 39745.4, "2008-10-24", "11:00:00"),
	})

	labels := map[time.Time]string{
		time.Date(2008, 10, 23, 2, 53, 4, 0, time.UTC): "walk",
	}
	idMap := make(map[string]int64)

	activities, nextID, err := AssembleActivities(userDir, "010", labels, idMap, 5)
	require.NoError(t, err, "assemble")
	require.Len(t, activities, 2)
	require.Equal(t, int64(7), nextID, "counter advances once per kept file")

	// Sorted file order, IDs strictly increasing from the offset.
	require.Equal(t, int64(5), activities[0].ID)
	require.Equal(t, int64(6), activities[1].ID)
	require.Equal(t, "010", activities[0].UserID)

	// Exact start-time match takes the labeled mode, everything else "-".
	require.Equal(t, "walk", activities[0].TransportationMode)
	require.Equal(t, models.ModeUnlabeled, activities[1].TransportationMode)

	for _, a := range activities {
		require.False(t, a.EndDateTime.Before(a.StartDateTime), "end must be >= start")
	}

	require.Equal(t, int64(5), idMap["20081023025304"])
	require.Equal(t, int64(6), idMap["20081024110000"])
}

func TestAssembleActivitiesNoLabels(t *testing.T) {
	userDir := newUserDir(t)
	writeTrajectory(t, filepath.Join(userDir, trajectoryDirName), "20081023025304.plt", []string{
		dataLine(39.9, 116.3, 100, 39744.1, "2008-10-23", "02:53:04"),
	})

	idMap := make(map[string]int64)
	activities, nextID, err := AssembleActivities(userDir, "011", nil, idMap, 0)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, int64(1), nextID)
	require.Equal(t, models.ModeUnlabeled, activities[0].TransportationMode)
}

func TestAssembleActivitiesCapDiscard(t *testing.T) {
	userDir := newUserDir(t)
	trajDir := filepath.Join(userDir, trajectoryDirName)

	writeTrajectory(t, trajDir, "20081023025304.plt", manyLines(2501))
	writeTrajectory(t, trajDir, "20081024110000.plt", []string{
		dataLine(39.9, 116.3, 100, 39745.4, "2008-10-24", "11:00:00"),
	})

	idMap := make(map[string]int64)
	activities, nextID, err := AssembleActivities(userDir, "010", nil, idMap, 0)
	require.NoError(t, err)
	require.Len(t, activities, 1, "over-cap file yields no activity")
	require.Equal(t, int64(1), nextID, "no ID is consumed for a discarded file")

	_, found := idMap["20081023025304"]
	require.False(t, found, "discarded files stay out of the ID map")
	require.Equal(t, int64(0), idMap["20081024110000"])
}

func TestAssembleActivitiesUnparseableFileSkipped(t *testing.T) {
	userDir := newUserDir(t)
	trajDir := filepath.Join(userDir, trajectoryDirName)

	writeTrajectory(t, trajDir, "20081023025304.plt", []string{
		"39.9,116.3,0,100,39744.1,2008-10-23,garbage",
	})
	writeTrajectory(t, trajDir, "20081024110000.plt", []string{
		dataLine(39.9, 116.3, 100, 39745.4, "2008-10-24", "11:00:00"),
	})

	idMap := make(map[string]int64)
	activities, _, err := AssembleActivities(userDir, "010", nil, idMap, 0)
	require.NoError(t, err, "a broken file is abandoned, not fatal for the run")
	require.Len(t, activities, 1)
}
