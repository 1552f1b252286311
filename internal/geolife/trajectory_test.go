package geolife

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var trajectoryHeader = []string{
	"Geolife trajectory",
	"WGS 84",
	"Altitude is in Feet",
	"Reserved 3",
	"0,2,255,My Track,0,0,2182,234232432.000000",
	"0",
}

func writeTrajectory(t *testing.T, dir, name string, dataLines []string) string {
	t.Helper()
	lines := append(append([]string{}, trajectoryHeader...), dataLines...)
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
	require.NoError(t, err, "write trajectory file")
	return path
}

func dataLine(lat, lon float64, alt int, days float64, date, clock string) string {
	return fmt.Sprintf("%.6f,%.6f,0,%d,%.10f,%s,%s", lat, lon, alt, days, date, clock)
}

func manyLines(n int) []string {
	lines := make([]string, n)
	for i := 0; i < n; i++ {
		lines[i] = dataLine(39.9, 116.3, 100, 39744.0+float64(i)/86400, "2008-10-23", "02:53:04")
	}
	return lines
}

func TestReadPoints(t *testing.T) {
	dir := t.TempDir()
	path := writeTrajectory(t, dir, "20081023025304.plt", []string{
		dataLine(39.984702, 116.318417, 492, 39744.1201851852, "2008-10-23", "02:53:04"),
		dataLine(39.984683, 116.31845, 492, 39744.1202546296, "2008-10-23", "02:53:10"),
	})

	points, ok, err := ReadPoints(path)
	require.NoError(t, err, "parse")
	require.True(t, ok, "file within cap must be kept")
	require.Len(t, points, 2)

	require.InDelta(t, 39.984702, points[0].Latitude, 1e-9)
	require.InDelta(t, 116.318417, points[0].Longitude, 1e-9)
	require.Equal(t, 492, points[0].Altitude)
	require.InDelta(t, 39744.1201851852, points[0].DateDays, 1e-9)
	require.Equal(t, time.Date(2008, 10, 23, 2, 53, 4, 0, time.UTC), points[0].DateTime)
}

func TestReadTimeSpan(t *testing.T) {
	dir := t.TempDir()
	path := writeTrajectory(t, dir, "a.plt", []string{
		dataLine(39.9, 116.3, 100, 39744.1, "2008-10-23", "02:53:04"),
		dataLine(39.9, 116.3, 100, 39744.2, "2008-10-23", "03:10:00"),
		dataLine(39.9, 116.3, 100, 39744.3, "2008-10-23", "04:00:30"),
	})

	span, ok, err := ReadTimeSpan(path)
	require.NoError(t, err, "parse")
	require.True(t, ok)
	require.Equal(t, time.Date(2008, 10, 23, 2, 53, 4, 0, time.UTC), span.Start)
	require.Equal(t, time.Date(2008, 10, 23, 4, 0, 30, 0, time.UTC), span.End)
	require.False(t, span.End.Before(span.Start), "end must not precede start")
}

func TestPointCapBoundary(t *testing.T) {
	dir := t.TempDir()

	atCap := writeTrajectory(t, dir, "at_cap.plt", manyLines(2500))
	overCap := writeTrajectory(t, dir, "over_cap.plt", manyLines(2501))

	points, ok, err := ReadPoints(atCap)
	require.NoError(t, err)
	require.True(t, ok, "exactly 2500 data lines must be retained")
	require.Len(t, points, 2500)

	_, ok, err = ReadPoints(overCap)
	require.NoError(t, err)
	require.False(t, ok, "2501 data lines must be discarded")

	// The time-span pass must agree with the full-record pass on every
	// discard decision.
	_, ok, err = ReadTimeSpan(atCap)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = ReadTimeSpan(overCap)
	require.NoError(t, err)
	require.False(t, ok, "span mode must discard what full mode discards")
}

func TestReadPointsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := writeTrajectory(t, dir, "bad.plt", []string{
		dataLine(39.9, 116.3, 100, 39744.1, "2008-10-23", "02:53:04"),
		"not-a-lat,116.3,0,100,39744.2,2008-10-23,02:53:10",
	})

	_, _, err := ReadPoints(path)
	require.Error(t, err, "malformed numeric field is fatal for the file")
}

func TestReadTimeSpanMalformedTimestamp(t *testing.T) {
	dir := t.TempDir()
	path := writeTrajectory(t, dir, "bad.plt", []string{
		"39.9,116.3,0,100,39744.1,2008-10-23,garbage",
	})

	_, _, err := ReadTimeSpan(path)
	require.Error(t, err)
}

func TestReadPointsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTrajectory(t, dir, "empty.plt", nil)

	_, ok, err := ReadPoints(path)
	require.NoError(t, err)
	require.False(t, ok, "a file with no data lines yields no activity")

	_, ok, err = ReadTimeSpan(path)
	require.NoError(t, err)
	require.False(t, ok)
}
