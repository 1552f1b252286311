package geolife

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gpstrack/geolife-backend-go/internal/models"
)

const (
	// trajectoryHeaderLines is the fixed preamble of every .plt file,
	// skipped without validation.
	trajectoryHeaderLines = 6

	// MaxTrackPoints caps the number of data lines per trajectory file.
	// Files exceeding the cap are discarded in full, in both parse modes.
	MaxTrackPoints = 2500
)

// RawPoint is one parsed trajectory line before it is stamped with an
// activity ID.
type RawPoint struct {
	Latitude  float64
	Longitude float64
	Altitude  int
	DateDays  float64
	DateTime  time.Time
}

// TimeSpan is the [start, end] wall-clock span of one trajectory file.
type TimeSpan struct {
	Start time.Time
	End   time.Time
}

// scanDataLines runs fn over every data line of a trajectory file, skipping
// the header. It returns ok=false as soon as the line cap is exceeded, so a
// too-large file is never partially consumed by either parse mode.
func scanDataLines(path string, fn func(fields []string) error) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open trajectory file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= trajectoryHeaderLines {
			continue
		}
		if lineNo-trajectoryHeaderLines > MaxTrackPoints {
			return false, nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(strings.Split(line, ",")); err != nil {
			return false, fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to read trajectory file: %w", err)
	}
	return true, nil
}

// parseLineTime parses the trailing date and time fields of a trajectory line.
func parseLineTime(fields []string) (time.Time, error) {
	if len(fields) < 7 {
		return time.Time{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}
	t, err := time.Parse(models.TimeLayout, fields[5]+" "+fields[6])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	return t, nil
}

// ReadTimeSpan parses a trajectory file in time-span mode, returning the
// timestamps of its first and last data lines. ok is false when the file
// exceeds the point cap and must be discarded.
func ReadTimeSpan(path string) (TimeSpan, bool, error) {
	var span TimeSpan
	seen := false

	ok, err := scanDataLines(path, func(fields []string) error {
		t, err := parseLineTime(fields)
		if err != nil {
			return err
		}
		if !seen {
			span.Start = t
			seen = true
		}
		span.End = t
		return nil
	})
	if err != nil {
		return TimeSpan{}, false, err
	}
	if !ok || !seen {
		// Too large, or no data lines at all. Either way there is no
		// activity to record for this file.
		return TimeSpan{}, false, nil
	}
	return span, true, nil
}

// ReadPoints parses a trajectory file in full-record mode. ok is false when
// the file exceeds the point cap; the discard decision always agrees with
// ReadTimeSpan since both share the same line guard.
func ReadPoints(path string) ([]RawPoint, bool, error) {
	var points []RawPoint

	ok, err := scanDataLines(path, func(fields []string) error {
		t, err := parseLineTime(fields)
		if err != nil {
			return err
		}
		lat, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fmt.Errorf("invalid latitude: %w", err)
		}
		lon, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("invalid longitude: %w", err)
		}
		// Altitude is recorded as a float in the raw data but stored
		// truncated, -777 meaning unknown.
		alt, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return fmt.Errorf("invalid altitude: %w", err)
		}
		days, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return fmt.Errorf("invalid day fraction: %w", err)
		}
		points = append(points, RawPoint{
			Latitude:  lat,
			Longitude: lon,
			Altitude:  int(alt),
			DateDays:  days,
			DateTime:  t,
		})
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if !ok || len(points) == 0 {
		return nil, false, nil
	}
	return points, true, nil
}
