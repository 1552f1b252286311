package geolife

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// labelTimeLayout is the timestamp format of labels.txt files. It is not the
// same format as trajectory timestamps and the two parsers are kept separate.
const labelTimeLayout = "2006/01/02 15:04:05"

// ReadLabels parses a user's labels.txt into a map from activity start time
// to transportation mode. The first line is a header. Duplicate start times
// are last-write-wins.
func ReadLabels(path string) (map[time.Time]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label file: %w", err)
	}
	defer f.Close()

	labels := make(map[time.Time]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s line %d: expected 3 fields, got %d", path, lineNo, len(fields))
		}
		start, err := time.Parse(labelTimeLayout, fields[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: invalid start time: %w", path, lineNo, err)
		}
		labels[start] = fields[len(fields)-1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read label file: %w", err)
	}

	return labels, nil
}
