package geolife

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ReadLabeledIDs reads the labeled_ids.txt index, one user ID per line, and
// returns the IDs sorted. A missing index file is a configuration error.
func ReadLabeledIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open labeled-ID index: %w", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id != "" {
			ids = append(ids, id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labeled-ID index: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

// IsLabeled reports whether userID appears in the sorted labeled-ID list.
func IsLabeled(labeledIDs []string, userID string) bool {
	i := sort.SearchStrings(labeledIDs, userID)
	return i < len(labeledIDs) && labeledIDs[i] == userID
}
