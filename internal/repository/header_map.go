package repository

import (
	"fmt"
	"strings"
)

// createHeaderMap maps column names to their indices. Required columns must
// all be present; optional columns are mapped only when found.
func createHeaderMap(header []string, required []string, optional []string) (map[string]int, error) {
	columnMap := make(map[string]int)

	for _, column := range required {
		idx, found := findColumn(header, column)
		if !found {
			return nil, fmt.Errorf("required field %q not found in CSV header", column)
		}
		columnMap[column] = idx
	}

	for _, column := range optional {
		if idx, found := findColumn(header, column); found {
			columnMap[column] = idx
		}
	}

	return columnMap, nil
}

func findColumn(header []string, column string) (int, bool) {
	for i, field := range header {
		if strings.EqualFold(column, strings.TrimSpace(field)) {
			return i, true
		}
	}
	return 0, false
}
