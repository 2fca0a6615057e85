package payment

import (
	"fmt"
	"strconv"
)

// MonthKey builds the canonical YYYY-MM-01 key for a month index (0-11).
func MonthKey(year, monthIndex int) (string, error) {
	if monthIndex < 0 || monthIndex > 11 {
		return "", fmt.Errorf("month index out of range: %d", monthIndex)
	}
	if year < 1 || year > 9999 {
		return "", fmt.Errorf("year out of range: %d", year)
	}
	return fmt.Sprintf("%04d-%02d-01", year, monthIndex+1), nil
}

// MonthIndex extracts the 0-based month index from a YYYY-MM-01 key.
// The string components are parsed directly so bucketing never passes
// through a timezone-sensitive date conversion.
func MonthIndex(month string) (int, error) {
	if len(month) != 10 || month[4] != '-' || month[7] != '-' {
		return 0, fmt.Errorf("invalid month key: %q", month)
	}
	m, err := strconv.Atoi(month[5:7])
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("invalid month key: %q", month)
	}
	return m - 1, nil
}

// MonthYear extracts the year from a YYYY-MM-01 key.
func MonthYear(month string) (int, error) {
	if len(month) != 10 || month[4] != '-' {
		return 0, fmt.Errorf("invalid month key: %q", month)
	}
	y, err := strconv.Atoi(month[0:4])
	if err != nil {
		return 0, fmt.Errorf("invalid month key: %q", month)
	}
	return y, nil
}
