package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseTimestamp accepts the time notations people actually type: plain
// seconds ("90", "90.5"), colon notation ("1:30", "1:02:30.5"), and Go
// duration syntax ("1m30s"). Negative values are rejected.
func parseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	if strings.Contains(value, ":") {
		return parseColonTimestamp(value)
	}

	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("negative timestamp %q", value)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}

	if d, err := time.ParseDuration(value); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("negative timestamp %q", value)
		}
		return d, nil
	}

	return 0, fmt.Errorf("unrecognized timestamp %q (use seconds, mm:ss, or 1m30s)", value)
}

func parseColonTimestamp(value string) (time.Duration, error) {
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("unrecognized timestamp %q", value)
	}

	// The last field is seconds and may carry a fraction; the rest are
	// whole minutes and hours.
	seconds, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("unrecognized timestamp %q", value)
	}
	total := seconds
	multiplier := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		unit, err := strconv.Atoi(parts[i])
		if err != nil || unit < 0 {
			return 0, fmt.Errorf("unrecognized timestamp %q", value)
		}
		total += float64(unit) * multiplier
		multiplier *= 60
	}
	return time.Duration(total * float64(time.Second)), nil
}
