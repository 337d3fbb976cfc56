package services

import (
	"strconv"
	"strings"

	"youtube-stats/models"
)

// Duration buckets.
const (
	DurationShort  = "short"
	DurationMedium = "medium"
	DurationLong   = "long"
)

const (
	shortThreshold  = 180 // 3 minutes
	mediumThreshold = 600 // 10 minutes
)

var durationUnits = []struct {
	delim   byte
	name    string
	seconds int64
}{
	{'H', "hours", 3600},
	{'M', "minutes", 60},
	{'S', "seconds", 1},
}

// ParseDuration converts a token such as "PT4M13S" into total seconds. Each of the
// H, M and S components is optional; the digits of a component sit between its
// delimiter and the previous present delimiter, or 'T' for the first one.
// An empty token, or one with no H/M/S at all, is 0 seconds.
func ParseDuration(token string) (int64, error) {
	if token == "" {
		return 0, nil
	}

	var total int64
	start := -1
	for _, unit := range durationUnits {
		end := strings.IndexByte(token, unit.delim)
		if end < 0 {
			continue
		}
		if start < 0 {
			t := strings.IndexByte(token, 'T')
			if t < 0 {
				return 0, &models.MalformedDurationError{Token: token, Component: unit.name}
			}
			start = t + 1
		}
		if end < start {
			return 0, &models.MalformedDurationError{Token: token, Component: unit.name}
		}

		n, err := strconv.ParseUint(token[start:end], 10, 32)
		if err != nil {
			return 0, &models.MalformedDurationError{Token: token, Component: unit.name}
		}
		total += int64(n) * unit.seconds
		start = end + 1
	}
	return total, nil
}

// ClassifyDuration buckets a length in seconds into short, medium or long.
func ClassifyDuration(seconds int64) string {
	switch {
	case seconds < shortThreshold:
		return DurationShort
	case seconds < mediumThreshold:
		return DurationMedium
	default:
		return DurationLong
	}
}
