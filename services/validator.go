package services

import (
	"fmt"
	"math"
	"time"

	"youtube-stats/models"
)

// Validation check names carried by models.ValidationError.
const (
	CheckNonEmpty = "non_empty"
	CheckNotNull  = "not_null"
	CheckType     = "type"
	CheckRange    = "range"
)

var requiredColumns = []string{models.ColVideoID, models.ColChannelID}

// Validate checks a dataset before it is loaded. Checks run in order and stop at
// the first failure:
//  1. the dataset has rows;
//  2. video_id and channel_id have no null or empty cells;
//  3. every schema column exists and each cell has the column's type;
//  4. counts are non-negative, ratios finite and non-negative, and the duration
//     bucket is one of short, medium, long.
func Validate(ds *models.Dataset) error {
	if ds.Len() == 0 {
		return &models.ValidationError{Check: CheckNonEmpty, Row: -1, Message: "dataset is empty"}
	}

	for _, col := range requiredColumns {
		cells, ok := ds.Column(col)
		if !ok {
			return &models.ValidationError{Check: CheckNotNull, Column: col, Row: -1, Message: "column is missing"}
		}
		for i, cell := range cells {
			if cell == nil {
				return &models.ValidationError{Check: CheckNotNull, Column: col, Row: i, Message: "null value"}
			}
			if s, isString := cell.(string); isString && s == "" {
				return &models.ValidationError{Check: CheckNotNull, Column: col, Row: i, Message: "empty value"}
			}
		}
	}

	for _, col := range models.Schema {
		cells, ok := ds.Column(col.Name)
		if !ok {
			return &models.ValidationError{Check: CheckType, Column: col.Name, Row: -1, Message: "column is missing"}
		}
		for i, cell := range cells {
			if !hasType(cell, col.Type) {
				return &models.ValidationError{
					Check:   CheckType,
					Column:  col.Name,
					Row:     i,
					Message: fmt.Sprintf("expected %s, got %T", col.Type, cell),
				}
			}
		}
	}

	for _, col := range models.Schema {
		cells, _ := ds.Column(col.Name)
		for i, cell := range cells {
			if msg := outOfRange(col, cell); msg != "" {
				return &models.ValidationError{Check: CheckRange, Column: col.Name, Row: i, Message: msg}
			}
		}
	}

	return nil
}

func hasType(cell any, t models.ColumnType) bool {
	switch t {
	case models.TypeString:
		_, ok := cell.(string)
		return ok
	case models.TypeInteger:
		_, ok := cell.(int64)
		return ok
	case models.TypeFloat:
		_, ok := cell.(float64)
		return ok
	case models.TypeTimestamp:
		_, ok := cell.(time.Time)
		return ok
	}
	return false
}

func outOfRange(col models.ColumnSpec, cell any) string {
	switch v := cell.(type) {
	case int64:
		if v < 0 {
			return fmt.Sprintf("negative value %d", v)
		}
	case float64:
		// Every float column is a ratio.
		if col.Type == models.TypeFloat && (math.IsNaN(v) || math.IsInf(v, 0) || v < 0) {
			return fmt.Sprintf("ratio %v is not a finite non-negative number", v)
		}
	case string:
		if col.Name == models.ColDurationCategory {
			switch v {
			case DurationShort, DurationMedium, DurationLong:
			default:
				return fmt.Sprintf("unknown duration bucket %q", v)
			}
		}
	}
	return ""
}
