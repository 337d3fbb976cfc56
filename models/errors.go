package models

import "fmt"

// UpstreamAPIError reports a failed call to the video platform API. Status is the
// HTTP status code, or 0 when no response was received.
type UpstreamAPIError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *UpstreamAPIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: upstream request failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: upstream returned status %d: %v", e.Op, e.Status, e.Err)
}

func (e *UpstreamAPIError) Unwrap() error { return e.Err }

// ChannelNotFoundError is returned when a channel lookup yields no items.
type ChannelNotFoundError struct {
	ChannelID string
}

func (e *ChannelNotFoundError) Error() string {
	return fmt.Sprintf("channel %q not found", e.ChannelID)
}

// MalformedRecordError reports a listing entry missing a required field.
type MalformedRecordError struct {
	VideoID string
	Field   string
	Err     error
}

func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("malformed record %q: field %s", e.VideoID, e.Field)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg + " is missing"
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// MalformedDurationError reports a duration token whose component cannot be read.
type MalformedDurationError struct {
	Token     string
	Component string
}

func (e *MalformedDurationError) Error() string {
	return fmt.Sprintf("malformed duration %q: bad %s component", e.Token, e.Component)
}

// NoWordsFoundError is returned when a tag list contains nothing but digits and
// punctuation.
type NoWordsFoundError struct {
	Tags []string
}

func (e *NoWordsFoundError) Error() string {
	return fmt.Sprintf("no words found in %d tags", len(e.Tags))
}

// ValidationError names the first dataset check that failed. Row is -1 when the
// failure is not tied to a single row.
type ValidationError struct {
	Check   string
	Column  string
	Row     int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("validation %s failed: %s", e.Check, e.Message)
	}
	if e.Row < 0 {
		return fmt.Sprintf("validation %s failed for column %s: %s", e.Check, e.Column, e.Message)
	}
	return fmt.Sprintf("validation %s failed for column %s at row %d: %s", e.Check, e.Column, e.Row, e.Message)
}
