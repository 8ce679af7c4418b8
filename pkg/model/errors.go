package model

import "fmt"

// InvalidTimeSlotError reports a time string that does not map to a slot of the grid
type InvalidTimeSlotError struct {
	Value  string
	Reason string
}

func (err InvalidTimeSlotError) Error() string {
	return fmt.Sprintf("invalid time slot \"%v\": %v", err.Value, err.Reason)
}

// InvalidFieldError reports a session field (day or parity) that could not be interpreted
type InvalidFieldError struct {
	Field string
	Value string
}

func (err InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %v \"%v\"", err.Field, err.Value)
}

// UnknownCourseKeyError reports a key that is not present in the catalog
type UnknownCourseKeyError struct {
	Key string
}

func (err UnknownCourseKeyError) Error() string {
	return fmt.Sprintf("course \"%v\" is not present in the catalog", err.Key)
}
