package occupancy

import (
	"fmt"
	"strings"
)

// HigherPriorityConflictError reports a placement blocked by courses of strictly higher priority
type HigherPriorityConflictError struct {
	CourseKey string
	Blocking  []string
}

func (err HigherPriorityConflictError) Error() string {
	return fmt.Sprintf("course \"%v\" conflicts with higher priority courses: %v", err.CourseKey, strings.Join(err.Blocking, ", "))
}

// EvictionRequiredError reports a placement that needs the confirmation to evict the conflicting courses
type EvictionRequiredError struct {
	CourseKey   string
	Conflicting []string
}

func (err EvictionRequiredError) Error() string {
	return fmt.Sprintf("placing course \"%v\" requires evicting: %v", err.CourseKey, strings.Join(err.Conflicting, ", "))
}

// StaleOutcomeError reports an outcome evaluated against a store that has been mutated since
type StaleOutcomeError struct {
	CourseKey string
	Evaluated uint64
	Current   uint64
}

func (err StaleOutcomeError) Error() string {
	return fmt.Sprintf("outcome of course \"%v\" was evaluated at version %d but the store is at version %d", err.CourseKey, err.Evaluated, err.Current)
}

// UnplaceableCourseError reports a course without any session that fits the grid
type UnplaceableCourseError struct {
	CourseKey string
}

func (err UnplaceableCourseError) Error() string {
	return fmt.Sprintf("course \"%v\" has no placeable session", err.CourseKey)
}
