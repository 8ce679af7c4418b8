package planner

import "fmt"

// EmptyGroupError reports a requested group without any candidate in the catalog
type EmptyGroupError struct {
	Index int
	Group []string
}

func (err EmptyGroupError) Error() string {
	return fmt.Sprintf("group %d has no candidates: %v", err.Index, err.Group)
}
