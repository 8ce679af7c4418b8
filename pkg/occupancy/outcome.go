package occupancy

import (
	"slices"

	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/samber/lo"
)

type OutcomeKind int

const (
	Placeable OutcomeKind = iota
	AlreadyPlaced
	NeedsEviction
	RejectedHigherPriority
	Unplaceable
)

var outcomeKindNames = map[OutcomeKind]string{
	Placeable:              "placeable",
	AlreadyPlaced:          "already-placed",
	NeedsEviction:          "needs-eviction",
	RejectedHigherPriority: "rejected-higher-priority",
	Unplaceable:            "unplaceable",
}

func (kind OutcomeKind) String() string {
	return outcomeKindNames[kind]
}

type ConflictReason int

const (
	Overlap ConflictReason = iota
	AmbiguousMerge         // Same parity class on an identical rectangle
	DualFull
)

var conflictReasonNames = map[ConflictReason]string{
	Overlap:        "overlap",
	AmbiguousMerge: "ambiguous-merge",
	DualFull:       "dual-full",
}

func (reason ConflictReason) String() string {
	return conflictReasonNames[reason]
}

// Conflict is an occupied cell standing in the way of one of the candidate's sessions
type Conflict struct {
	CourseKey string
	Cell      Cell
	Reason    ConflictReason
}

// PlaceOutcome is the side-effect free evaluation of placing a course into the store
type PlaceOutcome struct {
	Kind       OutcomeKind
	CourseKey  string
	Placements []Placement // Sessions landing on empty rows
	Merges     []Placement // Sessions turning an existing single cell into a dual one
	Conflicts  []Conflict
	Blocking   []string // Higher priority keys, only set when rejected

	course  model.Course
	lookup  PriorityLookup
	version uint64
}

// Returns the distinct keys of the courses in conflict, sorted
func (outcome PlaceOutcome) ConflictingKeys() []string {
	keys := lo.Uniq(lo.Map(outcome.Conflicts, func(conflict Conflict, _ int) string { return conflict.CourseKey }))
	slices.Sort(keys)
	return keys
}
