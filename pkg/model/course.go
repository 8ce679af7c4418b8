package model

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

type Course struct {
	Key               string
	Code              string
	Name              string
	Credits           int
	Instructor        string
	Major             string
	Location          string
	GenderRestriction string
	ExamTime          string
	Available         bool
	Sessions          []Session
}

// Returns the distinct days the course meets on, in week order
func (course Course) Days() []Day {
	days := lo.Uniq(lo.Map(course.Sessions, func(session Session, _ int) Day { return session.Day }))
	slices.Sort(days)
	return days
}

// Catalog is an immutable snapshot of the course offerings keyed by course key
type Catalog struct {
	courses map[string]Course
	keys    []string // Insertion order
	grid    Grid
}

func (catalog *Catalog) Get(key string) (Course, bool) {
	course, ok := catalog.courses[key]
	return course, ok
}

func (catalog *Catalog) Contains(key string) bool {
	_, ok := catalog.courses[key]
	return ok
}

func (catalog *Catalog) Keys() []string {
	return slices.Clone(catalog.keys)
}

func (catalog *Catalog) Len() int {
	return len(catalog.keys)
}

func (catalog *Catalog) Grid() Grid {
	return catalog.grid
}

// Returns the courses of the given keys, preserving order and dropping keys absent from the catalog
func (catalog *Catalog) Courses(keys []string) []Course {
	return lo.FilterMap(keys, func(key string, _ int) (Course, bool) {
		return catalog.Get(key)
	})
}

// Resolves a course group to the keys of its sections. A group matches the codes whose prefix before "_" equals
// it; when nothing matches, it falls back to courses whose code equals the group or whose name contains it
func (catalog *Catalog) Candidates(group string) []string {
	candidates := lo.Filter(catalog.keys, func(key string, _ int) bool {
		code, _, _ := strings.Cut(catalog.courses[key].Code, "_")
		return code == group
	})
	if len(candidates) > 0 {
		return candidates
	}

	return lo.Filter(catalog.keys, func(key string, _ int) bool {
		course := catalog.courses[key]
		return course.Code == group || (group != "" && strings.Contains(course.Name, group))
	})
}
