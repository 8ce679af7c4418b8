package planner

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type prioritySchedulerImplementation struct {
	catalog *model.Catalog
	options Options
	logger  *zap.Logger
}

// selection is the outcome of a first-fit pass: the chosen courses and the ones that conflicted with them
type selection struct {
	selected []model.Course
	rejected []model.Course
}

func (scheduler *prioritySchedulerImplementation) Schedule(ctx context.Context, order []string) ([]ScheduleResult, error) {
	//** Normalize order
	unknown := lo.Reject(order, func(key string, _ int) bool { return scheduler.catalog.Contains(key) })
	if len(unknown) > 0 {
		scheduler.logger.Warn("ignoring unknown course keys", zap.Strings("keys", unknown))
	}
	courses := scheduler.catalog.Courses(lo.Uniq(order))
	rank := make(map[string]int, len(courses))
	for i, course := range courses {
		rank[course.Key] = i
	}

	results := make([]ScheduleResult, 0)
	produced := make(map[string]bool)

	//** Greedy pass
	greedy := firstFit(courses, nil)
	if len(greedy.selected) > 0 {
		results = append(results, scheduler.result(courses, greedy.selected, GreedyMethod, len(greedy.selected)*100))
		produced[setKey(greedy.selected)] = true
	}

	//** Skip alternatives
	maxSkip := min(scheduler.options.MaxSkip, len(courses)-1)
	for k := 1; k <= maxSkip; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		firstPass, complete := skipConflicts(courses, k)
		if !complete {
			break
		}
		secondPass := firstFit(lo.Reject(courses, func(course model.Course, _ int) bool {
			return lo.ContainsBy(firstPass.selected, func(selected model.Course) bool { return selected.Key == course.Key })
		}), firstPass.selected)

		selected := secondPass.selected
		slices.SortFunc(selected, func(a, b model.Course) int { return cmp.Compare(rank[a.Key], rank[b.Key]) })
		if len(selected) == 0 || produced[setKey(selected)] {
			continue
		}
		produced[setKey(selected)] = true
		results = append(results, scheduler.result(courses, selected, fmt.Sprintf(SkipMethod, k), len(selected)*100-k*10))
	}

	slices.SortStableFunc(results, func(a, b ScheduleResult) int { return cmp.Compare(b.Score, a.Score) })

	scheduler.logger.Debug("priority scheduling finished", zap.Int("courses", len(courses)), zap.Int("results", len(results)))
	return results, nil
}

func (scheduler *prioritySchedulerImplementation) result(courses, selected []model.Course, method string, score int) ScheduleResult {
	measured := measure(selected, scheduler.options.GapThresholdMinutes)
	skipped := lo.Reject(courses, func(course model.Course, _ int) bool {
		return lo.ContainsBy(selected, func(other model.Course) bool { return other.Key == course.Key })
	})

	return ScheduleResult{
		Courses:           keys(selected),
		Method:            method,
		Score:             score,
		PriorityPreserved: priorityPreserved(courses, selected),
		Skipped:           keys(skipped),
		Days:              measured.days,
		GapMinutes:        measured.gapMinutes,
	}
}

// First-fit pass in order: a course joins the selection when it conflicts with none of the courses selected so far
func firstFit(courses, initial []model.Course) selection {
	result := selection{
		selected: slices.Clone(initial),
		rejected: make([]model.Course, 0),
	}

	for _, course := range courses {
		if conflictsWithAny(course, result.selected) {
			result.rejected = append(result.rejected, course)
			continue
		}
		result.selected = append(result.selected, course)
	}

	return result
}

// First-fit pass in order that stops once k courses have been set aside for conflicting with the selection. Selected
// courses are never dropped, so only lower priority courses are skipped. Reports false when fewer than k courses
// conflict
func skipConflicts(courses []model.Course, k int) (selection, bool) {
	result := selection{
		selected: make([]model.Course, 0, len(courses)),
		rejected: make([]model.Course, 0, k),
	}

	for _, course := range courses {
		if len(result.rejected) == k {
			break
		}
		if conflictsWithAny(course, result.selected) {
			result.rejected = append(result.rejected, course)
			continue
		}
		result.selected = append(result.selected, course)
	}

	return result, len(result.rejected) == k
}

func conflictsWithAny(course model.Course, selected []model.Course) bool {
	return lo.SomeBy(selected, func(other model.Course) bool { return model.CoursesConflict(other, course) })
}

// Checks whether every course left out conflicts with a selected course that precedes it in the order
func priorityPreserved(courses, selected []model.Course) bool {
	position := make(map[string]int, len(courses))
	for i, course := range courses {
		position[course.Key] = i
	}

	for _, course := range courses {
		if lo.ContainsBy(selected, func(other model.Course) bool { return other.Key == course.Key }) {
			continue
		}
		blocked := lo.SomeBy(selected, func(other model.Course) bool {
			return position[other.Key] < position[course.Key] && model.CoursesConflict(other, course)
		})
		if !blocked {
			return false
		}
	}
	return true
}

func keys(courses []model.Course) []string {
	return lo.Map(courses, func(course model.Course, _ int) string { return course.Key })
}

func setKey(courses []model.Course) string {
	sorted := keys(courses)
	slices.Sort(sorted)
	return strings.Join(sorted, "\x00")
}
