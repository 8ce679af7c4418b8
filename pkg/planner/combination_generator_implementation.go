package planner

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var errSearchTruncated = errors.New("combination limit reached")

type combinationGeneratorImplementation struct {
	catalog *model.Catalog
	options Options
	logger  *zap.Logger
}

func (generator *combinationGeneratorImplementation) BestCombinationsForCodes(ctx context.Context, codes []string) ([]Combination, error) {
	groups := lo.Map(codes, func(code string, _ int) []string {
		return generator.catalog.Candidates(code)
	})
	return generator.BestCombinations(ctx, groups)
}

func (generator *combinationGeneratorImplementation) BestCombinations(ctx context.Context, groups [][]string) ([]Combination, error) {
	combinations := make([]Combination, 0)
	if len(groups) == 0 {
		return combinations, nil
	}

	//** Resolve candidates
	candidates := make([][]model.Course, 0, len(groups))
	for i, group := range groups {
		unknown := lo.Reject(group, func(key string, _ int) bool { return generator.catalog.Contains(key) })
		if len(unknown) > 0 {
			generator.logger.Warn("ignoring unknown course keys", zap.Int("group", i), zap.Strings("keys", unknown))
		}

		courses := generator.catalog.Courses(lo.Uniq(group))
		if len(courses) == 0 {
			generator.logger.Warn("no combinations available", zap.Error(EmptyGroupError{Index: i, Group: group}))
			return combinations, nil
		}
		candidates = append(candidates, courses)
	}

	//** Enumerate
	search := combinationSearch{
		ctx:                 ctx,
		groups:              candidates,
		picks:               make([]model.Course, 0, len(candidates)),
		gapThresholdMinutes: generator.options.GapThresholdMinutes,
		limit:               generator.options.MaxCombinations,
		combinations:        &combinations,
	}
	if err := search.backtrack(0); errors.Is(err, errSearchTruncated) {
		generator.logger.Warn("combination search truncated", zap.Int("limit", search.limit))
	} else if err != nil {
		return nil, err
	}

	//** Rank
	slices.SortStableFunc(combinations, func(a, b Combination) int {
		return cmp.Or(
			cmp.Compare(a.Days, b.Days),
			cmp.Compare(a.GapMinutes, b.GapMinutes),
			cmp.Compare(a.Score, b.Score),
		)
	})

	generator.logger.Debug("combination search finished", zap.Int("groups", len(groups)), zap.Int("combinations", len(combinations)))
	return combinations, nil
}

type combinationSearch struct {
	ctx                 context.Context
	groups              [][]model.Course
	picks               []model.Course
	gapThresholdMinutes int
	limit               int
	combinations        *[]Combination
}

// Depth-first enumeration of the cartesian product. A partial pick is abandoned as soon as its newest course
// conflicts with an earlier one, which yields the same set as filtering the full product
func (search *combinationSearch) backtrack(depth int) error {
	if err := search.ctx.Err(); err != nil {
		return err
	}

	if depth >= len(search.groups) {
		measured := measure(search.picks, search.gapThresholdMinutes)
		*search.combinations = append(*search.combinations, Combination{
			Courses:    lo.Map(search.picks, func(course model.Course, _ int) string { return course.Key }),
			Days:       measured.days,
			GapMinutes: measured.gapMinutes,
			Score:      measured.score,
		})
		if search.limit > 0 && len(*search.combinations) >= search.limit {
			return errSearchTruncated
		}
		return nil
	}

	for _, course := range search.groups[depth] {
		if lo.SomeBy(search.picks, func(pick model.Course) bool {
			return pick.Key == course.Key || model.CoursesConflict(pick, course)
		}) {
			continue
		}

		search.picks = append(search.picks, course)
		err := search.backtrack(depth + 1)
		search.picks = search.picks[:len(search.picks)-1]
		if err != nil {
			return err
		}
	}

	return nil
}
