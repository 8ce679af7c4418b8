package planner

import (
	"context"

	"github.com/limaJavier/courseplanner/pkg/model"
	"go.uber.org/zap"
)

// Combination is a conflict-free pick of one course per requested group
type Combination struct {
	Courses    []string // One key per group, in group order
	Days       int
	GapMinutes int
	Score      float64
}

type CombinationGenerator interface {
	// Enumerates every conflict-free pick of one candidate per group, ordered by fewer days, then fewer idle
	// minutes, then lower score.
	//
	// Example:
	//
	//	generator := planner.NewCombinationGenerator(catalog, planner.DefaultOptions(), logger)
	//	combinations, err := generator.BestCombinations(ctx, [][]string{{"math_1", "math_2"}, {"physics_1"}})
	BestCombinations(ctx context.Context, groups [][]string) ([]Combination, error)

	// Resolves every course code to the keys of its sections and enumerates the combinations of the resulting groups
	BestCombinationsForCodes(ctx context.Context, codes []string) ([]Combination, error)
}

func NewCombinationGenerator(catalog *model.Catalog, options Options, logger *zap.Logger) CombinationGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &combinationGeneratorImplementation{
		catalog: catalog,
		options: options,
		logger:  logger,
	}
}
