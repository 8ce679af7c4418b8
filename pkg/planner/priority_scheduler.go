package planner

import (
	"context"

	"github.com/limaJavier/courseplanner/pkg/model"
	"go.uber.org/zap"
)

const (
	GreedyMethod = "priority greedy"
	SkipMethod   = "skip %d lower priority"
)

type ScheduleResult struct {
	Courses           []string // Selected keys in priority order
	Method            string
	Score             int
	PriorityPreserved bool     // Every left out course conflicts with a selected course of higher priority
	Skipped           []string // Keys of the order left out of the selection
	Days              int
	GapMinutes        int
}

type PriorityScheduler interface {
	// Builds the greedy schedule of an ordered key list, where the first key has the highest priority, plus the
	// alternatives obtained by setting aside up to MaxSkip conflicting lower priority courses before a second
	// first-fit pass. Alternatives repeating an earlier course set are dropped. Results are ordered by descending score
	Schedule(ctx context.Context, order []string) ([]ScheduleResult, error)
}

func NewPriorityScheduler(catalog *model.Catalog, options Options, logger *zap.Logger) PriorityScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &prioritySchedulerImplementation{
		catalog: catalog,
		options: options,
		logger:  logger,
	}
}
