package planner

import (
	"context"
	"errors"
	"sync"

	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/limaJavier/courseplanner/pkg/occupancy"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type SearchRequest struct {
	Groups   [][]string // Candidate keys per group
	Codes    []string   // Course codes resolved to groups, used when Groups is empty
	Priority []string   // Ordered keys for the priority scheduler
}

type SearchResult struct {
	Combinations []Combination
	Schedules    []ScheduleResult
}

// Session owns a catalog snapshot and the occupancy store built from it. Store mutations are serialized and a new
// search cancels the one still running
type Session struct {
	catalog   *model.Catalog
	resolver  occupancy.Resolver
	generator CombinationGenerator
	scheduler PriorityScheduler
	logger    *zap.Logger

	mutex sync.Mutex

	searchMutex  sync.Mutex
	cancelSearch context.CancelFunc
	searchID     uint64
}

func NewSession(catalog *model.Catalog, options Options, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		catalog:   catalog,
		resolver:  occupancy.NewResolver(occupancy.NewStore(catalog.Grid()), logger),
		generator: NewCombinationGenerator(catalog, options, logger),
		scheduler: NewPriorityScheduler(catalog, options, logger),
		logger:    logger,
	}
}

func (session *Session) Catalog() *model.Catalog {
	return session.catalog
}

// Evaluates the placement of a course and commits it when no eviction is needed. Outcomes requiring an eviction
// are returned together with an EvictionRequiredError so the caller can confirm them
func (session *Session) Add(key string, order []string) (occupancy.PlaceOutcome, error) {
	course, ok := session.catalog.Get(key)
	if !ok {
		err := model.UnknownCourseKeyError{Key: key}
		session.logger.Warn("ignoring placement", zap.Error(err))
		return occupancy.PlaceOutcome{}, err
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()
	return session.resolver.Place(course, occupancy.NewPriorityLookup(order))
}

// Commits an outcome previously returned by Add, evicting its conflicts when evict is set
func (session *Session) Confirm(outcome occupancy.PlaceOutcome, evict bool) error {
	session.mutex.Lock()
	defer session.mutex.Unlock()
	return session.resolver.Commit(outcome, evict)
}

func (session *Session) Remove(key string) (int, error) {
	if !session.catalog.Contains(key) {
		err := model.UnknownCourseKeyError{Key: key}
		session.logger.Warn("ignoring removal", zap.Error(err))
		return 0, err
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()
	return session.resolver.Remove(key), nil
}

// Clears the store and places the given keys in order, as done when loading a chosen combination. Keys that cannot
// be placed are reported in the returned error while the rest stay placed
func (session *Session) Apply(keys []string, order []string, evict bool) error {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	session.resolver.Reset()
	lookup := occupancy.NewPriorityLookup(order)

	var errs []error
	for _, key := range keys {
		course, ok := session.catalog.Get(key)
		if !ok {
			err := model.UnknownCourseKeyError{Key: key}
			session.logger.Warn("ignoring placement", zap.Error(err))
			errs = append(errs, err)
			continue
		}

		outcome := session.resolver.Evaluate(course, lookup)
		if err := session.resolver.Commit(outcome, evict); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (session *Session) PlacedKeys() []string {
	session.mutex.Lock()
	defer session.mutex.Unlock()
	return session.resolver.Store().PlacedKeys()
}

func (session *Session) Snapshot() []occupancy.Entry {
	session.mutex.Lock()
	defer session.mutex.Unlock()
	return session.resolver.Store().Snapshot()
}

// Runs the combination generator and the priority scheduler concurrently. Starting a search cancels the previous
// one if it is still running
func (session *Session) Search(ctx context.Context, request SearchRequest) (SearchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session.searchMutex.Lock()
	if session.cancelSearch != nil {
		session.cancelSearch()
	}
	session.searchID++
	id := session.searchID
	session.cancelSearch = cancel
	session.searchMutex.Unlock()

	defer func() {
		session.searchMutex.Lock()
		if session.searchID == id {
			session.cancelSearch = nil
		}
		session.searchMutex.Unlock()
	}()

	result := SearchResult{
		Combinations: make([]Combination, 0),
		Schedules:    make([]ScheduleResult, 0),
	}
	group, groupCtx := errgroup.WithContext(ctx)

	if len(request.Groups) > 0 || len(request.Codes) > 0 {
		group.Go(func() error {
			var combinations []Combination
			var err error
			if len(request.Groups) > 0 {
				combinations, err = session.generator.BestCombinations(groupCtx, request.Groups)
			} else {
				combinations, err = session.generator.BestCombinationsForCodes(groupCtx, request.Codes)
			}
			result.Combinations = combinations
			return err
		})
	}

	if len(request.Priority) > 0 {
		group.Go(func() error {
			schedules, err := session.scheduler.Schedule(groupCtx, request.Priority)
			result.Schedules = schedules
			return err
		})
	}

	if err := group.Wait(); err != nil {
		session.logger.Debug("search aborted", zap.Error(err))
		return SearchResult{}, err
	}
	return result, nil
}
