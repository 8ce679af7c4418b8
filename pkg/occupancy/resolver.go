package occupancy

import (
	"fmt"

	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Resolver classifies and applies course placements against an occupancy store in two phases: Evaluate never
// mutates the store and Commit applies an evaluated outcome once the caller has decided about evictions
type Resolver interface {
	Evaluate(course model.Course, lookup PriorityLookup) PlaceOutcome
	Commit(outcome PlaceOutcome, evict bool) error
	// Evaluates and commits without evicting anything
	Place(course model.Course, lookup PriorityLookup) (PlaceOutcome, error)
	// Removes every session of a course and returns the number of cells touched
	Remove(key string) int
	Reset()
	Store() *Store
}

type resolverImplementation struct {
	store  *Store
	logger *zap.Logger
}

func NewResolver(store *Store, logger *zap.Logger) Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &resolverImplementation{
		store:  store,
		logger: logger,
	}
}

func (resolver *resolverImplementation) Store() *Store {
	return resolver.store
}

func (resolver *resolverImplementation) Evaluate(course model.Course, lookup PriorityLookup) PlaceOutcome {
	outcome := evaluate(resolver.store, course, lookup, resolver.logger)
	resolver.logger.Debug("placement evaluated",
		zap.String("key", course.Key),
		zap.Stringer("kind", outcome.Kind),
		zap.Strings("conflicting", outcome.ConflictingKeys()),
	)
	return outcome
}

func (resolver *resolverImplementation) Commit(outcome PlaceOutcome, evict bool) error {
	if outcome.version != resolver.store.Version() {
		return StaleOutcomeError{CourseKey: outcome.CourseKey, Evaluated: outcome.version, Current: resolver.store.Version()}
	}

	switch outcome.Kind {
	case AlreadyPlaced:
		return nil
	case Unplaceable:
		return UnplaceableCourseError{CourseKey: outcome.CourseKey}
	case RejectedHigherPriority:
		return HigherPriorityConflictError{CourseKey: outcome.CourseKey, Blocking: outcome.Blocking}
	case NeedsEviction:
		if !evict {
			return EvictionRequiredError{CourseKey: outcome.CourseKey, Conflicting: outcome.ConflictingKeys()}
		}
	}

	// Work on a copy so that a failure leaves the store untouched
	staged := resolver.store.Clone()
	evicted := outcome.ConflictingKeys()
	for _, key := range evicted {
		remove(staged, key)
	}

	if len(evicted) > 0 {
		outcome = evaluate(staged, outcome.course, outcome.lookup, resolver.logger)
		if outcome.Kind != Placeable && outcome.Kind != AlreadyPlaced {
			return fmt.Errorf("course \"%v\" is still %v after evicting %v", outcome.CourseKey, outcome.Kind, evicted)
		}
	}

	if err := apply(staged, outcome); err != nil {
		return fmt.Errorf("cannot place course \"%v\": %v", outcome.CourseKey, err)
	}
	resolver.store.swap(staged)

	resolver.logger.Debug("placement committed",
		zap.String("key", outcome.CourseKey),
		zap.Int("placements", len(outcome.Placements)),
		zap.Int("merges", len(outcome.Merges)),
		zap.Strings("evicted", evicted),
	)
	return nil
}

func (resolver *resolverImplementation) Place(course model.Course, lookup PriorityLookup) (PlaceOutcome, error) {
	outcome := resolver.Evaluate(course, lookup)
	return outcome, resolver.Commit(outcome, false)
}

func (resolver *resolverImplementation) Remove(key string) int {
	touched := remove(resolver.store, key)
	if touched > 0 {
		resolver.logger.Debug("course removed", zap.String("key", key), zap.Int("cells", touched))
	}
	return touched
}

func (resolver *resolverImplementation) Reset() {
	resolver.store.swap(&Store{rows: resolver.store.rows, origins: make(map[Cell]Entry)})
}

func evaluate(store *Store, course model.Course, lookup PriorityLookup, logger *zap.Logger) PlaceOutcome {
	outcome := PlaceOutcome{
		CourseKey:  course.Key,
		Placements: make([]Placement, 0),
		Merges:     make([]Placement, 0),
		Conflicts:  make([]Conflict, 0),
		course:     course,
		lookup:     lookup,
		version:    store.Version(),
	}

	pending := make([]model.Session, 0, len(course.Sessions))
	for _, session := range course.Sessions {
		if !session.Day.Valid() || session.Start < 0 || session.End > store.Rows() || session.Start >= session.End {
			logger.Warn("skipping session outside of the grid", zap.String("key", course.Key), zap.Any("session", session))
			continue
		} else if lo.SomeBy(pending, func(other model.Session) bool { return intersects(session, other) }) {
			logger.Warn("skipping session overlapping another session of the same course", zap.String("key", course.Key), zap.Any("session", session))
			continue
		}
		pending = append(pending, session)

		placement := Placement{CourseKey: course.Key, Session: session}
		entries := store.Intersecting(session.Day, session.Start, session.End)
		if len(entries) == 0 {
			outcome.Placements = append(outcome.Placements, placement)
			continue
		}

		for _, entry := range entries {
			if entry.Occupancy.Contains(course.Key) {
				continue
			}

			identical := entry.Cell.Row == session.Start && entry.Span == session.Span()
			switch entry.Occupancy.State {
			case StateSingle:
				existing := entry.Occupancy.Single.Session
				if identical && existing.SameTime(session) && existing.Parity.Complements(session.Parity) {
					outcome.Merges = append(outcome.Merges, placement)
				} else if identical && session.Parity.Week() != model.ParityNone && existing.Parity.Week() == session.Parity.Week() {
					outcome.Conflicts = append(outcome.Conflicts, Conflict{CourseKey: entry.Occupancy.Single.CourseKey, Cell: entry.Cell, Reason: AmbiguousMerge})
				} else {
					outcome.Conflicts = append(outcome.Conflicts, Conflict{CourseKey: entry.Occupancy.Single.CourseKey, Cell: entry.Cell, Reason: Overlap})
				}
			case StateDual:
				for _, key := range entry.Occupancy.Keys() {
					outcome.Conflicts = append(outcome.Conflicts, Conflict{CourseKey: key, Cell: entry.Cell, Reason: DualFull})
				}
			}
		}
	}

	if len(pending) == 0 {
		outcome.Kind = Unplaceable
	} else if len(outcome.Conflicts) > 0 {
		rank := lookup.rank(course.Key)
		outcome.Blocking = lo.Filter(outcome.ConflictingKeys(), func(key string, _ int) bool {
			return lookup.rank(key) < rank
		})
		if len(outcome.Blocking) > 0 {
			outcome.Kind = RejectedHigherPriority
		} else {
			outcome.Kind = NeedsEviction
		}
	} else if len(outcome.Placements) == 0 && len(outcome.Merges) == 0 {
		outcome.Kind = AlreadyPlaced
	} else {
		outcome.Kind = Placeable
	}

	return outcome
}

func apply(store *Store, outcome PlaceOutcome) error {
	for _, placement := range outcome.Placements {
		session := placement.Session
		if err := store.Set(Cell{Day: session.Day, Row: session.Start}, Single(placement), session.Span()); err != nil {
			return err
		}
	}

	for _, placement := range outcome.Merges {
		session := placement.Session
		existing := store.Get(session.Day, session.Start)
		if existing.State != StateSingle {
			return fmt.Errorf("cell %v %v is %v and cannot be merged", session.Day, session.Start, existing.State)
		}
		dual, err := Dual(existing.Single, placement)
		if err != nil {
			return err
		}
		if err := store.Set(Cell{Day: session.Day, Row: session.Start}, dual, session.Span()); err != nil {
			return err
		}
	}

	return nil
}

// Demotes every cell holding the key: single cells become empty and dual cells keep the other course
func remove(store *Store, key string) int {
	cells := store.Cells(key)
	for _, cell := range cells {
		entry := store.origins[cell]
		remaining := entry.Occupancy.Without(key)
		if remaining.State == StateEmpty {
			store.Clear(cell)
		} else {
			entry.Occupancy = remaining
			store.origins[cell] = entry
			store.version++
		}
	}
	return len(cells)
}

func intersects(a, b model.Session) bool {
	return a.Day == b.Day && a.Start < b.End && b.Start < a.End
}
