package occupancy

import (
	"fmt"
	"maps"
	"slices"

	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/samber/lo"
)

// Cell addresses a row of a day column in the weekly grid
type Cell struct {
	Day model.Day
	Row int
}

// Entry is an origin cell together with its occupancy and the number of rows it spans
type Entry struct {
	Cell      Cell
	Occupancy Occupancy
	Span      int
}

func (entry Entry) End() int {
	return entry.Cell.Row + entry.Span
}

// Store keeps the occupancy of every grid cell. Only origin cells are recorded, every row inside an origin's span
// resolves to the origin's occupancy. Rows outside any span are empty
type Store struct {
	rows    int
	origins map[Cell]Entry
	version uint64
}

func NewStore(grid model.Grid) *Store {
	return &Store{
		rows:    grid.Slots(),
		origins: make(map[Cell]Entry),
	}
}

func (store *Store) Rows() int {
	return store.rows
}

// Monotonic counter incremented by every mutation
func (store *Store) Version() uint64 {
	return store.version
}

// Returns the occupancy covering a cell
func (store *Store) Get(day model.Day, row int) Occupancy {
	entry, ok := store.covering(day, row)
	if !ok {
		return Empty()
	}
	return entry.Occupancy
}

// Returns the entry whose span covers the cell. Spans of a day never intersect, so the nearest origin at or above
// the row decides
func (store *Store) covering(day model.Day, row int) (Entry, bool) {
	for r := row; r >= 0; r-- {
		if entry, ok := store.origins[Cell{Day: day, Row: r}]; ok {
			if entry.End() > row {
				return entry, true
			}
			return Entry{}, false
		}
	}
	return Entry{}, false
}

// Writes an occupancy at an origin cell spanning the given number of rows. Spans intersecting the target rectangle
// are collapsed to a single row and origins inside it are dropped, so no row resolves to two occupancies. Writing
// an Empty occupancy clears the rectangle
func (store *Store) Set(cell Cell, occupancy Occupancy, span int) error {
	if !cell.Day.Valid() {
		return fmt.Errorf("invalid day %d", cell.Day)
	} else if span < 1 || cell.Row < 0 || cell.Row+span > store.rows {
		return fmt.Errorf("rows [%d, %d) are outside of the grid", cell.Row, cell.Row+span)
	} else if err := occupancy.validate(); err != nil {
		return err
	}

	for _, entry := range store.Intersecting(cell.Day, cell.Row, cell.Row+span) {
		if entry.Cell.Row >= cell.Row {
			delete(store.origins, entry.Cell) // Swallowed by the new rectangle
		} else {
			entry.Span = 1
			store.origins[entry.Cell] = entry
		}
	}

	if occupancy.State != StateEmpty {
		store.origins[cell] = Entry{Cell: cell, Occupancy: occupancy, Span: span}
	}
	store.version++
	return nil
}

// Empties the whole span covering a cell. Reports whether anything was removed
func (store *Store) Clear(cell Cell) bool {
	entry, ok := store.covering(cell.Day, cell.Row)
	if !ok {
		return false
	}
	delete(store.origins, entry.Cell)
	store.version++
	return true
}

// Returns the entries of a day intersecting the rows [start, end), ordered by row
func (store *Store) Intersecting(day model.Day, start, end int) []Entry {
	entries := make([]Entry, 0)
	if first, ok := store.covering(day, start); ok {
		entries = append(entries, first)
	}
	for row := start + 1; row < end; row++ {
		if entry, ok := store.origins[Cell{Day: day, Row: row}]; ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Returns the origin cells holding a course, ordered by day and row
func (store *Store) Cells(key string) []Cell {
	return lo.FilterMap(store.Snapshot(), func(entry Entry, _ int) (Cell, bool) {
		return entry.Cell, entry.Occupancy.Contains(key)
	})
}

// Returns a copy of every non-empty entry ordered by day and row
func (store *Store) Snapshot() []Entry {
	entries := slices.Collect(maps.Values(store.origins))
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Cell.Day != b.Cell.Day {
			return int(a.Cell.Day) - int(b.Cell.Day)
		}
		return a.Cell.Row - b.Cell.Row
	})
	return entries
}

// Returns the distinct keys of the placed courses, sorted
func (store *Store) PlacedKeys() []string {
	keys := lo.Uniq(lo.FlatMap(store.Snapshot(), func(entry Entry, _ int) []string {
		return entry.Occupancy.Keys()
	}))
	slices.Sort(keys)
	return keys
}

func (store *Store) Clone() *Store {
	return &Store{
		rows:    store.rows,
		origins: maps.Clone(store.origins),
		version: store.version,
	}
}

// Replaces the content of the store by another one's as a single mutation
func (store *Store) swap(other *Store) {
	store.origins = other.origins
	store.version++
}

// Checks every occupancy invariant: valid variants, spans inside the grid, origins matching the sessions they hold
// and no two spans of a day intersecting
func (store *Store) Validate() error {
	previous := make(map[model.Day]Entry)
	for _, entry := range store.Snapshot() {
		if entry.Occupancy.State == StateEmpty {
			return fmt.Errorf("empty occupancy recorded at %+v", entry.Cell)
		} else if err := entry.Occupancy.validate(); err != nil {
			return fmt.Errorf("invalid occupancy at %+v: %v", entry.Cell, err)
		} else if entry.Span < 1 || entry.Cell.Row < 0 || entry.End() > store.rows {
			return fmt.Errorf("span of %+v is outside of the grid", entry.Cell)
		}

		for _, placement := range entry.Occupancy.Placements() {
			session := placement.Session
			if session.Day != entry.Cell.Day || session.Start != entry.Cell.Row || entry.Span > session.Span() {
				return fmt.Errorf("origin %+v does not match the session of \"%v\"", entry.Cell, placement.CourseKey)
			}
		}

		if last, ok := previous[entry.Cell.Day]; ok && last.End() > entry.Cell.Row {
			return fmt.Errorf("spans at %+v and %+v intersect", last.Cell, entry.Cell)
		}
		previous[entry.Cell.Day] = entry
	}
	return nil
}
