package occupancy

import (
	"fmt"

	"github.com/limaJavier/courseplanner/pkg/model"
)

type State int

const (
	StateEmpty State = iota
	StateSingle
	StateDual
)

func (state State) String() string {
	switch state {
	case StateEmpty:
		return "empty"
	case StateSingle:
		return "single"
	case StateDual:
		return "dual"
	}
	return "invalid"
}

// Placement is a session of a course written into the grid
type Placement struct {
	CourseKey string
	Session   model.Session
}

// Occupancy is the tagged content of a grid cell. Only the fields of the current State are meaningful:
// Single for StateSingle, Odd and Even for StateDual
type Occupancy struct {
	State  State
	Single Placement
	Odd    Placement
	Even   Placement
}

func Empty() Occupancy {
	return Occupancy{State: StateEmpty}
}

func Single(placement Placement) Occupancy {
	return Occupancy{State: StateSingle, Single: placement}
}

// Builds a dual occupancy out of two placements in any order. Both sessions must cover the same rows with
// complementary parities and belong to different courses
func Dual(a, b Placement) (Occupancy, error) {
	if a.CourseKey == b.CourseKey {
		return Occupancy{}, fmt.Errorf("a dual cell must hold two different courses: %v", a.CourseKey)
	} else if !a.Session.SameTime(b.Session) {
		return Occupancy{}, fmt.Errorf("dual sessions of \"%v\" and \"%v\" must share day and time", a.CourseKey, b.CourseKey)
	} else if !a.Session.Parity.Complements(b.Session.Parity) {
		return Occupancy{}, fmt.Errorf("dual sessions of \"%v\" and \"%v\" must have complementary parities", a.CourseKey, b.CourseKey)
	}

	if a.Session.Parity.Week() == model.ParityEven {
		a, b = b, a
	}
	return Occupancy{State: StateDual, Odd: a, Even: b}, nil
}

// Returns the course keys held by the cell
func (occupancy Occupancy) Keys() []string {
	switch occupancy.State {
	case StateSingle:
		return []string{occupancy.Single.CourseKey}
	case StateDual:
		return []string{occupancy.Odd.CourseKey, occupancy.Even.CourseKey}
	}
	return nil
}

func (occupancy Occupancy) Placements() []Placement {
	switch occupancy.State {
	case StateSingle:
		return []Placement{occupancy.Single}
	case StateDual:
		return []Placement{occupancy.Odd, occupancy.Even}
	}
	return nil
}

func (occupancy Occupancy) Contains(key string) bool {
	for _, occupant := range occupancy.Keys() {
		if occupant == key {
			return true
		}
	}
	return false
}

// Returns the occupancy left after removing a course: Single becomes Empty and Dual becomes Single holding the
// other course. Occupancies that do not contain the key are returned unchanged
func (occupancy Occupancy) Without(key string) Occupancy {
	switch occupancy.State {
	case StateSingle:
		if occupancy.Single.CourseKey == key {
			return Empty()
		}
	case StateDual:
		if occupancy.Odd.CourseKey == key {
			return Single(occupancy.Even)
		} else if occupancy.Even.CourseKey == key {
			return Single(occupancy.Odd)
		}
	}
	return occupancy
}

// Row span derived from the occupying sessions
func (occupancy Occupancy) Span() int {
	switch occupancy.State {
	case StateSingle:
		return occupancy.Single.Session.Span()
	case StateDual:
		return occupancy.Odd.Session.Span()
	}
	return 1
}

func (occupancy Occupancy) validate() error {
	switch occupancy.State {
	case StateEmpty:
		return nil
	case StateSingle:
		if occupancy.Single.CourseKey == "" {
			return fmt.Errorf("single cell without a course")
		}
		return nil
	case StateDual:
		_, err := Dual(occupancy.Odd, occupancy.Even)
		if err == nil && occupancy.Odd.Session.Parity.Week() != model.ParityOdd {
			err = fmt.Errorf("odd slot of dual cell holds a %v session", occupancy.Odd.Session.Parity)
		}
		return err
	}
	return fmt.Errorf("unknown state %d", occupancy.State)
}
