package model

import (
	"fmt"
	"strconv"
	"strings"
)

const SlotMinutes = 30

// Grid is a weekly time axis discretized in half-hour slots. Labels are the slot boundaries, so a grid holding n
// slots exposes n+1 labels and a session spans the rows [Index(start), Index(end))
type Grid struct {
	start int // Minutes since midnight of the first boundary
	end   int // Minutes since midnight of the last boundary
}

var (
	DisplayGrid   = Grid{start: 7*60 + 30, end: 18 * 60}
	PlacementGrid = Grid{start: 7 * 60, end: 19 * 60}
)

func NewGrid(start, end string) (Grid, error) {
	startMinutes, err := ParseClock(start)
	if err != nil {
		return Grid{}, err
	}
	endMinutes, err := ParseClock(end)
	if err != nil {
		return Grid{}, err
	}

	if startMinutes%SlotMinutes != 0 || endMinutes%SlotMinutes != 0 {
		return Grid{}, fmt.Errorf("grid boundaries must be aligned to %d minutes: %v-%v", SlotMinutes, start, end)
	} else if startMinutes >= endMinutes {
		return Grid{}, fmt.Errorf("grid start must precede grid end: %v-%v", start, end)
	}

	return Grid{start: startMinutes, end: endMinutes}, nil
}

// Returns the number of half-hour slots (rows) in the grid
func (grid Grid) Slots() int {
	return (grid.end - grid.start) / SlotMinutes
}

// Returns the boundary index of an "HH:MM" string, where 0 is the first boundary and Slots() the last one
func (grid Grid) Index(clock string) (int, error) {
	minutes, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}

	if minutes < grid.start || minutes > grid.end {
		return 0, InvalidTimeSlotError{Value: clock, Reason: fmt.Sprintf("outside of %v-%v", grid.Clock(0), grid.Clock(grid.Slots()))}
	} else if (minutes-grid.start)%SlotMinutes != 0 {
		return 0, InvalidTimeSlotError{Value: clock, Reason: fmt.Sprintf("not aligned to %d minutes", SlotMinutes)}
	}

	return (minutes - grid.start) / SlotMinutes, nil
}

// Returns the "HH:MM" label of a boundary index
func (grid Grid) Clock(index int) string {
	minutes := grid.Minutes(index)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Returns the minutes since midnight of a boundary index
func (grid Grid) Minutes(index int) int {
	return grid.start + index*SlotMinutes
}

func (grid Grid) Labels() []string {
	labels := make([]string, 0, grid.Slots()+1)
	for index := range grid.Slots() + 1 {
		labels = append(labels, grid.Clock(index))
	}
	return labels
}

// Converts an "HH:MM" string into minutes since midnight
func ParseClock(clock string) (int, error) {
	hours, minutes, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok || len(minutes) != 2 || len(hours) == 0 || len(hours) > 2 {
		return 0, InvalidTimeSlotError{Value: clock, Reason: "expected HH:MM"}
	}

	h, err := strconv.Atoi(hours)
	if err != nil || h < 0 || h > 23 {
		return 0, InvalidTimeSlotError{Value: clock, Reason: "invalid hour"}
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 || m > 59 {
		return 0, InvalidTimeSlotError{Value: clock, Reason: "invalid minute"}
	}

	return h*60 + m, nil
}
