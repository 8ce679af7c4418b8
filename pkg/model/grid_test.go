package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridIndexAndClock(t *testing.T) {
	t.Run("Placement grid", func(t *testing.T) {
		//** Arrange
		grid := PlacementGrid

		//** Assert
		assert.Equal(t, 24, grid.Slots())
		assert.Len(t, grid.Labels(), 25)
		assert.Equal(t, "07:00", grid.Clock(0))
		assert.Equal(t, "19:00", grid.Clock(grid.Slots()))

		for index := range grid.Slots() + 1 {
			actual, err := grid.Index(grid.Clock(index))
			require.NoError(t, err)
			assert.Equal(t, index, actual)
		}
	})

	t.Run("Display grid", func(t *testing.T) {
		grid := DisplayGrid

		assert.Equal(t, 21, grid.Slots())
		assert.Equal(t, "07:30", grid.Labels()[0])
		assert.Equal(t, "18:00", grid.Labels()[len(grid.Labels())-1])

		_, err := grid.Index("07:00")
		assert.Error(t, err)
	})

	t.Run("Invalid time strings", func(t *testing.T) {
		for _, clock := range []string{"08:15", "06:30", "19:30", "8", "ab:cd", "25:00", "08:60", ""} {
			_, err := PlacementGrid.Index(clock)

			var slotErr InvalidTimeSlotError
			assert.True(t, errors.As(err, &slotErr), "expected an invalid time slot error for %q", clock)
		}
	})

	t.Run("Single digit hours", func(t *testing.T) {
		index, err := PlacementGrid.Index("8:30")

		require.NoError(t, err)
		assert.Equal(t, 3, index)
	})
}

func TestNewGrid(t *testing.T) {
	grid, err := NewGrid("08:00", "12:00")
	require.NoError(t, err)
	assert.Equal(t, 8, grid.Slots())
	assert.Equal(t, 8*60+30, grid.Minutes(1))

	_, err = NewGrid("08:10", "12:00")
	assert.Error(t, err)

	_, err = NewGrid("12:00", "08:00")
	assert.Error(t, err)
}

func TestParseDay(t *testing.T) {
	cases := map[string]Day{
		"saturday":                 Saturday,
		"Monday":                   Monday,
		" friday ":                 Friday,
		"\u0634\u0646\u0628\u0647":                     Saturday,
		"\u06cc\u06a9\u0634\u0646\u0628\u0647":         Sunday,
		"\u064a\u0643\u0634\u0646\u0628\u0647":         Sunday, // Arabic letter variants
		"\u0633\u0647\u200c\u0634\u0646\u0628\u0647":   Tuesday,
		"\u0633\u0647 \u0634\u0646\u0628\u0647":       Tuesday,
		"\u067e\u0646\u062c\u200c\u0634\u0646\u0628\u0647": Thursday,
		"\u062c\u0645\u0639\u0647":                     Friday,
	}

	for name, expected := range cases {
		day, err := ParseDay(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, day, name)
	}

	_, err := ParseDay("someday")
	var fieldErr InvalidFieldError
	assert.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "day", fieldErr.Field)

	assert.Len(t, AllDays(), Days)
	assert.Equal(t, "invalid", Day(9).String())
}

func TestParity(t *testing.T) {
	t.Run("Parsing", func(t *testing.T) {
		cases := map[string]Parity{
			"":            ParityNone,
			OddMarker:     ParityOdd,
			"odd":         ParityOdd,
			"first-half":  ParityFirstHalf,
			EvenMarker:    ParityEven,
			"EVEN":        ParityEven,
			"second-half": ParitySecondHalf,
		}
		for marker, expected := range cases {
			parity, err := ParseParity(marker)
			require.NoError(t, err, marker)
			assert.Equal(t, expected, parity, marker)
		}

		_, err := ParseParity("x")
		assert.Error(t, err)
	})

	t.Run("Complements", func(t *testing.T) {
		all := []Parity{ParityNone, ParityOdd, ParityFirstHalf, ParityEven, ParitySecondHalf}
		oddClass := []Parity{ParityOdd, ParityFirstHalf}
		evenClass := []Parity{ParityEven, ParitySecondHalf}

		for _, parity := range all {
			assert.False(t, ParityNone.Complements(parity))
			assert.False(t, parity.Complements(ParityNone))
		}
		for _, odd := range oddClass {
			for _, even := range evenClass {
				assert.True(t, odd.Complements(even))
				assert.True(t, even.Complements(odd))
			}
			for _, other := range oddClass {
				assert.False(t, odd.Complements(other))
			}
		}
		for _, even := range evenClass {
			for _, other := range evenClass {
				assert.False(t, even.Complements(other))
			}
		}
	})
}
