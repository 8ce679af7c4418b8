package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/limaJavier/courseplanner/pkg/occupancy"
	"github.com/limaJavier/courseplanner/pkg/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ", ","))
	assert.Empty(t, splitList("", ","))
}

func TestWriteRows(t *testing.T) {
	t.Run("Combinations as csv", func(t *testing.T) {
		//** Arrange
		out := filepath.Join(t.TempDir(), "combinations.csv")
		rows := combinationRows([]planner.Combination{
			{Courses: []string{"a", "b"}, Days: 2, GapMinutes: 30, Score: 2.25},
			{Courses: []string{"c"}, Days: 3},
		})

		//** Act
		err := writeRows(rows, "csv", out)

		//** Assert
		require.NoError(t, err)
		file, err := os.Open(out)
		require.NoError(t, err)
		defer file.Close()

		parsed := make([]*CombinationRow, 0)
		require.NoError(t, gocsv.UnmarshalFile(file, &parsed))
		require.Len(t, parsed, 2)
		assert.Equal(t, 1, parsed[0].Rank)
		assert.Equal(t, "a b", parsed[0].Courses)
		assert.Equal(t, 2.25, parsed[0].Score)
		assert.Equal(t, 2, parsed[1].Rank)
	})

	t.Run("Cells", func(t *testing.T) {
		store := occupancy.NewStore(model.PlacementGrid)
		resolver := occupancy.NewResolver(store, nil)
		_, err := resolver.Place(model.Course{Key: "a", Sessions: []model.Session{{Day: model.Monday, Start: 2, End: 6, Parity: model.ParityOdd}}}, nil)
		require.NoError(t, err)

		rows := cellRows(store.Snapshot(), model.PlacementGrid)

		require.Len(t, rows, 1)
		assert.Equal(t, CellRow{Day: "monday", Start: "08:00", End: "10:00", State: "single", Courses: "a", Parity: "odd"}, *rows[0])
	})

	t.Run("Unknown format", func(t *testing.T) {
		assert.Error(t, writeRows(scheduleRows(nil), "xml", ""))
	})
}
