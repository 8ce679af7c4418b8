package planner

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule(t *testing.T) {
	t.Run("Higher priority courses are never skipped", func(t *testing.T) {
		//** Arrange
		catalog := catalogOf(
			record("A", at("monday", "08:00", "12:00", "")),
			record("B", at("monday", "08:00", "09:00", "")),
			record("C", at("monday", "10:00", "11:00", "")),
		)
		scheduler := NewPriorityScheduler(catalog, DefaultOptions(), nil)

		//** Act
		results, err := scheduler.Schedule(context.Background(), []string{"A", "B", "C"})

		//** Assert
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, GreedyMethod, results[0].Method)
		assert.Equal(t, []string{"A"}, results[0].Courses)
		assert.Equal(t, []string{"B", "C"}, results[0].Skipped)
		assert.Equal(t, 100, results[0].Score)
		assert.True(t, results[0].PriorityPreserved)
	})

	t.Run("Greedy pass", func(t *testing.T) {
		catalog := catalogOf(
			record("A", at("monday", "08:00", "10:00", "")),
			record("B", at("monday", "09:00", "11:00", "")),
			record("C", at("tuesday", "08:00", "10:00", "")),
		)
		scheduler := NewPriorityScheduler(catalog, DefaultOptions(), nil)

		results, err := scheduler.Schedule(context.Background(), []string{"A", "B", "C"})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, []string{"A", "C"}, results[0].Courses)
		assert.Equal(t, []string{"B"}, results[0].Skipped)
		assert.Equal(t, 200, results[0].Score)
		assert.Equal(t, 2, results[0].Days)
	})

	t.Run("Unknown and repeated keys", func(t *testing.T) {
		catalog := catalogOf(
			record("A", at("monday", "08:00", "10:00", "")),
			record("B", at("tuesday", "08:00", "10:00", "")),
		)
		scheduler := NewPriorityScheduler(catalog, DefaultOptions(), nil)

		results, err := scheduler.Schedule(context.Background(), []string{"missing", "B", "A", "B"})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, []string{"B", "A"}, results[0].Courses)
		assert.Empty(t, results[0].Skipped)
	})

	t.Run("Empty order", func(t *testing.T) {
		scheduler := NewPriorityScheduler(catalogOf(), DefaultOptions(), nil)

		results, err := scheduler.Schedule(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Cancellation", func(t *testing.T) {
		catalog := catalogOf(
			record("A", at("monday", "08:00", "10:00", "")),
			record("B", at("monday", "09:00", "11:00", "")),
		)
		scheduler := NewPriorityScheduler(catalog, DefaultOptions(), nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := scheduler.Schedule(ctx, []string{"A", "B"})

		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestScheduleProperties(t *testing.T) {
	for range 100 {
		//** Arrange
		catalog := model.GenerateCatalog(4, 2, 2)
		order := catalog.Keys()
		rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		position := make(map[string]int, len(order))
		for i, key := range order {
			position[key] = i
		}
		scheduler := NewPriorityScheduler(catalog, DefaultOptions(), nil)

		//** Act
		results, err := scheduler.Schedule(context.Background(), order)

		//** Assert
		require.NoError(t, err)
		require.NotEmpty(t, results)

		index := slices.IndexFunc(results, func(result ScheduleResult) bool { return result.Method == GreedyMethod })
		require.GreaterOrEqual(t, index, 0)
		greedy := results[index]
		assert.True(t, greedy.PriorityPreserved)
		selected := catalog.Courses(greedy.Courses)
		for _, skipped := range catalog.Courses(greedy.Skipped) {
			blocked := slices.ContainsFunc(selected, func(course model.Course) bool {
				return position[course.Key] < position[skipped.Key] && model.CoursesConflict(course, skipped)
			})
			assert.True(t, blocked, "course %v was skipped without a higher priority conflict", skipped.Key)
		}

		seen := make(map[string]bool)
		for i, result := range results {
			courses := catalog.Courses(result.Courses)
			for a := range courses {
				for b := a + 1; b < len(courses); b++ {
					assert.False(t, model.CoursesConflict(courses[a], courses[b]))
				}
			}
			assert.Equal(t, len(order), len(result.Courses)+len(result.Skipped))
			assert.True(t, result.PriorityPreserved)
			assert.Subset(t, result.Courses, greedy.Courses)

			sorted := slices.Clone(result.Courses)
			slices.Sort(sorted)
			set := strings.Join(sorted, ",")
			assert.False(t, seen[set], "duplicated course set %v", set)
			seen[set] = true

			if i > 0 {
				assert.GreaterOrEqual(t, results[i-1].Score, result.Score)
			}
		}
	}
}

func TestSkipConflicts(t *testing.T) {
	//** Arrange
	catalog := catalogOf(
		record("A", at("monday", "08:00", "10:00", "")),
		record("B", at("monday", "09:00", "11:00", "")),
		record("C", at("tuesday", "08:00", "10:00", "")),
		record("D", at("tuesday", "09:00", "11:00", "")),
	)
	courses := catalog.Courses([]string{"A", "B", "C", "D"})

	//** Act
	first, firstComplete := skipConflicts(courses, 1)
	second, secondComplete := skipConflicts(courses, 2)
	_, thirdComplete := skipConflicts(courses, 3)

	//** Assert
	require.True(t, firstComplete)
	assert.Equal(t, []string{"A"}, keys(first.selected))
	assert.Equal(t, []string{"B"}, keys(first.rejected))

	require.True(t, secondComplete)
	assert.Equal(t, []string{"A", "C"}, keys(second.selected))
	assert.Equal(t, []string{"B", "D"}, keys(second.rejected))

	// Only two courses conflict
	assert.False(t, thirdComplete)

	// The second pass keeps the first one's selection and retries the rest
	refill := firstFit(catalog.Courses([]string{"B", "C", "D"}), first.selected)
	assert.Equal(t, []string{"A", "C"}, keys(refill.selected))
	assert.Equal(t, []string{"B", "D"}, keys(refill.rejected))
}
