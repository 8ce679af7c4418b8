package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJson = `{
	"courses": {
		"math_1": {
			"code": "1114001_01",
			"name": "Calculus I",
			"credits": 3,
			"instructor": "Ahmadi",
			"is_available": true,
			"location": "Hall 2",
			"schedule": [
				{"day": "saturday", "start": "08:00", "end": "10:00", "parity": ""},
				{"day": "monday", "start": "08:00", "end": "10:00", "parity": "ف", "location": "Hall 5"}
			]
		},
		"math_2": {
			"code": "1114001_02",
			"name": "Calculus I",
			"credits": "3",
			"schedule": [
				{"day": "sunday", "start": "08:15", "end": "10:00"},
				{"day": "tuesday", "start": "10:00", "end": "12:00"},
				{"day": "someday", "start": "10:00", "end": "12:00"},
				{"day": "tuesday", "start": "12:00", "end": "10:00"}
			]
		},
		"physics": {
			"code": "1114002_01",
			"name": "Physics I",
			"credits": -1,
			"schedule": []
		}
	}
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(file, []byte(content), 0666))
	return file
}

func TestCatalogFromJson(t *testing.T) {
	t.Run("Nested courses map", func(t *testing.T) {
		//** Arrange
		file := writeCatalog(t, catalogJson)

		//** Act
		catalog, err := CatalogFromJson(file, PlacementGrid, nil)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"math_1", "math_2"}, catalog.Keys()) // physics has negative credits

		math1, ok := catalog.Get("math_1")
		require.True(t, ok)
		assert.Equal(t, "Calculus I", math1.Name)
		assert.Equal(t, 3, math1.Credits)
		assert.True(t, math1.Available)
		require.Len(t, math1.Sessions, 2)
		assert.Equal(t, Session{Day: Saturday, Start: 2, End: 6, Parity: ParityNone, Location: "Hall 2"}, math1.Sessions[0])
		assert.Equal(t, Session{Day: Monday, Start: 2, End: 6, Parity: ParityOdd, Location: "Hall 5"}, math1.Sessions[1])

		// Only the aligned, well-formed session survives
		math2, ok := catalog.Get("math_2")
		require.True(t, ok)
		assert.Equal(t, 3, math2.Credits)
		require.Len(t, math2.Sessions, 1)
		assert.Equal(t, Tuesday, math2.Sessions[0].Day)
	})

	t.Run("Bare map and course list", func(t *testing.T) {
		bare := writeCatalog(t, `{"x": {"code": "10_1", "schedule": [{"day": "friday", "start": "07:00", "end": "07:30"}]}}`)
		list := writeCatalog(t, `{"courses": [{"code": "20_1"}, {"key": "custom", "code": "20_2"}, {"code": "20_1"}]}`)

		bareCatalog, err := CatalogFromJson(bare, PlacementGrid, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, bareCatalog.Keys())

		listCatalog, err := CatalogFromJson(list, PlacementGrid, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"20_1", "custom", "20_1_1"}, listCatalog.Keys())
	})

	t.Run("Unreadable input", func(t *testing.T) {
		_, err := CatalogFromJson(filepath.Join(t.TempDir(), "missing.json"), PlacementGrid, nil)
		assert.Error(t, err)

		_, err = CatalogFromJson(writeCatalog(t, "{"), PlacementGrid, nil)
		assert.Error(t, err)

		_, err = CatalogFromJson(writeCatalog(t, `{"courses": 3}`), PlacementGrid, nil)
		assert.Error(t, err)
	})
}

func TestCandidates(t *testing.T) {
	catalog := NewCatalog([]CourseRecord{
		{Key: "a1", Code: "100_01", Name: "Algebra"},
		{Key: "a2", Code: "100_02", Name: "Algebra"},
		{Key: "b1", Code: "200", Name: "Biology"},
		{Key: "c1", Code: "300_01", Name: "Advanced Chemistry"},
	}, PlacementGrid, nil)

	assert.Equal(t, []string{"a1", "a2"}, catalog.Candidates("100"))
	assert.Equal(t, []string{"b1"}, catalog.Candidates("200"))
	assert.Equal(t, []string{"c1"}, catalog.Candidates("Chemistry"))
	assert.Empty(t, catalog.Candidates("999"))

	assert.Len(t, catalog.Courses([]string{"a1", "missing", "c1"}), 2)
	assert.True(t, catalog.Contains("b1"))
	assert.False(t, catalog.Contains("missing"))
}

func TestGenerateCatalog(t *testing.T) {
	catalog := GenerateCatalog(4, 3, 2)

	assert.Equal(t, 12, catalog.Len())
	for _, key := range catalog.Keys() {
		course, _ := catalog.Get(key)
		assert.Len(t, course.Sessions, 2)
		for _, session := range course.Sessions {
			assert.Less(t, session.Start, session.End)
			assert.LessOrEqual(t, session.End, PlacementGrid.Slots())
		}
	}
	assert.Len(t, catalog.Candidates("c0"), 3)
}
