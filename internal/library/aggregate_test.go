package library

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
)

func TestAggregate(t *testing.T) {
	series := entities.Series{
		ID:    "urn:mehgu:series:s1",
		Title: "Test Series",
		// Stale values from a previous aggregation
		Tags:    []string{"old-tag"},
		Authors: []string{"old-author"},
	}

	t.Run("unions metadata across units", func(t *testing.T) {
		units := []entities.Unit{
			{ID: "u1", Tags: []string{"Action", "Drama"}, Authors: []string{"Ichiro"}},
			{ID: "u2", Tags: []string{"drama", "Romance"}, Authors: []string{"Jiro"}, Scanlators: []string{"TeamScan"}},
			{ID: "u3", ContentWarnings: []string{"violence"}},
		}

		got := Aggregate(series, units)

		// Case-insensitive dedupe keeps the first spelling seen
		assert.Equal(t, []string{"Action", "Drama", "Romance"}, got.Tags)
		assert.Equal(t, []string{"Ichiro", "Jiro"}, got.Authors)
		assert.Equal(t, []string{"TeamScan"}, got.Scanlators)
		assert.Equal(t, []string{"violence"}, got.ContentWarnings)

		// Non-derived fields pass through untouched
		assert.Equal(t, series.ID, got.ID)
		assert.Equal(t, series.Title, got.Title)
	})

	t.Run("is idempotent", func(t *testing.T) {
		units := []entities.Unit{
			{ID: "u1", Tags: []string{"Fantasy", "action"}},
			{ID: "u2", Tags: []string{"Action"}},
		}
		once := Aggregate(series, units)
		twice := Aggregate(once, units)
		assert.Equal(t, once, twice)
	})

	t.Run("no units clears derived fields", func(t *testing.T) {
		got := Aggregate(series, nil)
		assert.Nil(t, got.Tags)
		assert.Nil(t, got.Authors)
		assert.Nil(t, got.Scanlators)
		assert.Nil(t, got.ContentWarnings)
	})

	t.Run("blank values are dropped", func(t *testing.T) {
		units := []entities.Unit{
			{ID: "u1", Tags: []string{" ", "", "Action"}},
		}
		got := Aggregate(series, units)
		assert.Equal(t, []string{"Action"}, got.Tags)
	})

	t.Run("does not mutate the input series", func(t *testing.T) {
		units := []entities.Unit{{ID: "u1", Tags: []string{"New"}}}
		_ = Aggregate(series, units)
		assert.Equal(t, []string{"old-tag"}, series.Tags)
	})
}
