package store

import (
	"fmt"
	"time"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/auth"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
)

// DemoPassword is the password of the seeded demo admin account.
const DemoPassword = "mehgu-demo-password"

// Seed loads a small demo library through the contract so both backends seed
// identically: an admin account, two series with units and pages, and a
// starter taxonomy. Seeding a store that already has data is a no-op.
func Seed(ds DataStore) error {
	hasData, err := ds.HasData()
	if err != nil {
		return err
	}
	if hasData {
		return nil
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}
	now := time.Now().UTC()

	admin := &entities.User{
		ID:           entities.NewURN(entities.TypeUser),
		Username:     "admin",
		Role:         entities.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	if err := ds.CreateUser(admin); err != nil {
		return err
	}

	for _, sample := range sampleSeries(admin.ID, now) {
		if err := ds.CreateSeries(sample.series); err != nil {
			return err
		}
		for i := range sample.units {
			if err := ds.CreateUnit(sample.units[i]); err != nil {
				return err
			}
			for _, p := range sample.pages[sample.units[i].ID] {
				page := p
				if err := ds.AddPage(&page); err != nil {
					return err
				}
			}
		}
	}

	return ds.SetTaxonomy(&entities.TaxonomyConfig{
		PresetTags:            []string{"Action", "Comedy", "Drama", "Fantasy", "Romance", "Slice of Life"},
		PresetContentWarnings: []string{"Gore", "Nudity", "Strong Language"},
		UpdatedAt:             now,
	})
}

type sampleEntry struct {
	series *entities.Series
	units  []*entities.Unit
	pages  map[string][]entities.Page
}

func sampleSeries(ownerID string, now time.Time) []sampleEntry {
	var out []sampleEntry
	specs := []struct {
		title     string
		mediaType entities.MediaType
		units     []struct {
			number float64
			title  string
			tags   []string
		}
	}{
		{
			title:     "The Wandering Blade",
			mediaType: entities.MediaTypePhoto,
			units: []struct {
				number float64
				title  string
				tags   []string
			}{
				{1, "First Steel", []string{"Action"}},
				{2, "Crossroads", []string{"Action", "Drama"}},
			},
		},
		{
			title:     "Letters from the Lighthouse",
			mediaType: entities.MediaTypeText,
			units: []struct {
				number float64
				title  string
				tags   []string
			}{
				{1, "Arrival", []string{"Slice of Life"}},
			},
		},
	}

	for _, spec := range specs {
		series := &entities.Series{
			ID:               entities.NewURN(entities.TypeSeries),
			Title:            spec.title,
			MediaType:        spec.mediaType,
			ReadingDirection: entities.ReadingDirectionLTR,
			Status:           entities.SeriesStatusOngoing,
			CreatedAt:        now,
			CreatedBy:        ownerID,
		}
		entry := sampleEntry{series: series, pages: map[string][]entities.Page{}}
		for _, u := range spec.units {
			unit := &entities.Unit{
				ID:         entities.NewURN(entities.TypeUnit),
				SeriesID:   series.ID,
				UnitNumber: u.number,
				Title:      u.title,
				Tags:       u.tags,
				CreatedAt:  now,
				CreatedBy:  ownerID,
			}
			entry.units = append(entry.units, unit)
			for n := 1; n <= 3; n++ {
				entry.pages[unit.ID] = append(entry.pages[unit.ID], entities.Page{
					UnitID:     unit.ID,
					PageNumber: n,
					AssetID:    fmt.Sprintf("%s/page-%03d", unit.ID, n),
				})
			}
		}
		out = append(out, entry)
	}
	return out
}
