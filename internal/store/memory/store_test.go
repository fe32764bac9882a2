package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/permissions"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

func seriesFixture(id, title string) *entities.Series {
	return &entities.Series{
		ID:        "urn:mehgu:series:" + id,
		Title:     title,
		MediaType: entities.MediaTypePhoto,
		Status:    entities.SeriesStatusOngoing,
		CreatedAt: time.Now().UTC(),
		CreatedBy: "urn:mehgu:user:owner",
	}
}

func unitFixture(id, seriesID string, number float64) *entities.Unit {
	return &entities.Unit{
		ID:         "urn:mehgu:unit:" + id,
		SeriesID:   seriesID,
		UnitNumber: number,
		CreatedAt:  time.Now().UTC(),
		CreatedBy:  "urn:mehgu:user:owner",
	}
}

func TestSeriesCRUD(t *testing.T) {
	s := New()

	t.Run("create and get", func(t *testing.T) {
		series := seriesFixture("s1", "First Series")
		require.NoError(t, s.CreateSeries(series))

		got, err := s.GetSeries(series.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "First Series", got.Title)
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		err := s.CreateSeries(seriesFixture("s1", "Duplicate"))
		assert.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		bad := seriesFixture("s2", "")
		assert.ErrorIs(t, s.CreateSeries(bad), store.ErrInvalidArgument)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.CreateSeries(&entities.Series{Title: "No ID"}), store.ErrInvalidArgument)
	})

	t.Run("get missing returns nil, nil", func(t *testing.T) {
		got, err := s.GetSeries("urn:mehgu:series:nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update replaces wholesale", func(t *testing.T) {
		series := seriesFixture("s1", "Renamed Series")
		require.NoError(t, s.UpdateSeries(series))
		got, err := s.GetSeries(series.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Series", got.Title)
	})
}

func TestSeriesListAndSearch(t *testing.T) {
	s := New()
	titles := []string{"Charlie", "alpha", "Bravo", "delta alpha"}
	for i, title := range titles {
		series := seriesFixture(fmt.Sprintf("s%d", i), title)
		if i%2 == 0 {
			series.MediaType = entities.MediaTypeText
		}
		series.Tags = []string{"common"}
		require.NoError(t, s.CreateSeries(series))
	}

	t.Run("list is title ordered", func(t *testing.T) {
		got, err := s.ListSeries(0, 10)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "alpha", got[0].Title)
		assert.Equal(t, "Bravo", got[1].Title)
		assert.Equal(t, "Charlie", got[2].Title)
		assert.Equal(t, "delta alpha", got[3].Title)
	})

	t.Run("pagination window", func(t *testing.T) {
		got, err := s.ListSeries(1, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Bravo", got[0].Title)
	})

	t.Run("invalid window is clamped", func(t *testing.T) {
		got, err := s.ListSeries(-3, 0)
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("search by title substring", func(t *testing.T) {
		got, err := s.SearchSeries(store.SeriesFilter{Query: "ALPHA"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("search by type and tag", func(t *testing.T) {
		got, err := s.SearchSeries(store.SeriesFilter{Type: entities.MediaTypeText, Tags: []string{"Common"}})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("search with no predicates lists everything", func(t *testing.T) {
		got, err := s.SearchSeries(store.SeriesFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})
}

func TestUnitsAndAggregation(t *testing.T) {
	s := New()
	series := seriesFixture("s1", "Aggregated")
	require.NoError(t, s.CreateSeries(series))

	t.Run("create requires existing series", func(t *testing.T) {
		orphan := unitFixture("orphan", "urn:mehgu:series:missing", 1)
		assert.ErrorIs(t, s.CreateUnit(orphan), store.ErrMissingReference)
	})

	t.Run("create aggregates metadata up", func(t *testing.T) {
		u1 := unitFixture("u1", series.ID, 1)
		u1.Tags = []string{"Action"}
		u1.Authors = []string{"Ichiro"}
		require.NoError(t, s.CreateUnit(u1))

		u2 := unitFixture("u2", series.ID, 2)
		u2.Tags = []string{"action", "Drama"}
		require.NoError(t, s.CreateUnit(u2))

		got, err := s.GetSeries(series.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Action", "Drama"}, got.Tags)
		assert.Equal(t, []string{"Ichiro"}, got.Authors)
	})

	t.Run("duplicate unit conflicts", func(t *testing.T) {
		err := s.CreateUnit(unitFixture("u1", series.ID, 9))
		assert.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("list ordered by unit number", func(t *testing.T) {
		half := unitFixture("u15", series.ID, 1.5)
		require.NoError(t, s.CreateUnit(half))

		units, err := s.ListUnits(series.ID)
		require.NoError(t, err)
		require.Len(t, units, 3)
		assert.Equal(t, 1.0, units[0].UnitNumber)
		assert.Equal(t, 1.5, units[1].UnitNumber)
		assert.Equal(t, 2.0, units[2].UnitNumber)
	})

	t.Run("update re-aggregates", func(t *testing.T) {
		u2, err := s.GetUnit("urn:mehgu:unit:u2")
		require.NoError(t, err)
		u2.Tags = []string{"Romance"}
		require.NoError(t, s.UpdateUnit(u2))

		got, err := s.GetSeries(series.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Action", "Romance"}, got.Tags)
	})

	t.Run("delete re-aggregates", func(t *testing.T) {
		require.NoError(t, s.DeleteUnit("urn:mehgu:unit:u2"))
		require.NoError(t, s.DeleteUnit("urn:mehgu:unit:u15"))

		got, err := s.GetSeries(series.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Action"}, got.Tags)
	})

	t.Run("deleting a missing unit succeeds", func(t *testing.T) {
		assert.NoError(t, s.DeleteUnit("urn:mehgu:unit:u2"))
	})
}

func TestPages(t *testing.T) {
	s := New()
	series := seriesFixture("s1", "Paged")
	require.NoError(t, s.CreateSeries(series))
	unit := unitFixture("u1", series.ID, 1)
	require.NoError(t, s.CreateUnit(unit))

	t.Run("append and read ordered", func(t *testing.T) {
		for _, n := range []int{3, 1, 2} {
			err := s.AddPage(&entities.Page{UnitID: unit.ID, PageNumber: n, AssetID: fmt.Sprintf("asset-%d", n)})
			require.NoError(t, err)
		}
		pages, err := s.GetPages(unit.ID)
		require.NoError(t, err)
		require.Len(t, pages, 3)
		assert.Equal(t, 1, pages[0].PageNumber)
		assert.Equal(t, 3, pages[2].PageNumber)
	})

	t.Run("same page number replaces", func(t *testing.T) {
		err := s.AddPage(&entities.Page{UnitID: unit.ID, PageNumber: 2, AssetID: "asset-2-v2"})
		require.NoError(t, err)
		pages, err := s.GetPages(unit.ID)
		require.NoError(t, err)
		require.Len(t, pages, 3)
		assert.Equal(t, "asset-2-v2", pages[1].AssetID)
	})

	t.Run("zero page number rejected", func(t *testing.T) {
		err := s.AddPage(&entities.Page{UnitID: unit.ID, PageNumber: 0, AssetID: "x"})
		assert.ErrorIs(t, err, store.ErrInvalidArgument)
	})

	t.Run("missing unit yields empty pages", func(t *testing.T) {
		pages, err := s.GetPages("urn:mehgu:unit:none")
		require.NoError(t, err)
		assert.Empty(t, pages)
	})
}

func TestDeleteSeriesCascade(t *testing.T) {
	s := New()
	series := seriesFixture("s1", "Doomed")
	require.NoError(t, s.CreateSeries(series))
	unit := unitFixture("u1", series.ID, 1)
	require.NoError(t, s.CreateUnit(unit))
	require.NoError(t, s.AddPage(&entities.Page{UnitID: unit.ID, PageNumber: 1, AssetID: "a1"}))
	require.NoError(t, s.UpsertProgress(&entities.ReadingProgress{
		UserID: "urn:mehgu:user:reader", SeriesID: series.ID, UpdatedAt: time.Now().UTC(),
	}))

	require.NoError(t, s.DeleteSeries(series.ID))

	got, err := s.GetSeries(series.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	u, err := s.GetUnit(unit.ID)
	require.NoError(t, err)
	assert.Nil(t, u)

	pages, err := s.GetPages(unit.ID)
	require.NoError(t, err)
	assert.Empty(t, pages)

	p, err := s.GetProgress("urn:mehgu:user:reader", series.ID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProgressLastWriteWins(t *testing.T) {
	s := New()
	user := "urn:mehgu:user:reader"
	seriesID := "urn:mehgu:series:s1"
	now := time.Now().UTC()

	newer := &entities.ReadingProgress{UserID: user, SeriesID: seriesID, PageNumber: 50, UpdatedAt: now}
	require.NoError(t, s.UpsertProgress(newer))

	// A stale offline sync arrives afterwards and is dropped
	stale := &entities.ReadingProgress{UserID: user, SeriesID: seriesID, PageNumber: 10, UpdatedAt: now.Add(-time.Hour)}
	require.NoError(t, s.UpsertProgress(stale))

	got, err := s.GetProgress(user, seriesID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.PageNumber)

	// A genuinely newer write lands
	latest := &entities.ReadingProgress{UserID: user, SeriesID: seriesID, PageNumber: 60, UpdatedAt: now.Add(time.Hour)}
	require.NoError(t, s.UpsertProgress(latest))
	got, err = s.GetProgress(user, seriesID)
	require.NoError(t, err)
	assert.Equal(t, 60, got.PageNumber)

	t.Run("missing key fields rejected", func(t *testing.T) {
		err := s.UpsertProgress(&entities.ReadingProgress{UserID: user})
		assert.ErrorIs(t, err, store.ErrInvalidArgument)
	})

	t.Run("history is newest first", func(t *testing.T) {
		other := &entities.ReadingProgress{UserID: user, SeriesID: "urn:mehgu:series:s2", UpdatedAt: now.Add(2 * time.Hour)}
		require.NoError(t, s.UpsertProgress(other))
		history, err := s.ListProgressHistory(user)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "urn:mehgu:series:s2", history[0].SeriesID)
	})
}

func TestPermissions(t *testing.T) {
	s := New()
	owner := "urn:mehgu:user:owner"
	editor := "urn:mehgu:user:editor"
	stranger := "urn:mehgu:user:stranger"

	series := seriesFixture("s1", "Guarded")
	require.NoError(t, s.CreateSeries(series))
	unit := unitFixture("u1", series.ID, 1)
	require.NoError(t, s.CreateUnit(unit))

	t.Run("creator is implicit owner", func(t *testing.T) {
		ok, err := s.HasEditPermission(series.ID, owner)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.HasEditPermission(unit.ID, owner)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("grant adds access and fills the cache", func(t *testing.T) {
		require.NoError(t, s.GrantEdit(series.ID, editor, owner))

		ok, err := s.HasEditPermission(series.ID, editor)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := s.GetSeries(series.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{editor}, got.AllowedEditors)
	})

	t.Run("grant is idempotent", func(t *testing.T) {
		require.NoError(t, s.GrantEdit(series.ID, editor, owner))
		grants, err := s.ListEditGrants(series.ID)
		require.NoError(t, err)
		assert.Len(t, grants, 1)
	})

	t.Run("series grant does not cover units", func(t *testing.T) {
		ok, err := s.HasEditPermission(unit.ID, editor)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("grant on missing target fails", func(t *testing.T) {
		err := s.GrantEdit("urn:mehgu:series:nope", editor, owner)
		assert.ErrorIs(t, err, store.ErrMissingReference)
	})

	t.Run("grant on unit fills the unit cache without re-aggregating", func(t *testing.T) {
		require.NoError(t, s.GrantEdit(unit.ID, stranger, owner))
		got, err := s.GetUnit(unit.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{stranger}, got.AllowedEditors)
	})

	t.Run("revoke clears row and cache", func(t *testing.T) {
		require.NoError(t, s.RevokeEdit(series.ID, editor))

		ok, err := s.HasEditPermission(series.ID, editor)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := s.GetSeries(series.ID)
		require.NoError(t, err)
		assert.Nil(t, got.AllowedEditors)
	})

	t.Run("revoke is idempotent", func(t *testing.T) {
		assert.NoError(t, s.RevokeEdit(series.ID, editor))
	})

	t.Run("sync prunes grants for deleted targets", func(t *testing.T) {
		doomed := seriesFixture("doomed", "Doomed")
		require.NoError(t, s.CreateSeries(doomed))
		require.NoError(t, s.GrantEdit(doomed.ID, editor, owner))
		require.NoError(t, s.DeleteSeries(doomed.ID))

		ok, err := s.HasEditGrant(doomed.ID, editor)
		require.NoError(t, err)
		assert.True(t, ok, "grant row survives the delete until synced")

		pruned, err := permissions.Sync(s)
		require.NoError(t, err)
		assert.Equal(t, 1, pruned)

		ok, err = s.HasEditGrant(doomed.ID, editor)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestUsersAndPasskeys(t *testing.T) {
	s := New()
	user := &entities.User{
		ID:       "urn:mehgu:user:u1",
		Username: "Reader",
		Role:     entities.RoleViewer,
	}
	require.NoError(t, s.CreateUser(user))

	t.Run("username is unique case-insensitively", func(t *testing.T) {
		dup := &entities.User{ID: "urn:mehgu:user:u2", Username: "reader"}
		assert.ErrorIs(t, s.CreateUser(dup), store.ErrConflict)
	})

	t.Run("lookup by username ignores case", func(t *testing.T) {
		got, err := s.GetUserByUsername("READER")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("admin detection", func(t *testing.T) {
		ok, err := s.IsAdminPresent()
		require.NoError(t, err)
		assert.False(t, ok)

		admin := &entities.User{ID: "urn:mehgu:user:admin", Username: "admin", Role: entities.RoleAdmin}
		require.NoError(t, s.CreateUser(admin))

		ok, err = s.IsAdminPresent()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("passkey requires existing user", func(t *testing.T) {
		pk := &entities.Passkey{ID: "urn:mehgu:passkey:p1", UserID: "urn:mehgu:user:nope", CredentialID: "cred-1"}
		assert.ErrorIs(t, s.CreatePasskey(pk), store.ErrMissingReference)
	})

	t.Run("passkey lifecycle", func(t *testing.T) {
		pk := &entities.Passkey{ID: "urn:mehgu:passkey:p1", UserID: user.ID, CredentialID: "cred-1"}
		require.NoError(t, s.CreatePasskey(pk))

		got, err := s.GetPasskeyByCredentialID("cred-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, pk.ID, got.ID)

		// Deleting the user removes its passkeys
		require.NoError(t, s.DeleteUser(user.ID))
		got, err = s.GetPasskeyByCredentialID("cred-1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestVotesAndComments(t *testing.T) {
	s := New()
	target := "urn:mehgu:series:s1"

	t.Run("vote values are restricted", func(t *testing.T) {
		err := s.SetVote(&entities.Vote{UserID: "urn:mehgu:user:a", TargetURN: target, Value: 2})
		assert.ErrorIs(t, err, store.ErrInvalidArgument)
	})

	t.Run("one vote per user per target", func(t *testing.T) {
		require.NoError(t, s.SetVote(&entities.Vote{UserID: "urn:mehgu:user:a", TargetURN: target, Value: 1}))
		require.NoError(t, s.SetVote(&entities.Vote{UserID: "urn:mehgu:user:b", TargetURN: target, Value: 1}))
		// Flipping a vote replaces it rather than stacking
		require.NoError(t, s.SetVote(&entities.Vote{UserID: "urn:mehgu:user:a", TargetURN: target, Value: -1}))

		score, err := s.VoteScore(target)
		require.NoError(t, err)
		assert.Equal(t, int64(0), score)
	})

	t.Run("deleting a vote adjusts the score", func(t *testing.T) {
		require.NoError(t, s.DeleteVote("urn:mehgu:user:a", target))
		score, err := s.VoteScore(target)
		require.NoError(t, err)
		assert.Equal(t, int64(1), score)
	})

	t.Run("comments list in creation order", func(t *testing.T) {
		now := time.Now().UTC()
		for i := 0; i < 3; i++ {
			c := &entities.Comment{
				ID:        fmt.Sprintf("urn:mehgu:comment:c%d", i),
				TargetURN: target,
				UserID:    "urn:mehgu:user:a",
				Body:      fmt.Sprintf("comment %d", i),
				CreatedAt: now.Add(time.Duration(i) * time.Minute),
			}
			require.NoError(t, s.CreateComment(c))
		}
		comments, err := s.ListComments(target)
		require.NoError(t, err)
		require.Len(t, comments, 3)
		assert.Equal(t, "comment 0", comments[0].Body)
		assert.Equal(t, "comment 2", comments[2].Body)
	})
}

func TestReports(t *testing.T) {
	s := New()
	open := &entities.Report{ID: "urn:mehgu:report:r1", TargetURN: "urn:mehgu:series:s1", Status: entities.ReportStatusOpen}
	resolved := &entities.Report{ID: "urn:mehgu:report:r2", TargetURN: "urn:mehgu:series:s1", Status: entities.ReportStatusResolved}
	require.NoError(t, s.CreateReport(open))
	require.NoError(t, s.CreateReport(resolved))

	got, err := s.ListReports(entities.ReportStatusOpen)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, open.ID, got[0].ID)

	all, err := s.ListReports("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSingletons(t *testing.T) {
	s := New()

	got, err := s.GetSystemConfig()
	require.NoError(t, err)
	assert.Nil(t, got)

	cfg := &entities.SystemConfig{SiteTitle: "My Library", SetupCompleted: true, UpdatedAt: time.Now().UTC()}
	require.NoError(t, s.SetSystemConfig(cfg))

	got, err = s.GetSystemConfig()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "My Library", got.SiteTitle)
	assert.True(t, got.SetupCompleted)

	tax := &entities.TaxonomyConfig{PresetTags: []string{"Action"}, UpdatedAt: time.Now().UTC()}
	require.NoError(t, s.SetTaxonomy(tax))
	gotTax, err := s.GetTaxonomy()
	require.NoError(t, err)
	assert.Equal(t, []string{"Action"}, gotTax.PresetTags)
}

func TestSeedAndMaintenance(t *testing.T) {
	s := New()

	t.Run("seed populates an empty store", func(t *testing.T) {
		require.NoError(t, s.SeedSampleData())

		has, err := s.HasData()
		require.NoError(t, err)
		assert.True(t, has)

		stats, err := s.GetStats()
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Series)
		assert.Equal(t, int64(3), stats.Units)
		assert.Equal(t, int64(1), stats.Users)

		ok, err := s.IsAdminPresent()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("seed is a no-op when data exists", func(t *testing.T) {
		require.NoError(t, s.SeedSampleData())
		stats, err := s.GetStats()
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Series)
	})

	t.Run("reset drops everything", func(t *testing.T) {
		require.NoError(t, s.ResetAll())
		has, err := s.HasData()
		require.NoError(t, err)
		assert.False(t, has)
	})
}
