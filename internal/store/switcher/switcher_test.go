package switcher

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/embedded"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// fakeLifecycle scripts the embedded store's startup behavior.
type fakeLifecycle struct {
	dsn     string
	failed  bool
	waitErr error
}

func (f *fakeLifecycle) ConnectionInfo() string { return f.dsn }
func (f *fakeLifecycle) StartupFailed() bool    { return f.failed }
func (f *fakeLifecycle) WaitForStartup(ctx context.Context) error {
	if f.waitErr != nil {
		return f.waitErr
	}
	return ctx.Err()
}

func seriesFixture(id, title string) *entities.Series {
	return &entities.Series{
		ID:        "urn:mehgu:series:" + id,
		Title:     title,
		MediaType: entities.MediaTypePhoto,
		CreatedAt: time.Now().UTC(),
		CreatedBy: "urn:mehgu:user:owner",
	}
}

func TestStartupFallsBackToVolatile(t *testing.T) {
	sw := New()
	err := sw.Startup(context.Background(), StartupOptions{
		Embedded: &fakeLifecycle{failed: true},
		// no external DSN configured
	})
	require.NoError(t, err)
	assert.Equal(t, ModeVolatile, sw.Mode())

	// The volatile tier is fully serviceable
	require.NoError(t, sw.CreateSeries(seriesFixture("s1", "Volatile")))
	got, err := sw.GetSeries("urn:mehgu:series:s1")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestStartupEmbeddedTier(t *testing.T) {
	sw := New()
	err := sw.Startup(context.Background(), StartupOptions{
		Embedded: embedded.LocalFile(filepath.Join(t.TempDir(), "embedded.db")),
	})
	require.NoError(t, err)
	defer sw.Close()
	assert.Equal(t, ModeDurableEmbedded, sw.Mode())

	require.NoError(t, sw.CreateSeries(seriesFixture("s1", "Embedded")))
	cfg, err := sw.GetSystemConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestStartupFallsThroughToExternal(t *testing.T) {
	sw := New()
	err := sw.Startup(context.Background(), StartupOptions{
		Embedded:     &fakeLifecycle{waitErr: errors.New("embedded never came up")},
		EmbeddedWait: 50 * time.Millisecond,
		ExternalDSN:  filepath.Join(t.TempDir(), "external.db"),
	})
	require.NoError(t, err)
	defer sw.Close()
	assert.Equal(t, ModeDurableExternal, sw.Mode())
}

func TestStartupCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sw := New()
	err := sw.Startup(ctx, StartupOptions{
		Embedded: &fakeLifecycle{dsn: filepath.Join(t.TempDir(), "never.db")},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSwitchTo(t *testing.T) {
	sw := New()
	require.NoError(t, sw.Startup(context.Background(), StartupOptions{}))
	require.Equal(t, ModeVolatile, sw.Mode())

	// Data written before the switch stays behind: no migration
	require.NoError(t, sw.CreateSeries(seriesFixture("old", "Pre-Switch")))

	dsn := filepath.Join(t.TempDir(), "switched.db")
	require.NoError(t, sw.SwitchTo(dsn, false))
	defer sw.Close()
	assert.Equal(t, ModeDurableEmbedded, sw.Mode())

	got, err := sw.GetSeries("urn:mehgu:series:old")
	require.NoError(t, err)
	assert.Nil(t, got, "volatile data must not migrate")

	// The connection string is recorded for the next startup
	cfg, err := sw.GetSystemConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, dsn, cfg.DurableDSN)

	// New writes land in the durable store
	require.NoError(t, sw.CreateSeries(seriesFixture("new", "Post-Switch")))
	got, err = sw.GetSeries("urn:mehgu:series:new")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestSwitchToWipe(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "wiped.db")

	first := New()
	require.NoError(t, first.SwitchTo(dsn, false))
	require.NoError(t, first.CreateSeries(seriesFixture("stale", "Stale")))
	require.NoError(t, first.Close())

	second := New()
	require.NoError(t, second.SwitchTo(dsn, true))
	defer second.Close()

	got, err := second.GetSeries("urn:mehgu:series:stale")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSwitcherImplementsContract(t *testing.T) {
	var _ store.DataStore = New()
}
