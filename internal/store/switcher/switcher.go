// Package switcher owns the active storage backend. It probes the durable
// tiers at startup (embedded first, then an externally configured database)
// and falls back to the volatile store when neither is reachable, so the
// application always comes up. At runtime an admin can switch to a different
// durable database; the switch swaps the backend pointer and performs no data
// migration.
package switcher

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/embedded"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/filestore"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/permissions"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store/memory"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store/sql"
)

// Mode identifies which backend tier is currently active.
type Mode string

const (
	ModeVolatile        Mode = "volatile"
	ModeDurableEmbedded Mode = "durable-embedded"
	ModeDurableExternal Mode = "durable-external"
)

// DefaultEmbeddedWait bounds how long startup waits for the embedded store
// to come up before falling through to the next tier.
const DefaultEmbeddedWait = 30 * time.Second

var _ store.DataStore = (*Switcher)(nil)

// Switcher fronts the active backend. The mutex guards only the backend
// pointer and mode; individual operations run against whatever backend was
// active when they read the pointer, so an in-flight write may still land on
// a backend that is being replaced.
type Switcher struct {
	mu      sync.RWMutex
	backend store.DataStore
	mode    Mode

	files filestore.Store
	log   *logrus.Entry
}

// Option configures the switcher at construction time.
type Option func(*Switcher)

// WithFileStore wires the file-based series/unit store. When set, all series
// and unit records route to it instead of the active backend; pages,
// progress, accounts and the rest stay in the backend.
func WithFileStore(fs filestore.Store) Option {
	return func(s *Switcher) {
		s.files = fs
	}
}

// New creates a switcher with the volatile store active. Call Startup to
// probe the durable tiers.
func New(opts ...Option) *Switcher {
	s := &Switcher{
		mode: ModeVolatile,
		log:  logrus.WithField("component", "switcher"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.backend = memory.New()
	s.installResolver(s.backend)
	return s
}

// StartupOptions describes the durable tiers available to Startup.
type StartupOptions struct {
	// Embedded is the bundled database's lifecycle handle, nil when no
	// embedded store ships with this deployment.
	Embedded embedded.Lifecycle
	// EmbeddedWait bounds the wait for the embedded store; zero means
	// DefaultEmbeddedWait.
	EmbeddedWait time.Duration
	// ExternalDSN is the admin-configured external database, empty when none
	// is configured.
	ExternalDSN string
}

// Startup probes the tiers in order: embedded durable, external durable,
// volatile. A tier failure is logged and the next tier is tried; Startup only
// returns an error when the context is cancelled, never because every durable
// tier was down.
func (s *Switcher) Startup(ctx context.Context, opts StartupOptions) error {
	if opts.Embedded != nil {
		if opts.Embedded.StartupFailed() {
			s.log.Warn("embedded store already failed its startup, skipping tier")
		} else if err := s.startEmbedded(ctx, opts); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.WithError(err).Warn("embedded store unavailable, trying next tier")
		} else {
			return nil
		}
	}

	if opts.ExternalDSN != "" {
		if err := s.openDurable(opts.ExternalDSN, ModeDurableExternal); err != nil {
			s.log.WithError(err).Warn("external store unavailable, trying next tier")
		} else {
			return nil
		}
	}

	s.log.Warn("no durable store reachable, serving from volatile store; data will not survive a restart")
	return nil
}

func (s *Switcher) startEmbedded(ctx context.Context, opts StartupOptions) error {
	wait := opts.EmbeddedWait
	if wait <= 0 {
		wait = DefaultEmbeddedWait
	}
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	if err := opts.Embedded.WaitForStartup(waitCtx); err != nil {
		return fmt.Errorf("waiting for embedded store: %w", err)
	}
	return s.openDurable(opts.Embedded.ConnectionInfo(), ModeDurableEmbedded)
}

func (s *Switcher) openDurable(dsn string, mode Mode) error {
	if err := sql.EnsureDatabase(dsn); err != nil {
		return err
	}
	backend, err := sql.Open(dsn)
	if err != nil {
		return err
	}
	s.adopt(backend, mode)
	s.log.WithField("mode", mode).Info("durable store active")
	return nil
}

// SwitchTo points the switcher at the database named by dsn, creating it if
// needed. Existing data in the current backend is not migrated; when wipe is
// set the target database is emptied first. The connection string is recorded
// in the new backend's system configuration so the next startup finds it.
func (s *Switcher) SwitchTo(dsn string, wipe bool) error {
	if err := sql.EnsureDatabase(dsn); err != nil {
		return err
	}
	backend, err := sql.Open(dsn)
	if err != nil {
		return err
	}
	if wipe {
		if err := backend.ResetAll(); err != nil {
			backend.Close()
			return err
		}
	}
	mode := ModeDurableEmbedded
	if sql.IsPostgresDSN(dsn) {
		mode = ModeDurableExternal
	}
	s.adopt(backend, mode)
	s.log.WithField("mode", mode).Info("switched active store")

	cfg, err := backend.GetSystemConfig()
	if err != nil {
		return err
	}
	if cfg == nil {
		cfg = &entities.SystemConfig{}
	}
	cfg.DurableDSN = dsn
	cfg.UpdatedAt = time.Now().UTC()
	return backend.SetSystemConfig(cfg)
}

// adopt swaps the active backend and closes the one it replaces.
func (s *Switcher) adopt(backend store.DataStore, mode Mode) {
	s.installResolver(backend)

	s.mu.Lock()
	old := s.backend
	s.backend = backend
	s.mode = mode
	s.mu.Unlock()

	if closer, ok := old.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.log.WithError(err).Warn("closing replaced backend")
		}
	}
}

// installResolver makes the backend resolve grant targets through the
// switcher, so existence checks see file-store series and units.
func (s *Switcher) installResolver(backend store.DataStore) {
	if s.files == nil {
		return
	}
	type resolverSetter interface {
		SetTargetResolver(store.TargetResolver)
	}
	if rs, ok := backend.(resolverSetter); ok {
		rs.SetTargetResolver(s.resolveTarget)
	}
}

func (s *Switcher) resolveTarget(targetURN string) (bool, error) {
	switch entities.URNType(targetURN) {
	case entities.TypeSeries:
		series, err := s.GetSeries(targetURN)
		return series != nil, err
	case entities.TypeUnit:
		unit, err := s.GetUnit(targetURN)
		return unit != nil, err
	default:
		return false, fmt.Errorf("%w: %s is not a grantable target", store.ErrInvalidArgument, targetURN)
	}
}

// Mode reports the active tier.
func (s *Switcher) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// active returns the current backend. Callers hold no lock while using it; a
// concurrent switch leaves their operation running against the old backend.
func (s *Switcher) active() store.DataStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend
}

// SyncPermissions prunes grants whose target no longer resolves. Targets are
// looked up through the switcher, so file-store records count as live.
func (s *Switcher) SyncPermissions() (int, error) {
	pruned, err := permissions.Sync(s)
	if err != nil {
		return pruned, err
	}
	if pruned > 0 {
		s.log.WithField("targets", pruned).Info("pruned orphaned edit grants")
	}
	return pruned, nil
}

// Close releases the active backend's resources.
func (s *Switcher) Close() error {
	if closer, ok := s.active().(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
