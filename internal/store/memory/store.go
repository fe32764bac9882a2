// Package memory is the volatile storage backend: every entity collection
// lives in a mutex-guarded map and nothing survives a restart. It serves as
// the development store and as the fallback tier when no durable backend can
// be reached. Single-key writes are atomic; multi-step sequences (cascade
// deletes, grant + cache updates, unit writes + re-aggregation) are not, and
// a concurrent reader may observe a partially-updated state.
package memory

import (
	"github.com/sirupsen/logrus"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

var _ store.DataStore = (*Store)(nil)

// Store holds all entity collections. Composite "<a>|<b>" keys are used for
// progress (user|series), grants (target|user) and votes (user|target).
type Store struct {
	series      *collection[entities.Series]
	units       *collection[entities.Unit]
	pages       *collection[[]entities.Page]
	users       *collection[entities.User]
	passkeys    *collection[entities.Passkey]
	comments    *collection[entities.Comment]
	collections *collection[entities.Collection]
	reports     *collection[entities.Report]
	progress    *collection[entities.ReadingProgress]
	grants      *collection[entities.EditPermission]
	votes       *collection[entities.Vote]
	system      *collection[entities.SystemConfig]
	node        *collection[entities.NodeMetadata]
	taxonomy    *collection[entities.TaxonomyConfig]

	resolveTarget store.TargetResolver

	log *logrus.Entry
}

// SetTargetResolver overrides grant-target existence checks. Installed by the
// switcher when series and units are held by the file store.
func (s *Store) SetTargetResolver(r store.TargetResolver) {
	s.resolveTarget = r
}

// New creates an empty volatile store.
func New() *Store {
	return &Store{
		series:      newCollection[entities.Series](),
		units:       newCollection[entities.Unit](),
		pages:       newCollection[[]entities.Page](),
		users:       newCollection[entities.User](),
		passkeys:    newCollection[entities.Passkey](),
		comments:    newCollection[entities.Comment](),
		collections: newCollection[entities.Collection](),
		reports:     newCollection[entities.Report](),
		progress:    newCollection[entities.ReadingProgress](),
		grants:      newCollection[entities.EditPermission](),
		votes:       newCollection[entities.Vote](),
		system:      newCollection[entities.SystemConfig](),
		node:        newCollection[entities.NodeMetadata](),
		taxonomy:    newCollection[entities.TaxonomyConfig](),
		log:         logrus.WithField("component", "memstore"),
	}
}

func compositeKey(a, b string) string {
	return a + "|" + b
}

// GetStats counts the main entity collections.
func (s *Store) GetStats() (*store.Stats, error) {
	return &store.Stats{
		Series:      int64(s.series.len()),
		Units:       int64(s.units.len()),
		Users:       int64(s.users.len()),
		Comments:    int64(s.comments.len()),
		Collections: int64(s.collections.len()),
		Reports:     int64(s.reports.len()),
	}, nil
}

// HasData reports whether any library or account content exists.
func (s *Store) HasData() (bool, error) {
	return s.series.len() > 0 || s.users.len() > 0, nil
}

// SeedSampleData loads the shared demo fixture.
func (s *Store) SeedSampleData() error {
	return store.Seed(s)
}

// ResetAll drops every collection. Logged at warning severity for audit.
func (s *Store) ResetAll() error {
	s.log.Warn("resetting volatile store: all in-memory data will be dropped")
	s.series.reset()
	s.units.reset()
	s.pages.reset()
	s.users.reset()
	s.passkeys.reset()
	s.comments.reset()
	s.collections.reset()
	s.reports.reset()
	s.progress.reset()
	s.grants.reset()
	s.votes.reset()
	s.system.reset()
	s.node.reset()
	s.taxonomy.reset()
	return nil
}
