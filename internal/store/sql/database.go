// Package sql is the durable storage backend. Each entity type maps to one
// table holding the id plus the full entity as an opaque JSON document; a
// handful of columns (series_id, user_id, username, credential_id,
// target_urn) are materialized purely for indexed lookups and are kept in
// sync with the document at write time. The backend runs against an embedded
// SQLite file or an external Postgres database, selected by the connection
// string.
package sql

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

var _ store.DataStore = (*Store)(nil)

type Store struct {
	db            *gorm.DB
	pageMu        *keyedMutex
	resolveTarget store.TargetResolver
	log           *logrus.Entry
}

// SetTargetResolver overrides grant-target existence checks. Installed by the
// switcher when series and units are held by the file store.
func (s *Store) SetTargetResolver(r store.TargetResolver) {
	s.resolveTarget = r
}

// Open connects using the given connection string and runs the idempotent
// initialization. Postgres DSNs (postgres:// URLs or key=value strings with
// a host) select the Postgres driver; anything else is treated as a SQLite
// file path.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty connection string", store.ErrInvalidArgument)
	}
	if isPostgresDSN(dsn) {
		return New(postgres.Open(dsn))
	}
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating database directory: %v", store.ErrBackendUnavailable, err)
		}
	}
	return New(sqlite.Open(dsn))
}

// New opens the dialector and initializes the schema: create-if-missing for
// every table and index, then the singleton system-config and node-metadata
// rows if absent.
func New(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrBackendUnavailable, err)
	}

	err = db.AutoMigrate(
		&seriesRow{},
		&unitRow{},
		&pageSetRow{},
		&userRow{},
		&passkeyRow{},
		&progressRow{},
		&permissionRow{},
		&voteRow{},
		&commentRow{},
		&collectionRow{},
		&reportRow{},
		&systemConfigRow{},
		&nodeMetadataRow{},
		&taxonomyRow{},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: migrating schema: %v", store.ErrBackendUnavailable, err)
	}

	s := &Store{
		db:     db,
		pageMu: newKeyedMutex(),
		log:    logrus.WithField("component", "sqlstore"),
	}
	if err := s.seedSingletons(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnsureDatabase validates that the database named by a Postgres DSN exists,
// creating it through the maintenance database when it does not. SQLite
// paths need no preparation beyond their parent directory, which Open
// handles.
func EnsureDatabase(dsn string) error {
	if !isPostgresDSN(dsn) {
		return nil
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Path == "" || u.Path == "/" {
		return fmt.Errorf("%w: cannot determine database name from dsn", store.ErrInvalidArgument)
	}
	dbName := strings.TrimPrefix(u.Path, "/")

	maint := *u
	maint.Path = "/postgres"
	admin, err := gorm.Open(postgres.Open(maint.String()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrBackendUnavailable, err)
	}
	defer func() {
		if sqlDB, err := admin.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	var count int64
	if err := admin.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", dbName).Scan(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", store.ErrBackendUnavailable, err)
	}
	if count > 0 {
		return nil
	}
	// Identifier, not a value: cannot be bound as a parameter.
	if err := admin.Exec(fmt.Sprintf("CREATE DATABASE %q", dbName)).Error; err != nil {
		return fmt.Errorf("%w: creating database %s: %v", store.ErrBackendUnavailable, dbName, err)
	}
	return nil
}

// IsPostgresDSN reports whether the connection string targets Postgres
// rather than a SQLite file.
func IsPostgresDSN(dsn string) bool {
	return isPostgresDSN(dsn)
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// seedSingletons creates the fixed-key configuration rows if absent.
func (s *Store) seedSingletons() error {
	var cfg systemConfigRow
	err := s.db.Where("key = ?", entities.SingletonKey).First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		if err := s.SetSystemConfig(&entities.SystemConfig{
			SiteTitle: "MehguViewer",
			UpdatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("%w: %v", store.ErrBackendUnavailable, err)
	}

	var node nodeMetadataRow
	err = s.db.Where("key = ?", entities.SingletonKey).First(&node).Error
	if err == gorm.ErrRecordNotFound {
		if err := s.SetNodeMetadata(&entities.NodeMetadata{
			NodeID:         uuid.NewString(),
			NodeName:       "mehgu-node",
			FirstStartedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("%w: %v", store.ErrBackendUnavailable, err)
	}
	return nil
}

// GetStats counts the main entity tables.
func (s *Store) GetStats() (*store.Stats, error) {
	stats := &store.Stats{}
	counts := []struct {
		model any
		dst   *int64
	}{
		{&seriesRow{}, &stats.Series},
		{&unitRow{}, &stats.Units},
		{&userRow{}, &stats.Users},
		{&commentRow{}, &stats.Comments},
		{&collectionRow{}, &stats.Collections},
		{&reportRow{}, &stats.Reports},
	}
	for _, c := range counts {
		if err := s.db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// HasData reports whether any library or account content exists. Setup-state
// detection additionally consults SystemConfig.SetupCompleted; both "no
// rows" and "setup not completed" route the caller to the setup wizard.
func (s *Store) HasData() (bool, error) {
	var series, users int64
	if err := s.db.Model(&seriesRow{}).Count(&series).Error; err != nil {
		return false, err
	}
	if err := s.db.Model(&userRow{}).Count(&users).Error; err != nil {
		return false, err
	}
	return series > 0 || users > 0, nil
}

// SeedSampleData loads the shared demo fixture.
func (s *Store) SeedSampleData() error {
	return store.Seed(s)
}

// ResetAll wipes every table and re-seeds the configuration singletons.
// Logged at warning severity for audit before anything is touched.
func (s *Store) ResetAll() error {
	s.log.Warn("resetting durable store: all rows will be deleted")
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&pageSetRow{}, &unitRow{}, &seriesRow{},
			&passkeyRow{}, &userRow{},
			&progressRow{}, &permissionRow{}, &voteRow{},
			&commentRow{}, &collectionRow{}, &reportRow{},
			&systemConfigRow{}, &nodeMetadataRow{}, &taxonomyRow{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.seedSingletons()
}

func marshalDoc(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

func decodeDoc[T any](data []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &v, nil
}
