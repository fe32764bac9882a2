// Package store defines the storage contract every backend of the viewer
// core satisfies, together with the shared error taxonomy and search
// semantics. Two backends exist: an in-process volatile store (store/memory)
// used for development and as the fallback tier, and a durable document
// store (store/sql). The switcher (store/switcher) owns the active backend
// reference and is what the rest of the application depends on.
package store

import "github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"

// Stats summarizes entity counts for the admin dashboard.
type Stats struct {
	Series      int64 `json:"series"`
	Units       int64 `json:"units"`
	Users       int64 `json:"users"`
	Comments    int64 `json:"comments"`
	Collections int64 `json:"collections"`
	Reports     int64 `json:"reports"`
}

// TargetResolver overrides how a backend checks grant-target existence. The
// switcher installs one when series and units live in the file store rather
// than in the backend itself.
type TargetResolver func(targetURN string) (bool, error)

// DataStore is the capability set a backend must implement. Read-by-id
// operations return (nil, nil) for a missing row, never an error; writes
// against a missing required reference fail with ErrMissingReference.
type DataStore interface {
	// Series.
	CreateSeries(s *entities.Series) error
	UpdateSeries(s *entities.Series) error
	GetSeries(id string) (*entities.Series, error)
	ListSeries(offset, limit int) ([]entities.Series, error)
	SearchSeries(f SeriesFilter) ([]entities.Series, error)
	DeleteSeries(id string) error

	// Units. Create/Update/Delete re-aggregate the parent series' metadata.
	CreateUnit(u *entities.Unit) error
	UpdateUnit(u *entities.Unit) error
	GetUnit(id string) (*entities.Unit, error)
	ListUnits(seriesID string) ([]entities.Unit, error)
	DeleteUnit(id string) error

	// Pages, stored as an ordered collection per unit.
	AddPage(p *entities.Page) error
	GetPages(unitID string) ([]entities.Page, error)

	// Reading progress, keyed (user, series), last-write-wins by UpdatedAt.
	UpsertProgress(p *entities.ReadingProgress) error
	GetProgress(userID, seriesID string) (*entities.ReadingProgress, error)
	ListProgress(userID string) ([]entities.ReadingProgress, error)
	ListProgressHistory(userID string) ([]entities.ReadingProgress, error)

	// Comments.
	CreateComment(c *entities.Comment) error
	GetComment(id string) (*entities.Comment, error)
	ListComments(targetURN string) ([]entities.Comment, error)
	DeleteComment(id string) error

	// Votes, one per (user, target).
	SetVote(v *entities.Vote) error
	GetVote(userID, targetURN string) (*entities.Vote, error)
	DeleteVote(userID, targetURN string) error
	VoteScore(targetURN string) (int64, error)

	// Collections.
	CreateCollection(c *entities.Collection) error
	UpdateCollection(c *entities.Collection) error
	GetCollection(id string) (*entities.Collection, error)
	ListCollections(userID string) ([]entities.Collection, error)
	DeleteCollection(id string) error

	// Reports.
	CreateReport(r *entities.Report) error
	UpdateReport(r *entities.Report) error
	GetReport(id string) (*entities.Report, error)
	ListReports(status entities.ReportStatus) ([]entities.Report, error)
	DeleteReport(id string) error

	// Users. Username lookups are case-insensitive.
	CreateUser(u *entities.User) error
	UpdateUser(u *entities.User) error
	GetUser(id string) (*entities.User, error)
	GetUserByUsername(username string) (*entities.User, error)
	ListUsers() ([]entities.User, error)
	DeleteUser(id string) error
	IsAdminPresent() (bool, error)

	// Passkeys.
	CreatePasskey(p *entities.Passkey) error
	GetPasskeyByCredentialID(credentialID string) (*entities.Passkey, error)
	ListPasskeys(userID string) ([]entities.Passkey, error)
	DeletePasskey(id string) error

	// Edit permissions. Grant/Revoke are idempotent and keep the target's
	// AllowedEditors cache in step with the grant rows.
	GrantEdit(targetURN, userURN, grantedBy string) error
	RevokeEdit(targetURN, userURN string) error
	HasEditPermission(targetURN, userURN string) (bool, error)
	HasEditGrant(targetURN, userURN string) (bool, error)
	ListEditGrants(targetURN string) ([]entities.EditPermission, error)
	ListGrantTargets() ([]string, error)
	DeleteGrantsForTarget(targetURN string) error

	// Singleton configuration records.
	GetSystemConfig() (*entities.SystemConfig, error)
	SetSystemConfig(c *entities.SystemConfig) error
	GetNodeMetadata() (*entities.NodeMetadata, error)
	SetNodeMetadata(m *entities.NodeMetadata) error
	GetTaxonomy() (*entities.TaxonomyConfig, error)
	SetTaxonomy(t *entities.TaxonomyConfig) error

	// Maintenance.
	GetStats() (*Stats, error)
	HasData() (bool, error)
	SeedSampleData() error
	ResetAll() error
}
