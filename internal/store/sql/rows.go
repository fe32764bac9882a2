package sql

// Row types: primary key plus the serialized entity document. The extra
// columns exist only to support indexed lookups and must be written together
// with the document.

type seriesRow struct {
	ID       string `gorm:"primaryKey;size:128"`
	Document []byte
}

func (seriesRow) TableName() string { return "series" }

type unitRow struct {
	ID       string `gorm:"primaryKey;size:128"`
	SeriesID string `gorm:"index;size:128"`
	Document []byte
}

func (unitRow) TableName() string { return "units" }

// pageSetRow holds a unit's whole page collection as one document.
type pageSetRow struct {
	UnitID   string `gorm:"primaryKey;size:128"`
	Document []byte
}

func (pageSetRow) TableName() string { return "unit_pages" }

// userRow materializes the lowercased username for case-insensitive lookups.
type userRow struct {
	ID       string `gorm:"primaryKey;size:128"`
	Username string `gorm:"uniqueIndex;size:100"`
	Document []byte
}

func (userRow) TableName() string { return "users" }

type passkeyRow struct {
	ID           string `gorm:"primaryKey;size:128"`
	UserID       string `gorm:"index;size:128"`
	CredentialID string `gorm:"uniqueIndex;size:512"`
	Document     []byte
}

func (passkeyRow) TableName() string { return "passkeys" }

// progressRow is keyed "user|series"; the split columns support the library
// and cascade-delete lookups.
type progressRow struct {
	ID       string `gorm:"primaryKey;size:256"`
	UserID   string `gorm:"index;size:128"`
	SeriesID string `gorm:"index;size:128"`
	Document []byte
}

func (progressRow) TableName() string { return "reading_progress" }

type permissionRow struct {
	TargetURN string `gorm:"primaryKey;size:256"`
	UserURN   string `gorm:"primaryKey;size:256"`
	Document  []byte
}

func (permissionRow) TableName() string { return "edit_permissions" }

// voteRow is keyed "user|target".
type voteRow struct {
	ID        string `gorm:"primaryKey;size:256"`
	TargetURN string `gorm:"index;size:256"`
	Document  []byte
}

func (voteRow) TableName() string { return "votes" }

type commentRow struct {
	ID        string `gorm:"primaryKey;size:128"`
	TargetURN string `gorm:"index;size:256"`
	Document  []byte
}

func (commentRow) TableName() string { return "comments" }

type collectionRow struct {
	ID       string `gorm:"primaryKey;size:128"`
	UserID   string `gorm:"index;size:128"`
	Document []byte
}

func (collectionRow) TableName() string { return "collections" }

type reportRow struct {
	ID       string `gorm:"primaryKey;size:128"`
	Document []byte
}

func (reportRow) TableName() string { return "reports" }

// Configuration singletons use the fixed literal key "default".

type systemConfigRow struct {
	Key      string `gorm:"primaryKey;size:32"`
	Document []byte
}

func (systemConfigRow) TableName() string { return "system_config" }

type nodeMetadataRow struct {
	Key      string `gorm:"primaryKey;size:32"`
	Document []byte
}

func (nodeMetadataRow) TableName() string { return "node_metadata" }

type taxonomyRow struct {
	Key      string `gorm:"primaryKey;size:32"`
	Document []byte
}

func (taxonomyRow) TableName() string { return "taxonomy_config" }
