package entities

import "time"

// SingletonKey is the fixed row key used for singleton configuration records.
const SingletonKey = "default"

// SystemConfig is the single mutable configuration record of a node.
type SystemConfig struct {
	SiteTitle         string    `json:"site_title"`
	SetupCompleted    bool      `json:"setup_completed"`
	AllowRegistration bool      `json:"allow_registration"`
	DurableDSN        string    `json:"durable_dsn,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NodeMetadata identifies this node instance across restarts.
type NodeMetadata struct {
	NodeID         string    `json:"node_id"`
	NodeName       string    `json:"node_name"`
	Version        string    `json:"version,omitempty"`
	FirstStartedAt time.Time `json:"first_started_at"`
}

// TaxonomyConfig holds the curated tag and content-warning vocabulary offered
// by the admin dashboard. Free-form values are still accepted on entities.
type TaxonomyConfig struct {
	PresetTags            []string  `json:"preset_tags,omitempty"`
	PresetContentWarnings []string  `json:"preset_content_warnings,omitempty"`
	UpdatedAt             time.Time `json:"updated_at"`
}
