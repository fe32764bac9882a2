package entities

import "time"

// Collection is a user-curated list of series.
type Collection struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	SeriesIDs []string  `json:"series_ids,omitempty"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	TargetURN string    `json:"target_urn"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Vote records one user's up/down vote on a target. A (user, target) pair
// holds at most one vote; setting a new value replaces the old one.
type Vote struct {
	UserID    string    `json:"user_id"`
	TargetURN string    `json:"target_urn"`
	Value     int       `json:"value"` // +1 or -1
	CreatedAt time.Time `json:"created_at"`
}

type ReportStatus string

const (
	ReportStatusOpen     ReportStatus = "open"
	ReportStatusResolved ReportStatus = "resolved"
	ReportStatusRejected ReportStatus = "rejected"
)

type Report struct {
	ID         string       `json:"id"`
	TargetURN  string       `json:"target_urn"`
	ReporterID string       `json:"reporter_id"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}
