package entities

import "time"

// ReadingProgress is keyed by (user, series). Upserts are last-write-wins by
// the client-supplied UpdatedAt, not by arrival order, so offline readers can
// sync stale updates without clobbering newer state.
type ReadingProgress struct {
	UserID     string    `json:"user_id"`
	SeriesID   string    `json:"series_id"`
	UnitID     string    `json:"unit_id,omitempty"`
	PageNumber int       `json:"page_number,omitempty"`
	Percent    float64   `json:"percent,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
