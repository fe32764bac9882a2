package entities

import "time"

type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeText  MediaType = "text"
	MediaTypeVideo MediaType = "video"
)

type SeriesStatus string

const (
	SeriesStatusOngoing   SeriesStatus = "ongoing"
	SeriesStatusCompleted SeriesStatus = "completed"
	SeriesStatusHiatus    SeriesStatus = "hiatus"
	SeriesStatusDropped   SeriesStatus = "dropped"
)

type ReadingDirection string

const (
	ReadingDirectionLTR     ReadingDirection = "ltr"
	ReadingDirectionRTL     ReadingDirection = "rtl"
	ReadingDirectionVert    ReadingDirection = "vertical"
	ReadingDirectionWebtoon ReadingDirection = "webtoon"
)

// Series is the top-level library entry. Tags, Authors, Scanlators and
// ContentWarnings are aggregated from its units; AllowedEditors is a
// denormalized cache of the edit-permission grants for this series.
type Series struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	MediaType        MediaType        `json:"media_type"`
	Tags             []string         `json:"tags,omitempty"`
	ContentWarnings  []string         `json:"content_warnings,omitempty"`
	Authors          []string         `json:"authors,omitempty"`
	Scanlators       []string         `json:"scanlators,omitempty"`
	ReadingDirection ReadingDirection `json:"reading_direction,omitempty"`
	Status           SeriesStatus     `json:"status,omitempty"`
	CoverAsset       string           `json:"cover_asset,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	CreatedBy        string           `json:"created_by,omitempty"`
	AllowedEditors   []string         `json:"allowed_editors,omitempty"`
}

// Unit is a chapter/volume/episode of a series. UnitNumber is real-valued so
// a unit can be inserted between two existing ones (10.5 between 10 and 11).
type Unit struct {
	ID              string    `json:"id"`
	SeriesID        string    `json:"series_id"`
	UnitNumber      float64   `json:"unit_number"`
	Title           string    `json:"title,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	ContentWarnings []string  `json:"content_warnings,omitempty"`
	Authors         []string  `json:"authors,omitempty"`
	Scanlators      []string  `json:"scanlators,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	CreatedBy       string    `json:"created_by,omitempty"`
	AllowedEditors  []string  `json:"allowed_editors,omitempty"`
}

// Page references one displayable asset of a unit. PageNumber is 1-based and
// unique within the unit.
type Page struct {
	UnitID     string `json:"unit_id"`
	PageNumber int    `json:"page_number"`
	AssetID    string `json:"asset_id"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
}
