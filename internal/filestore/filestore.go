// Package filestore declares the contract of the file-based series/unit
// store. That store is the system of record for series and unit content; the
// volatile and durable backends never hold them when a file store is wired.
// The implementation lives outside this module and is injected into the
// backend switcher.
package filestore

import "github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"

type Store interface {
	Initialize() error

	ListSeries() ([]entities.Series, error)
	GetSeries(id string) (*entities.Series, error)
	SaveSeries(s *entities.Series) error
	DeleteSeries(id string) error

	ListUnits(seriesID string) ([]entities.Unit, error)
	GetUnit(id string) (*entities.Unit, error)
	SaveUnit(u *entities.Unit) error
	DeleteUnit(id string) error
}
