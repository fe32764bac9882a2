package sql

import (
	"gorm.io/gorm"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
)

// The configuration singletons are one-row tables under the fixed literal
// key. Reads before initial seeding return nil like any other missing row.

func (s *Store) GetSystemConfig() (*entities.SystemConfig, error) {
	var row systemConfigRow
	err := s.db.Where("key = ?", entities.SingletonKey).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.SystemConfig](row.Document)
}

func (s *Store) SetSystemConfig(c *entities.SystemConfig) error {
	doc, err := marshalDoc(c)
	if err != nil {
		return err
	}
	return s.db.Save(&systemConfigRow{Key: entities.SingletonKey, Document: doc}).Error
}

func (s *Store) GetNodeMetadata() (*entities.NodeMetadata, error) {
	var row nodeMetadataRow
	err := s.db.Where("key = ?", entities.SingletonKey).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.NodeMetadata](row.Document)
}

func (s *Store) SetNodeMetadata(m *entities.NodeMetadata) error {
	doc, err := marshalDoc(m)
	if err != nil {
		return err
	}
	return s.db.Save(&nodeMetadataRow{Key: entities.SingletonKey, Document: doc}).Error
}

func (s *Store) GetTaxonomy() (*entities.TaxonomyConfig, error) {
	var row taxonomyRow
	err := s.db.Where("key = ?", entities.SingletonKey).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.TaxonomyConfig](row.Document)
}

func (s *Store) SetTaxonomy(t *entities.TaxonomyConfig) error {
	doc, err := marshalDoc(t)
	if err != nil {
		return err
	}
	return s.db.Save(&taxonomyRow{Key: entities.SingletonKey, Document: doc}).Error
}
