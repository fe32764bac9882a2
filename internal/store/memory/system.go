package memory

import (
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
)

// The three configuration singletons live in single-entry collections under
// the fixed key, mirroring the durable backend's one-row tables. There is no
// ambient global state.

func (s *Store) GetSystemConfig() (*entities.SystemConfig, error) {
	v, ok := s.system.get(entities.SingletonKey)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *Store) SetSystemConfig(c *entities.SystemConfig) error {
	s.system.put(entities.SingletonKey, *c)
	return nil
}

func (s *Store) GetNodeMetadata() (*entities.NodeMetadata, error) {
	v, ok := s.node.get(entities.SingletonKey)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *Store) SetNodeMetadata(m *entities.NodeMetadata) error {
	s.node.put(entities.SingletonKey, *m)
	return nil
}

func (s *Store) GetTaxonomy() (*entities.TaxonomyConfig, error) {
	v, ok := s.taxonomy.get(entities.SingletonKey)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *Store) SetTaxonomy(t *entities.TaxonomyConfig) error {
	s.taxonomy.put(entities.SingletonKey, *t)
	return nil
}
