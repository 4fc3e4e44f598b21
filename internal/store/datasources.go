package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/jmilbury/agentpress/internal/models"
)

type DataSourceStore struct {
	db *badgerhold.Store
}

func (s *DataSourceStore) Create(ds *models.DataSource) error {
	if ds.ID == "" {
		ds.ID = uuid.NewString()
	}
	if err := s.db.Insert(ds.ID, ds); err != nil {
		return fmt.Errorf("create data source: %w", err)
	}
	return nil
}

func (s *DataSourceStore) Get(id string) (*models.DataSource, error) {
	var ds models.DataSource
	if err := s.db.Get(id, &ds); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get data source: %w", err)
	}
	return &ds, nil
}

func (s *DataSourceStore) List() ([]models.DataSource, error) {
	var sources []models.DataSource
	if err := s.db.Find(&sources, nil); err != nil {
		return nil, fmt.Errorf("list data sources: %w", err)
	}
	return sources, nil
}

func (s *DataSourceStore) Update(ds *models.DataSource) error {
	if err := s.db.Update(ds.ID, ds); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update data source: %w", err)
	}
	return nil
}

func (s *DataSourceStore) Delete(id string) error {
	if err := s.db.Delete(id, &models.DataSource{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete data source: %w", err)
	}
	return nil
}
