package store

import (
	"errors"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/jmilbury/agentpress/internal/models"
)

// ErrNotFound is returned for lookups of records that do not exist.
var ErrNotFound = errors.New("record not found")

type OrganizationStore struct {
	db *badgerhold.Store
}

func (s *OrganizationStore) Create(org *models.Organization) error {
	count, err := s.db.Count(&models.Organization{}, badgerhold.Where("Name").Eq(org.Name))
	if err != nil {
		return fmt.Errorf("check organization name: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("organization %q already exists", org.Name)
	}
	if err := s.db.Insert(badgerhold.NextSequence(), org); err != nil {
		return fmt.Errorf("create organization: %w", err)
	}
	return nil
}

func (s *OrganizationStore) Get(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.Get(id, &org); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &org, nil
}

func (s *OrganizationStore) List() ([]models.Organization, error) {
	var orgs []models.Organization
	if err := s.db.Find(&orgs, nil); err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

func (s *OrganizationStore) Update(org *models.Organization) error {
	if err := s.db.Update(org.ID, org); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update organization: %w", err)
	}
	return nil
}

func (s *OrganizationStore) Delete(id uint64) error {
	if err := s.db.Delete(id, &models.Organization{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete organization: %w", err)
	}
	return nil
}
