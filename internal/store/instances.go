package store

import (
	"errors"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/jmilbury/agentpress/internal/models"
)

type InstanceStore struct {
	db *badgerhold.Store
}

func (s *InstanceStore) Create(instance *models.AgentInstance) error {
	if err := s.db.Insert(badgerhold.NextSequence(), instance); err != nil {
		return fmt.Errorf("create agent instance: %w", err)
	}
	return nil
}

func (s *InstanceStore) Get(id uint64) (*models.AgentInstance, error) {
	var instance models.AgentInstance
	if err := s.db.Get(id, &instance); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get agent instance: %w", err)
	}
	return &instance, nil
}

func (s *InstanceStore) List() ([]models.AgentInstance, error) {
	var instances []models.AgentInstance
	if err := s.db.Find(&instances, nil); err != nil {
		return nil, fmt.Errorf("list agent instances: %w", err)
	}
	return instances, nil
}

// ListBySchedule returns instances whose configuration requests the given
// generation schedule (e.g. "daily").
func (s *InstanceStore) ListBySchedule(schedule string) ([]models.AgentInstance, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var instances []models.AgentInstance
	for _, instance := range all {
		if instance.Configuration.Schedule == schedule {
			instances = append(instances, instance)
		}
	}
	return instances, nil
}

func (s *InstanceStore) Update(instance *models.AgentInstance) error {
	if err := s.db.Update(instance.ID, instance); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update agent instance: %w", err)
	}
	return nil
}

func (s *InstanceStore) Delete(id uint64) error {
	if err := s.db.Delete(id, &models.AgentInstance{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete agent instance: %w", err)
	}
	return nil
}
