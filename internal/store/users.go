package store

import (
	"errors"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/jmilbury/agentpress/internal/models"
)

type UserStore struct {
	db *badgerhold.Store
}

func (s *UserStore) Create(user *models.User) error {
	if err := s.db.Insert(badgerhold.NextSequence(), user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserStore) Get(id uint64) (*models.User, error) {
	var user models.User
	if err := s.db.Get(id, &user); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users, nil); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserStore) Update(user *models.User) error {
	if err := s.db.Update(user.ID, user); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *UserStore) Delete(id uint64) error {
	if err := s.db.Delete(id, &models.User{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
