// Package store persists all record types in an embedded badgerhold
// database. Write serialization per record is handled by badger
// transactions; callers get plain CRUD plus the queries the read APIs need.
package store

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/timshannon/badgerhold/v4"

	"github.com/jmilbury/agentpress/internal/config"
)

// Store owns the database connection and exposes per-record stores.
type Store struct {
	db *badgerhold.Store

	Organizations *OrganizationStore
	Users         *UserStore
	DataSources   *DataSourceStore
	Instances     *InstanceStore
	Articles      *ArticleStore
}

func Open(cfg config.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = cfg.Path
	options.ValueDir = cfg.Path
	options.Logger = nil

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	slog.Info("store opened", "path", cfg.Path)

	s := &Store{db: db}
	s.Organizations = &OrganizationStore{db: db}
	s.Users = &UserStore{db: db}
	s.DataSources = &DataSourceStore{db: db}
	s.Instances = &InstanceStore{db: db}
	s.Articles = &ArticleStore{db: db}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
