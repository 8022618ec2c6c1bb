package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-feedback/internal/config"
	"github.com/MKhiriev/go-feedback/internal/logger"
)

// Storages groups the repositories and the transaction runner that share a
// single database connection.
type Storages struct {
	UserRepository     UserRepository
	FeedbackRepository FeedbackRepository
	Transactor         Transactor

	db *DB
}

// NewStorages connects to the database named by cfg, applies migrations and
// builds the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, err
	}

	return newStoragesFromDB(db, log), nil
}

func newStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		FeedbackRepository: NewFeedbackRepository(db, log),
		Transactor:         db,
		db:                 db,
	}
}

// Close closes the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
