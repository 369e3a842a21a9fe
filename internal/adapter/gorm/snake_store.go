package gorm

import (
	"context"

	"github.com/bornholm/snakebnb/internal/core/model"
	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetSnakeByID implements port.Store.
func (s *Store) GetSnakeByID(ctx context.Context, id model.SnakeID) (model.Snake, error) {
	var snake Snake

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&snake, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedSnake{&snake}, nil
}

// CreateSnake implements port.Store.
//
// The entity insert and the owner reference update run in the same
// transaction, so no orphan snake can be left behind by a failure in between.
func (s *Store) CreateSnake(ctx context.Context, ownerID model.OwnerID, name, species string, length float64, isVenomous bool) (model.Snake, error) {
	snake := &Snake{
		ID:         string(model.NewSnakeID()),
		OwnerID:    string(ownerID),
		Name:       name,
		Species:    species,
		Length:     length,
		IsVenomous: isVenomous,
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		var owner Owner
		if err := db.First(&owner, "id = ?", string(ownerID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		if err := db.Create(snake).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedSnake{snake}, nil
}

// GetSnakesForOwner implements port.Store.
func (s *Store) GetSnakesForOwner(ctx context.Context, ownerID model.OwnerID) ([]model.Snake, error) {
	var snakes []*Snake

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Where("owner_id = ?", string(ownerID)).Order("id ASC").Find(&snakes).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	wrappedSnakes := make([]model.Snake, 0, len(snakes))
	for _, snake := range snakes {
		wrappedSnakes = append(wrappedSnakes, &wrappedSnake{snake})
	}

	return wrappedSnakes, nil
}
