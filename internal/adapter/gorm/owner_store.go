package gorm

import (
	"context"

	"github.com/bornholm/snakebnb/internal/core/model"
	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// FindAccountByEmail implements port.Store.
func (s *Store) FindAccountByEmail(ctx context.Context, email string) (model.Owner, error) {
	var owner Owner

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := db.Preload("Snakes").Preload("Cages").
			First(&owner, "email = ?", email).Error
		if err != nil {
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

	return &wrappedOwner{&owner}, nil
}

// CreateAccount implements port.Store.
func (s *Store) CreateAccount(ctx context.Context, name, email string) (model.Owner, error) {
	owner := &Owner{
		ID:    string(model.NewOwnerID()),
		Name:  name,
		Email: email,
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		var count int64
		if err := db.Model(&Owner{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return errors.WithStack(err)
		}

		if count > 0 {
			return errors.Wrapf(port.ErrInvalidEntity, "email '%s' is already registered", email)
		}

		if err := db.Create(owner).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedOwner{owner}, nil
}
