package service

import (
	"context"
	"strings"
	"time"

	"github.com/bornholm/snakebnb/internal/core/model"
	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/pkg/errors"
)

// Entity creation goes through the manager so that range and schema
// constraints are checked before anything is written.

// CreateAccount implements port.Store.
func (m *BookingManager) CreateAccount(ctx context.Context, name, email string) (model.Owner, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.Wrap(port.ErrInvalidEntity, "name is required")
	}

	if !strings.Contains(email, "@") {
		return nil, errors.Wrapf(port.ErrInvalidEntity, "'%s' is not a valid email", email)
	}

	owner, err := m.Store.CreateAccount(ctx, name, email)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return owner, nil
}

// CreateSnake implements port.Store.
func (m *BookingManager) CreateSnake(ctx context.Context, ownerID model.OwnerID, name, species string, length float64, isVenomous bool) (model.Snake, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.Wrap(port.ErrInvalidEntity, "name is required")
	}

	if strings.TrimSpace(species) == "" {
		return nil, errors.Wrap(port.ErrInvalidEntity, "species is required")
	}

	if length <= 0 {
		return nil, errors.Wrapf(port.ErrInvalidEntity, "length must be positive, got %g", length)
	}

	snake, err := m.Store.CreateSnake(ctx, ownerID, name, species, length, isVenomous)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return snake, nil
}

// CreateCage implements port.Store.
func (m *BookingManager) CreateCage(ctx context.Context, ownerID model.OwnerID, attrs port.CageAttrs) (model.Cage, error) {
	if strings.TrimSpace(attrs.Name) == "" {
		return nil, errors.Wrap(port.ErrInvalidEntity, "name is required")
	}

	if attrs.Price <= 0 {
		return nil, errors.Wrapf(port.ErrInvalidEntity, "price must be positive, got %g", attrs.Price)
	}

	if attrs.SquareMeters <= 0 {
		return nil, errors.Wrapf(port.ErrInvalidEntity, "square meters must be positive, got %g", attrs.SquareMeters)
	}

	cage, err := m.Store.CreateCage(ctx, ownerID, attrs)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return cage, nil
}

// AddAvailableDate implements port.Store.
func (m *BookingManager) AddAvailableDate(ctx context.Context, cageID model.CageID, start time.Time, days int) (model.Slot, error) {
	if days <= 0 {
		return nil, errors.Wrapf(port.ErrInvalidEntity, "days must be positive, got %d", days)
	}

	slot, err := m.Store.AddAvailableDate(ctx, cageID, start, days)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return slot, nil
}
