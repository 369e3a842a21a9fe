package gorm

import (
	"context"
	"time"

	"github.com/bornholm/snakebnb/internal/core/model"
	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ClaimSlot implements port.Store.
//
// The guest fields are set by a single conditional update whose predicate
// includes the slot's availability. Two sessions racing on the same slot
// cannot both match the predicate, so at most one claim succeeds; the loser
// sees no affected row and gets port.ErrNoAvailableSlot.
func (s *Store) ClaimSlot(ctx context.Context, slotID model.SlotID, ownerID model.OwnerID, snakeID model.SnakeID, bookedAt time.Time) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		result := db.Model(&Slot{}).
			Where("id = ? AND guest_snake_id IS NULL", string(slotID)).
			Updates(map[string]any{
				"guest_owner_id": string(ownerID),
				"guest_snake_id": string(snakeID),
				"booked_at":      bookedAt,
			})
		if result.Error != nil {
			return errors.WithStack(result.Error)
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := db.Model(&Slot{}).Where("id = ?", string(slotID)).Count(&count).Error; err != nil {
				return errors.WithStack(err)
			}

			if count == 0 {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(port.ErrNoAvailableSlot)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// GetBookingsForOwner implements port.Store.
func (s *Store) GetBookingsForOwner(ctx context.Context, ownerID model.OwnerID) ([]port.OwnerBooking, error) {
	var slots []*Slot

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := db.Preload("Cage").
			Where("guest_owner_id = ?", string(ownerID)).
			Order("check_in ASC, id ASC").
			Find(&slots).Error
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	bookings := make([]port.OwnerBooking, 0, len(slots))
	for _, slot := range slots {
		bookings = append(bookings, port.OwnerBooking{
			Cage: &wrappedCage{slot.Cage},
			Slot: &wrappedSlot{slot},
		})
	}

	return bookings, nil
}
