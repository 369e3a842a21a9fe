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

// Slots are preloaded in declaration order. xid identifiers sort by creation
// time, so ordering on the primary key preserves the append order of the
// availability windows.
func preloadSlots(db *gorm.DB) *gorm.DB {
	return db.Order("slots.id ASC")
}

// GetCageByID implements port.Store.
func (s *Store) GetCageByID(ctx context.Context, id model.CageID) (model.Cage, error) {
	var cage Cage

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Preload("Slots", preloadSlots).First(&cage, "id = ?", string(id)).Error; err != nil {
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

	return &wrappedCage{&cage}, nil
}

// CreateCage implements port.Store.
//
// As with CreateSnake, the insert and the owner reference update share one
// transaction.
func (s *Store) CreateCage(ctx context.Context, ownerID model.OwnerID, attrs port.CageAttrs) (model.Cage, error) {
	cage := &Cage{
		ID:                   string(model.NewCageID()),
		OwnerID:              string(ownerID),
		Name:                 attrs.Name,
		Price:                attrs.Price,
		SquareMeters:         attrs.SquareMeters,
		IsCarpeted:           attrs.IsCarpeted,
		HasToys:              attrs.HasToys,
		AllowDangerousSnakes: attrs.AllowDangerousSnakes,
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		var owner Owner
		if err := db.First(&owner, "id = ?", string(ownerID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		if err := db.Create(cage).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedCage{cage}, nil
}

// GetCagesForOwner implements port.Store.
func (s *Store) GetCagesForOwner(ctx context.Context, ownerID model.OwnerID) ([]model.Cage, error) {
	var cages []*Cage

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := db.Preload("Slots", preloadSlots).
			Where("owner_id = ?", string(ownerID)).
			Order("id ASC").
			Find(&cages).Error
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	wrappedCages := make([]model.Cage, 0, len(cages))
	for _, cage := range cages {
		wrappedCages = append(wrappedCages, &wrappedCage{cage})
	}

	return wrappedCages, nil
}

// AddAvailableDate implements port.Store.
func (s *Store) AddAvailableDate(ctx context.Context, cageID model.CageID, start time.Time, days int) (model.Slot, error) {
	slot := &Slot{
		ID:       string(model.NewSlotID()),
		CageID:   string(cageID),
		CheckIn:  start,
		CheckOut: start.AddDate(0, 0, days),
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		var cage Cage
		if err := db.First(&cage, "id = ?", string(cageID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		if err := db.Create(slot).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedSlot{slot}, nil
}

// QueryCandidateCages implements port.Store.
//
// Candidates only need a slot containing the window, booked or not; slot-level
// availability is resolved by the matching engine on the preloaded slots.
func (s *Store) QueryCandidateCages(ctx context.Context, opts port.QueryCandidateCagesOptions) ([]model.Cage, error) {
	var cages []*Cage

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		query := db.Preload("Slots", preloadSlots).
			Where("square_meters >= ?", opts.MinSquareMeters).
			Where("EXISTS (SELECT 1 FROM slots WHERE slots.cage_id = cages.id AND slots.check_in <= ? AND slots.check_out >= ?)", opts.CheckIn, opts.CheckOut)

		if opts.DangerousAllowedOnly {
			query = query.Where("allow_dangerous_snakes = ?", true)
		}

		// The id tiebreak keeps cages tying on both keys in creation order
		// (xid sorts by creation time), so repeated queries on unchanged
		// state return identical results.
		if err := query.Order("price ASC, square_meters DESC, id ASC").Find(&cages).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	wrappedCages := make([]model.Cage, 0, len(cages))
	for _, cage := range cages {
		wrappedCages = append(wrappedCages, &wrappedCage{cage})
	}

	return wrappedCages, nil
}
