package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/snakebnb/internal/core/model"
	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/bornholm/snakebnb/internal/metrics"
	"github.com/pkg/errors"
)

// BookingManager exposes the availability matching and booking commit
// operations on top of a store.
type BookingManager struct {
	port.Store
}

// FindAvailableCages returns the cages able to host the given snake over the
// requested [checkin, checkout) window, ordered by ascending price then
// descending square meters.
//
// The caller is responsible for checkin < checkout.
//
// A cage is appended once per free containing slot, so a cage with several
// qualifying slots appears several times in the result. An empty result is a
// normal outcome, not an error.
func (m *BookingManager) FindAvailableCages(ctx context.Context, checkin, checkout time.Time, snake model.Snake) ([]model.Cage, error) {
	metrics.TotalSearches.Add(1)

	candidates, err := m.Store.QueryCandidateCages(ctx, port.QueryCandidateCagesOptions{
		MinSquareMeters:      snake.Length() / 4,
		DangerousAllowedOnly: snake.IsVenomous(),
		CheckIn:              checkin,
		CheckOut:             checkout,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	matching := make([]model.Cage, 0, len(candidates))
	for _, c := range candidates {
		for _, s := range c.Slots() {
			if model.SlotContains(s, checkin, checkout) && model.SlotAvailable(s) {
				matching = append(matching, c)
			}
		}
	}

	return matching, nil
}

// BookCage claims the first free slot of the given cage snapshot containing
// the requested window. The claim itself is a conditional update on the
// store: if the slot was booked by a concurrent session since the snapshot
// was read, the commit fails with port.ErrNoAvailableSlot and no state is
// changed.
func (m *BookingManager) BookCage(ctx context.Context, owner model.Owner, snake model.Snake, cage model.Cage, checkin, checkout time.Time) error {
	var slot model.Slot
	for _, s := range cage.Slots() {
		if model.SlotContains(s, checkin, checkout) && model.SlotAvailable(s) {
			slot = s
			break
		}
	}

	if slot == nil {
		metrics.TotalBookingConflicts.Add(1)
		return errors.WithStack(port.ErrNoAvailableSlot)
	}

	if err := m.Store.ClaimSlot(ctx, slot.ID(), owner.ID(), snake.ID(), time.Now()); err != nil {
		if errors.Is(err, port.ErrNoAvailableSlot) {
			metrics.TotalBookingConflicts.Add(1)
		}

		return errors.WithStack(err)
	}

	metrics.TotalBookings.Add(1)

	slog.DebugContext(ctx, "slot claimed",
		slog.String("cage_id", string(cage.ID())),
		slog.String("slot_id", string(slot.ID())),
		slog.String("guest_snake_id", string(snake.ID())),
	)

	return nil
}

func NewBookingManager(store port.Store) *BookingManager {
	return &BookingManager{
		Store: store,
	}
}
