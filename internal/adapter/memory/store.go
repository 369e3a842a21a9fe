package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bornholm/snakebnb/internal/core/model"
	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/pkg/errors"
)

// Store is a mutex-guarded in-memory implementation of port.Store. Reads
// rehydrate immutable model values so that callers never observe partially
// applied writes.
//
// Entity creation appends the new id to the owner's reference set in the same
// critical section, so the two-write sequence of the store contract is atomic
// here.
type Store struct {
	mu     sync.RWMutex
	owners map[model.OwnerID]*ownerRecord
	snakes map[model.SnakeID]*snakeRecord
	cages  map[model.CageID]*cageRecord
	slots  map[model.SlotID]*slotRecord
}

// FindAccountByEmail implements port.Store.
func (s *Store) FindAccountByEmail(ctx context.Context, email string) (model.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.owners {
		if o.Email == email {
			return o.restore(), nil
		}
	}

	return nil, errors.WithStack(port.ErrNotFound)
}

// CreateAccount implements port.Store.
func (s *Store) CreateAccount(ctx context.Context, name, email string) (model.Owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.owners {
		if o.Email == email {
			return nil, errors.Wrapf(port.ErrInvalidEntity, "email '%s' is already registered", email)
		}
	}

	owner := model.NewOwner(name, email)

	s.owners[owner.ID()] = &ownerRecord{
		ID:    owner.ID(),
		Name:  name,
		Email: email,
	}

	return owner, nil
}

// GetSnakeByID implements port.Store.
func (s *Store) GetSnakeByID(ctx context.Context, id model.SnakeID) (model.Snake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snake, exists := s.snakes[id]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return snake.restore(), nil
}

// CreateSnake implements port.Store.
func (s *Store) CreateSnake(ctx context.Context, ownerID model.OwnerID, name, species string, length float64, isVenomous bool) (model.Snake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, exists := s.owners[ownerID]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	snake := model.NewSnake(name, species, length, isVenomous)

	s.snakes[snake.ID()] = &snakeRecord{
		ID:         snake.ID(),
		OwnerID:    ownerID,
		Name:       name,
		Species:    species,
		Length:     length,
		IsVenomous: isVenomous,
	}

	owner.SnakeIDs = append(owner.SnakeIDs, snake.ID())

	return snake, nil
}

// GetSnakesForOwner implements port.Store.
func (s *Store) GetSnakesForOwner(ctx context.Context, ownerID model.OwnerID) ([]model.Snake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner, exists := s.owners[ownerID]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	snakes := make([]model.Snake, 0, len(owner.SnakeIDs))
	for _, id := range owner.SnakeIDs {
		if snake, exists := s.snakes[id]; exists {
			snakes = append(snakes, snake.restore())
		}
	}

	return snakes, nil
}

// GetCageByID implements port.Store.
func (s *Store) GetCageByID(ctx context.Context, id model.CageID) (model.Cage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cage, exists := s.cages[id]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return cage.restore(), nil
}

// CreateCage implements port.Store.
func (s *Store) CreateCage(ctx context.Context, ownerID model.OwnerID, attrs port.CageAttrs) (model.Cage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, exists := s.owners[ownerID]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	cage := model.NewCage(attrs.Name, attrs.Price, attrs.SquareMeters, attrs.IsCarpeted, attrs.HasToys, attrs.AllowDangerousSnakes)

	s.cages[cage.ID()] = &cageRecord{
		ID:                   cage.ID(),
		OwnerID:              ownerID,
		Name:                 attrs.Name,
		Price:                attrs.Price,
		SquareMeters:         attrs.SquareMeters,
		IsCarpeted:           attrs.IsCarpeted,
		HasToys:              attrs.HasToys,
		AllowDangerousSnakes: attrs.AllowDangerousSnakes,
	}

	owner.CageIDs = append(owner.CageIDs, cage.ID())

	return cage, nil
}

// GetCagesForOwner implements port.Store.
func (s *Store) GetCagesForOwner(ctx context.Context, ownerID model.OwnerID) ([]model.Cage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner, exists := s.owners[ownerID]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	cages := make([]model.Cage, 0, len(owner.CageIDs))
	for _, id := range owner.CageIDs {
		if cage, exists := s.cages[id]; exists {
			cages = append(cages, cage.restore())
		}
	}

	return cages, nil
}

// AddAvailableDate implements port.Store.
func (s *Store) AddAvailableDate(ctx context.Context, cageID model.CageID, start time.Time, days int) (model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cage, exists := s.cages[cageID]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	slot := model.NewSlot(start, start.AddDate(0, 0, days))

	record := &slotRecord{
		ID:       slot.ID(),
		CageID:   cageID,
		CheckIn:  slot.CheckIn(),
		CheckOut: slot.CheckOut(),
	}

	cage.Slots = append(cage.Slots, record)
	s.slots[record.ID] = record

	return slot, nil
}

// QueryCandidateCages implements port.Store.
func (s *Store) QueryCandidateCages(ctx context.Context, opts port.QueryCandidateCagesOptions) ([]model.Cage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]*cageRecord, 0)
	for _, cage := range s.cages {
		if cage.SquareMeters < opts.MinSquareMeters {
			continue
		}

		if opts.DangerousAllowedOnly && !cage.AllowDangerousSnakes {
			continue
		}

		containing := false
		for _, slot := range cage.Slots {
			if !slot.CheckIn.After(opts.CheckIn) && !slot.CheckOut.Before(opts.CheckOut) {
				containing = true
				break
			}
		}

		if !containing {
			continue
		}

		candidates = append(candidates, cage)
	}

	// The id tiebreak pins down the order of cages tying on both keys: map
	// iteration order must not leak into the results. xid sorts by creation
	// time, so ties come back in creation order.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Price != candidates[j].Price {
			return candidates[i].Price < candidates[j].Price
		}

		if candidates[i].SquareMeters != candidates[j].SquareMeters {
			return candidates[i].SquareMeters > candidates[j].SquareMeters
		}

		return candidates[i].ID < candidates[j].ID
	})

	cages := make([]model.Cage, 0, len(candidates))
	for _, c := range candidates {
		cages = append(cages, c.restore())
	}

	return cages, nil
}

// ClaimSlot implements port.Store.
func (s *Store) ClaimSlot(ctx context.Context, slotID model.SlotID, ownerID model.OwnerID, snakeID model.SnakeID, bookedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, exists := s.slots[slotID]
	if !exists {
		return errors.WithStack(port.ErrNotFound)
	}

	if slot.GuestSnakeID != nil {
		return errors.WithStack(port.ErrNoAvailableSlot)
	}

	slot.GuestOwnerID = &ownerID
	slot.GuestSnakeID = &snakeID
	slot.BookedAt = &bookedAt

	return nil
}

// GetBookingsForOwner implements port.Store.
func (s *Store) GetBookingsForOwner(ctx context.Context, ownerID model.OwnerID) ([]port.OwnerBooking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]port.OwnerBooking, 0)
	for _, cage := range s.cages {
		for _, slot := range cage.Slots {
			if slot.GuestOwnerID == nil || *slot.GuestOwnerID != ownerID {
				continue
			}

			bookings = append(bookings, port.OwnerBooking{
				Cage: cage.restore(),
				Slot: slot.restore(),
			})
		}
	}

	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].Slot.CheckIn().Equal(bookings[j].Slot.CheckIn()) {
			return bookings[i].Slot.CheckIn().Before(bookings[j].Slot.CheckIn())
		}

		return bookings[i].Slot.ID() < bookings[j].Slot.ID()
	})

	return bookings, nil
}

var _ port.Store = &Store{}

func NewStore() *Store {
	return &Store{
		owners: make(map[model.OwnerID]*ownerRecord),
		snakes: make(map[model.SnakeID]*snakeRecord),
		cages:  make(map[model.CageID]*cageRecord),
		slots:  make(map[model.SlotID]*slotRecord),
	}
}
