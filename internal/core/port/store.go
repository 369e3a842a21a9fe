package port

import (
	"context"
	"time"

	"github.com/bornholm/snakebnb/internal/core/model"
)

type Store interface {
	// FindAccountByEmail returns ErrNotFound when no account matches. The
	// lookup is case-sensitive as stored; callers normalize beforehand.
	FindAccountByEmail(ctx context.Context, email string) (model.Owner, error)

	CreateAccount(ctx context.Context, name, email string) (model.Owner, error)

	GetSnakeByID(ctx context.Context, id model.SnakeID) (model.Snake, error)
	CreateSnake(ctx context.Context, ownerID model.OwnerID, name, species string, length float64, isVenomous bool) (model.Snake, error)
	GetSnakesForOwner(ctx context.Context, ownerID model.OwnerID) ([]model.Snake, error)

	GetCageByID(ctx context.Context, id model.CageID) (model.Cage, error)
	CreateCage(ctx context.Context, ownerID model.OwnerID, attrs CageAttrs) (model.Cage, error)
	GetCagesForOwner(ctx context.Context, ownerID model.OwnerID) ([]model.Cage, error)

	// AddAvailableDate appends an unbooked [start, start+days) slot to the
	// cage and returns it.
	AddAvailableDate(ctx context.Context, cageID model.CageID, start time.Time, days int) (model.Slot, error)

	// QueryCandidateCages returns cages matching the size and safety filters
	// that have at least one slot containing the requested window, booked or
	// not, ordered by ascending price then descending square meters. Slot-level
	// availability is the caller's concern.
	QueryCandidateCages(ctx context.Context, opts QueryCandidateCagesOptions) ([]model.Cage, error)

	// ClaimSlot books the slot for the given guest as a single conditional
	// update: the guest fields are set only where the slot is still free.
	// Returns ErrNoAvailableSlot when the slot was claimed concurrently or is
	// already booked.
	ClaimSlot(ctx context.Context, slotID model.SlotID, ownerID model.OwnerID, snakeID model.SnakeID, bookedAt time.Time) error

	// GetBookingsForOwner returns every booked slot referencing the owner as
	// guest, across all cages, paired with its cage.
	GetBookingsForOwner(ctx context.Context, ownerID model.OwnerID) ([]OwnerBooking, error)
}

type CageAttrs struct {
	Name                 string
	Price                float64
	SquareMeters         float64
	IsCarpeted           bool
	HasToys              bool
	AllowDangerousSnakes bool
}

type QueryCandidateCagesOptions struct {
	MinSquareMeters float64
	// DangerousAllowedOnly restricts candidates to cages accepting dangerous
	// snakes.
	DangerousAllowedOnly bool
	CheckIn              time.Time
	CheckOut             time.Time
}

type OwnerBooking struct {
	Cage model.Cage
	Slot model.Slot
}
