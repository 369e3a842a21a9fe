package memory

import (
	"time"

	"github.com/bornholm/snakebnb/internal/core/model"
)

type ownerRecord struct {
	ID    model.OwnerID
	Name  string
	Email string

	SnakeIDs []model.SnakeID
	CageIDs  []model.CageID
}

func (r *ownerRecord) restore() *model.BaseOwner {
	return model.RestoreOwner(r.ID, r.Name, r.Email,
		append([]model.SnakeID(nil), r.SnakeIDs...),
		append([]model.CageID(nil), r.CageIDs...),
	)
}

type snakeRecord struct {
	ID      model.SnakeID
	OwnerID model.OwnerID

	Name       string
	Species    string
	Length     float64
	IsVenomous bool
}

func (r *snakeRecord) restore() *model.BaseSnake {
	return model.RestoreSnake(r.ID, r.Name, r.Species, r.Length, r.IsVenomous)
}

type cageRecord struct {
	ID      model.CageID
	OwnerID model.OwnerID

	Name                 string
	Price                float64
	SquareMeters         float64
	IsCarpeted           bool
	HasToys              bool
	AllowDangerousSnakes bool

	Slots []*slotRecord
}

func (r *cageRecord) restore() *model.BaseCage {
	slots := make([]model.Slot, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, s.restore())
	}

	return model.RestoreCage(r.ID, r.Name, r.Price, r.SquareMeters, r.IsCarpeted, r.HasToys, r.AllowDangerousSnakes, slots...)
}

type slotRecord struct {
	ID     model.SlotID
	CageID model.CageID

	CheckIn  time.Time
	CheckOut time.Time

	GuestOwnerID *model.OwnerID
	GuestSnakeID *model.SnakeID
	BookedAt     *time.Time
}

func (r *slotRecord) restore() *model.BaseSlot {
	return model.RestoreSlot(r.ID, r.CheckIn, r.CheckOut, r.GuestOwnerID, r.GuestSnakeID, r.BookedAt)
}
