package gorm

import (
	"time"

	"github.com/bornholm/snakebnb/internal/core/model"
)

type Owner struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Name  string
	Email string `gorm:"unique;not null;index"`

	Snakes []*Snake `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Cages  []*Cage  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
}

type wrappedOwner struct {
	o *Owner
}

// ID implements model.Owner.
func (w *wrappedOwner) ID() model.OwnerID {
	return model.OwnerID(w.o.ID)
}

// Name implements model.Owner.
func (w *wrappedOwner) Name() string {
	return w.o.Name
}

// Email implements model.Owner.
func (w *wrappedOwner) Email() string {
	return w.o.Email
}

// SnakeIDs implements model.Owner.
func (w *wrappedOwner) SnakeIDs() []model.SnakeID {
	ids := make([]model.SnakeID, 0, len(w.o.Snakes))
	for _, s := range w.o.Snakes {
		ids = append(ids, model.SnakeID(s.ID))
	}
	return ids
}

// CageIDs implements model.Owner.
func (w *wrappedOwner) CageIDs() []model.CageID {
	ids := make([]model.CageID, 0, len(w.o.Cages))
	for _, c := range w.o.Cages {
		ids = append(ids, model.CageID(c.ID))
	}
	return ids
}

var _ model.Owner = &wrappedOwner{}

type Snake struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Owner   *Owner
	OwnerID string `gorm:"index;not null"`

	Name       string
	Species    string
	Length     float64
	IsVenomous bool
}

type wrappedSnake struct {
	s *Snake
}

// ID implements model.Snake.
func (w *wrappedSnake) ID() model.SnakeID {
	return model.SnakeID(w.s.ID)
}

// Name implements model.Snake.
func (w *wrappedSnake) Name() string {
	return w.s.Name
}

// Species implements model.Snake.
func (w *wrappedSnake) Species() string {
	return w.s.Species
}

// Length implements model.Snake.
func (w *wrappedSnake) Length() float64 {
	return w.s.Length
}

// IsVenomous implements model.Snake.
func (w *wrappedSnake) IsVenomous() bool {
	return w.s.IsVenomous
}

var _ model.Snake = &wrappedSnake{}

type Cage struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Owner   *Owner
	OwnerID string `gorm:"index;not null"`

	Name                 string
	Price                float64 `gorm:"index"`
	SquareMeters         float64 `gorm:"index"`
	IsCarpeted           bool
	HasToys              bool
	AllowDangerousSnakes bool

	Slots []*Slot `gorm:"foreignKey:CageID;constraint:OnDelete:CASCADE;"`
}

type wrappedCage struct {
	c *Cage
}

// ID implements model.Cage.
func (w *wrappedCage) ID() model.CageID {
	return model.CageID(w.c.ID)
}

// Name implements model.Cage.
func (w *wrappedCage) Name() string {
	return w.c.Name
}

// Price implements model.Cage.
func (w *wrappedCage) Price() float64 {
	return w.c.Price
}

// SquareMeters implements model.Cage.
func (w *wrappedCage) SquareMeters() float64 {
	return w.c.SquareMeters
}

// IsCarpeted implements model.Cage.
func (w *wrappedCage) IsCarpeted() bool {
	return w.c.IsCarpeted
}

// HasToys implements model.Cage.
func (w *wrappedCage) HasToys() bool {
	return w.c.HasToys
}

// AllowDangerousSnakes implements model.Cage.
func (w *wrappedCage) AllowDangerousSnakes() bool {
	return w.c.AllowDangerousSnakes
}

// Slots implements model.Cage.
func (w *wrappedCage) Slots() []model.Slot {
	slots := make([]model.Slot, 0, len(w.c.Slots))
	for _, s := range w.c.Slots {
		slots = append(slots, &wrappedSlot{s})
	}
	return slots
}

var _ model.Cage = &wrappedCage{}

type Slot struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Cage   *Cage
	CageID string `gorm:"index;not null"`

	CheckIn  time.Time `gorm:"index;not null"`
	CheckOut time.Time `gorm:"index;not null"`

	GuestOwnerID *string `gorm:"index"`
	GuestSnakeID *string `gorm:"index"`
	BookedAt     *time.Time
}

type wrappedSlot struct {
	s *Slot
}

// ID implements model.Slot.
func (w *wrappedSlot) ID() model.SlotID {
	return model.SlotID(w.s.ID)
}

// CheckIn implements model.Slot.
func (w *wrappedSlot) CheckIn() time.Time {
	return w.s.CheckIn
}

// CheckOut implements model.Slot.
func (w *wrappedSlot) CheckOut() time.Time {
	return w.s.CheckOut
}

// GuestOwnerID implements model.Slot.
func (w *wrappedSlot) GuestOwnerID() *model.OwnerID {
	if w.s.GuestOwnerID == nil {
		return nil
	}

	id := model.OwnerID(*w.s.GuestOwnerID)
	return &id
}

// GuestSnakeID implements model.Slot.
func (w *wrappedSlot) GuestSnakeID() *model.SnakeID {
	if w.s.GuestSnakeID == nil {
		return nil
	}

	id := model.SnakeID(*w.s.GuestSnakeID)
	return &id
}

// BookedAt implements model.Slot.
func (w *wrappedSlot) BookedAt() *time.Time {
	return w.s.BookedAt
}

var _ model.Slot = &wrappedSlot{}
