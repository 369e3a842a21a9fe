package model

import (
	"github.com/rs/xid"
)

type CageID string

func NewCageID() CageID {
	return CageID(xid.New().String())
}

// Cage is the sole owner of its embedded slots.
type Cage interface {
	ID() CageID
	Name() string
	Price() float64
	SquareMeters() float64
	IsCarpeted() bool
	HasToys() bool
	AllowDangerousSnakes() bool
	Slots() []Slot
}

type BaseCage struct {
	id                   CageID
	name                 string
	price                float64
	squareMeters         float64
	isCarpeted           bool
	hasToys              bool
	allowDangerousSnakes bool
	slots                []Slot
}

// ID implements Cage.
func (c *BaseCage) ID() CageID {
	return c.id
}

// Name implements Cage.
func (c *BaseCage) Name() string {
	return c.name
}

// Price implements Cage.
func (c *BaseCage) Price() float64 {
	return c.price
}

// SquareMeters implements Cage.
func (c *BaseCage) SquareMeters() float64 {
	return c.squareMeters
}

// IsCarpeted implements Cage.
func (c *BaseCage) IsCarpeted() bool {
	return c.isCarpeted
}

// HasToys implements Cage.
func (c *BaseCage) HasToys() bool {
	return c.hasToys
}

// AllowDangerousSnakes implements Cage.
func (c *BaseCage) AllowDangerousSnakes() bool {
	return c.allowDangerousSnakes
}

// Slots implements Cage.
func (c *BaseCage) Slots() []Slot {
	return c.slots
}

var _ Cage = &BaseCage{}

func NewCage(name string, price, squareMeters float64, isCarpeted, hasToys, allowDangerousSnakes bool, slots ...Slot) *BaseCage {
	return &BaseCage{
		id:                   NewCageID(),
		name:                 name,
		price:                price,
		squareMeters:         squareMeters,
		isCarpeted:           isCarpeted,
		hasToys:              hasToys,
		allowDangerousSnakes: allowDangerousSnakes,
		slots:                slots,
	}
}

// RestoreCage rehydrates a persisted cage with its slots.
func RestoreCage(id CageID, name string, price, squareMeters float64, isCarpeted, hasToys, allowDangerousSnakes bool, slots ...Slot) *BaseCage {
	return &BaseCage{
		id:                   id,
		name:                 name,
		price:                price,
		squareMeters:         squareMeters,
		isCarpeted:           isCarpeted,
		hasToys:              hasToys,
		allowDangerousSnakes: allowDangerousSnakes,
		slots:                slots,
	}
}
