package model

import (
	"github.com/rs/xid"
)

type OwnerID string

func NewOwnerID() OwnerID {
	return OwnerID(xid.New().String())
}

// Owner is an account that may act as host (owns cages) and/or guest (owns
// snakes). No role separation is enforced.
type Owner interface {
	ID() OwnerID
	Name() string
	Email() string
	SnakeIDs() []SnakeID
	CageIDs() []CageID
}

type BaseOwner struct {
	id       OwnerID
	name     string
	email    string
	snakeIDs []SnakeID
	cageIDs  []CageID
}

// ID implements Owner.
func (o *BaseOwner) ID() OwnerID {
	return o.id
}

// Name implements Owner.
func (o *BaseOwner) Name() string {
	return o.name
}

// Email implements Owner.
func (o *BaseOwner) Email() string {
	return o.email
}

// SnakeIDs implements Owner.
func (o *BaseOwner) SnakeIDs() []SnakeID {
	return o.snakeIDs
}

// CageIDs implements Owner.
func (o *BaseOwner) CageIDs() []CageID {
	return o.cageIDs
}

var _ Owner = &BaseOwner{}

func NewOwner(name, email string) *BaseOwner {
	return &BaseOwner{
		id:    NewOwnerID(),
		name:  name,
		email: email,
	}
}

// RestoreOwner rehydrates a persisted owner with its reference sets.
func RestoreOwner(id OwnerID, name, email string, snakeIDs []SnakeID, cageIDs []CageID) *BaseOwner {
	return &BaseOwner{
		id:       id,
		name:     name,
		email:    email,
		snakeIDs: snakeIDs,
		cageIDs:  cageIDs,
	}
}
