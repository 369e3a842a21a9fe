package model

import (
	"github.com/rs/xid"
)

type SnakeID string

func NewSnakeID() SnakeID {
	return SnakeID(xid.New().String())
}

// Snake is owned by exactly one Owner and is immutable after creation.
type Snake interface {
	ID() SnakeID
	Name() string
	Species() string
	Length() float64
	IsVenomous() bool
}

type BaseSnake struct {
	id         SnakeID
	name       string
	species    string
	length     float64
	isVenomous bool
}

// ID implements Snake.
func (s *BaseSnake) ID() SnakeID {
	return s.id
}

// Name implements Snake.
func (s *BaseSnake) Name() string {
	return s.name
}

// Species implements Snake.
func (s *BaseSnake) Species() string {
	return s.species
}

// Length implements Snake.
func (s *BaseSnake) Length() float64 {
	return s.length
}

// IsVenomous implements Snake.
func (s *BaseSnake) IsVenomous() bool {
	return s.isVenomous
}

var _ Snake = &BaseSnake{}

func NewSnake(name, species string, length float64, isVenomous bool) *BaseSnake {
	return &BaseSnake{
		id:         NewSnakeID(),
		name:       name,
		species:    species,
		length:     length,
		isVenomous: isVenomous,
	}
}

// RestoreSnake rehydrates a persisted snake.
func RestoreSnake(id SnakeID, name, species string, length float64, isVenomous bool) *BaseSnake {
	return &BaseSnake{
		id:         id,
		name:       name,
		species:    species,
		length:     length,
		isVenomous: isVenomous,
	}
}
