package model

import (
	"time"

	"github.com/rs/xid"
)

type SlotID string

func NewSlotID() SlotID {
	return SlotID(xid.New().String())
}

// Slot is an interval on a cage representing either a host-declared
// availability window (unbooked) or a confirmed booking, distinguished solely
// by whether the guest fields are set.
type Slot interface {
	ID() SlotID
	CheckIn() time.Time
	CheckOut() time.Time
	GuestOwnerID() *OwnerID
	GuestSnakeID() *SnakeID
	BookedAt() *time.Time
}

// SlotAvailable reports whether the slot has not been claimed yet. A slot is
// available iff its guest snake reference is unset.
func SlotAvailable(s Slot) bool {
	return s.GuestSnakeID() == nil
}

// SlotContains reports whether the slot's bounds fully contain the requested
// [checkin, checkout) window. Slots on one cage may overlap, so containment is
// checked per slot.
func SlotContains(s Slot, checkin, checkout time.Time) bool {
	return !s.CheckIn().After(checkin) && !s.CheckOut().Before(checkout)
}

// SlotDays returns the length of the slot window in whole days.
func SlotDays(s Slot) int {
	return int(s.CheckOut().Sub(s.CheckIn()).Hours() / 24)
}

type BaseSlot struct {
	id           SlotID
	checkIn      time.Time
	checkOut     time.Time
	guestOwnerID *OwnerID
	guestSnakeID *SnakeID
	bookedAt     *time.Time
}

// ID implements Slot.
func (s *BaseSlot) ID() SlotID {
	return s.id
}

// CheckIn implements Slot.
func (s *BaseSlot) CheckIn() time.Time {
	return s.checkIn
}

// CheckOut implements Slot.
func (s *BaseSlot) CheckOut() time.Time {
	return s.checkOut
}

// GuestOwnerID implements Slot.
func (s *BaseSlot) GuestOwnerID() *OwnerID {
	return s.guestOwnerID
}

// GuestSnakeID implements Slot.
func (s *BaseSlot) GuestSnakeID() *SnakeID {
	return s.guestSnakeID
}

// BookedAt implements Slot.
func (s *BaseSlot) BookedAt() *time.Time {
	return s.bookedAt
}

var _ Slot = &BaseSlot{}

func NewSlot(checkIn, checkOut time.Time) *BaseSlot {
	return &BaseSlot{
		id:       NewSlotID(),
		checkIn:  checkIn,
		checkOut: checkOut,
	}
}

// RestoreSlot rehydrates a persisted slot, booked or not.
func RestoreSlot(id SlotID, checkIn, checkOut time.Time, guestOwnerID *OwnerID, guestSnakeID *SnakeID, bookedAt *time.Time) *BaseSlot {
	return &BaseSlot{
		id:           id,
		checkIn:      checkIn,
		checkOut:     checkOut,
		guestOwnerID: guestOwnerID,
		guestSnakeID: guestSnakeID,
		bookedAt:     bookedAt,
	}
}
