package model

import (
	"testing"
	"time"
)

func TestSlotLifecycle(t *testing.T) {
	checkIn := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	slot := NewSlot(checkIn, checkOut)

	if slot.ID() == "" {
		t.Errorf("slot.ID() should not be empty")
	}

	if !SlotAvailable(slot) {
		t.Errorf("new slot should be available")
	}

	if e, g := 4, SlotDays(slot); e != g {
		t.Errorf("SlotDays(): expected %d, got %d", e, g)
	}

	if !SlotContains(slot, checkIn, checkOut) {
		t.Errorf("slot should contain its own window")
	}

	if SlotContains(slot, checkIn.AddDate(0, 0, -1), checkOut) {
		t.Errorf("slot should not contain a window starting before it")
	}

	guestOwnerID := NewOwnerID()
	guestSnakeID := NewSnakeID()
	bookedAt := time.Date(2025, time.December, 24, 12, 0, 0, 0, time.UTC)

	booked := RestoreSlot(slot.ID(), checkIn, checkOut, &guestOwnerID, &guestSnakeID, &bookedAt)

	if e, g := slot.ID(), booked.ID(); e != g {
		t.Errorf("booked.ID(): expected %s, got %s", e, g)
	}

	if SlotAvailable(booked) {
		t.Errorf("restored booked slot should not be available")
	}

	if booked.GuestSnakeID() == nil || *booked.GuestSnakeID() != guestSnakeID {
		t.Errorf("booked.GuestSnakeID(): expected %s, got %v", guestSnakeID, booked.GuestSnakeID())
	}

	if booked.BookedAt() == nil || !booked.BookedAt().Equal(bookedAt) {
		t.Errorf("booked.BookedAt(): expected %s, got %v", bookedAt, booked.BookedAt())
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	owner := NewOwner("Jane", "jane@example.net")

	if e, g := 0, len(owner.SnakeIDs()); e != g {
		t.Errorf("len(owner.SnakeIDs()): expected %d, got %d", e, g)
	}

	snake := NewSnake("Kaa", "python", 40, false)

	restoredSnake := RestoreSnake(snake.ID(), snake.Name(), snake.Species(), snake.Length(), snake.IsVenomous())

	if e, g := snake.ID(), restoredSnake.ID(); e != g {
		t.Errorf("restoredSnake.ID(): expected %s, got %s", e, g)
	}

	if e, g := snake.Length(), restoredSnake.Length(); e != g {
		t.Errorf("restoredSnake.Length(): expected %g, got %g", e, g)
	}

	cage := NewCage("Cozy Corner", 25, 15, true, false, true)

	restoredOwner := RestoreOwner(owner.ID(), owner.Name(), owner.Email(), []SnakeID{snake.ID()}, []CageID{cage.ID()})

	if e, g := owner.ID(), restoredOwner.ID(); e != g {
		t.Errorf("restoredOwner.ID(): expected %s, got %s", e, g)
	}

	if e, g := 1, len(restoredOwner.SnakeIDs()); e != g {
		t.Errorf("len(restoredOwner.SnakeIDs()): expected %d, got %d", e, g)
	}

	checkIn := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	slot := NewSlot(checkIn, checkIn.AddDate(0, 0, 4))

	restoredCage := RestoreCage(cage.ID(), cage.Name(), cage.Price(), cage.SquareMeters(), cage.IsCarpeted(), cage.HasToys(), cage.AllowDangerousSnakes(), slot)

	if e, g := cage.ID(), restoredCage.ID(); e != g {
		t.Errorf("restoredCage.ID(): expected %s, got %s", e, g)
	}

	if !restoredCage.AllowDangerousSnakes() {
		t.Errorf("restoredCage.AllowDangerousSnakes() should be true")
	}

	if e, g := 1, len(restoredCage.Slots()); e != g {
		t.Fatalf("len(restoredCage.Slots()): expected %d, got %d", e, g)
	}

	if e, g := slot.ID(), restoredCage.Slots()[0].ID(); e != g {
		t.Errorf("restoredCage.Slots()[0].ID(): expected %s, got %s", e, g)
	}
}
