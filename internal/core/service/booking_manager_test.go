package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bornholm/snakebnb/internal/adapter/memory"
	"github.com/bornholm/snakebnb/internal/core/model"
	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/pkg/errors"
)

var (
	jan1 = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan5 = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	manager *BookingManager
	host    model.Owner
	guest   model.Owner
}

func newFixture(t *testing.T) (*fixture, context.Context) {
	t.Helper()

	ctx := context.Background()
	manager := NewBookingManager(memory.NewStore())

	host, err := manager.CreateAccount(ctx, "Jane", "jane@example.net")
	if err != nil {
		t.Fatalf("could not create host: %+v", errors.WithStack(err))
	}

	guest, err := manager.CreateAccount(ctx, "John", "john@example.net")
	if err != nil {
		t.Fatalf("could not create guest: %+v", errors.WithStack(err))
	}

	return &fixture{
		manager: manager,
		host:    host,
		guest:   guest,
	}, ctx
}

func (f *fixture) createCage(t *testing.T, ctx context.Context, attrs port.CageAttrs, windows ...[2]time.Time) model.Cage {
	t.Helper()

	cage, err := f.manager.CreateCage(ctx, f.host.ID(), attrs)
	if err != nil {
		t.Fatalf("could not create cage: %+v", errors.WithStack(err))
	}

	for _, w := range windows {
		days := int(w[1].Sub(w[0]).Hours() / 24)
		if _, err := f.manager.AddAvailableDate(ctx, cage.ID(), w[0], days); err != nil {
			t.Fatalf("could not add available date: %+v", errors.WithStack(err))
		}
	}

	return cage
}

func (f *fixture) createSnake(t *testing.T, ctx context.Context, length float64, isVenomous bool) model.Snake {
	t.Helper()

	snake, err := f.manager.CreateSnake(ctx, f.guest.ID(), "Kaa", "python", length, isVenomous)
	if err != nil {
		t.Fatalf("could not create snake: %+v", errors.WithStack(err))
	}

	return snake
}

func TestFindAvailableCages(t *testing.T) {
	t.Run("ContainedWindow", func(t *testing.T) {
		f, ctx := newFixture(t)

		f.createCage(t, ctx, port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 20}, [2]time.Time{jan1, jan5})

		snake := f.createSnake(t, ctx, 40, false)

		for _, window := range [][2]time.Time{
			{jan1, jan5},
			{jan1.AddDate(0, 0, 1), jan5.AddDate(0, 0, -1)},
		} {
			cages, err := f.manager.FindAvailableCages(ctx, window[0], window[1], snake)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := 1, len(cages); e != g {
				t.Fatalf("len(cages) for window %s: expected %d, got %d", window, e, g)
			}
		}

		cages, err := f.manager.FindAvailableCages(ctx, jan1.AddDate(0, 0, -2), jan5.AddDate(0, 0, 1), snake)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := 0, len(cages); e != g {
			t.Errorf("len(cages) for uncovered window: expected %d, got %d", e, g)
		}
	})

	t.Run("VenomousSnakeExcluded", func(t *testing.T) {
		f, ctx := newFixture(t)

		f.createCage(t, ctx, port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 20}, [2]time.Time{jan1, jan5})

		venomous := f.createSnake(t, ctx, 40, true)

		cages, err := f.manager.FindAvailableCages(ctx, jan1, jan5, venomous)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := 0, len(cages); e != g {
			t.Errorf("len(cages): expected %d, got %d", e, g)
		}
	})

	t.Run("VenomousSnakeAllowedWhereDangerousAccepted", func(t *testing.T) {
		f, ctx := newFixture(t)

		f.createCage(t, ctx, port.CageAttrs{Name: "Danger Den", Price: 10, SquareMeters: 20, AllowDangerousSnakes: true}, [2]time.Time{jan1, jan5})

		venomous := f.createSnake(t, ctx, 40, true)

		cages, err := f.manager.FindAvailableCages(ctx, jan1, jan5, venomous)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := 1, len(cages); e != g {
			t.Errorf("len(cages): expected %d, got %d", e, g)
		}
	})

	t.Run("MinimumSizeConstraint", func(t *testing.T) {
		f, ctx := newFixture(t)

		f.createCage(t, ctx, port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 20}, [2]time.Time{jan1, jan5})

		// 100 / 4 = 25 > 20
		tooLong := f.createSnake(t, ctx, 100, false)

		cages, err := f.manager.FindAvailableCages(ctx, jan1, jan5, tooLong)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := 0, len(cages); e != g {
			t.Errorf("len(cages): expected %d, got %d", e, g)
		}

		// 80 / 4 = 20 == 20
		fitting := f.createSnake(t, ctx, 80, false)

		cages, err = f.manager.FindAvailableCages(ctx, jan1, jan5, fitting)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := 1, len(cages); e != g {
			t.Errorf("len(cages): expected %d, got %d", e, g)
		}
	})

	t.Run("BookedSlotExcluded", func(t *testing.T) {
		f, ctx := newFixture(t)

		cage := f.createCage(t, ctx, port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 20}, [2]time.Time{jan1, jan5})

		snake := f.createSnake(t, ctx, 40, false)

		snapshot, err := f.manager.GetCageByID(ctx, cage.ID())
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if err := f.manager.BookCage(ctx, f.guest, snake, snapshot, jan1, jan5); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		cages, err := f.manager.FindAvailableCages(ctx, jan1, jan5, snake)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := 0, len(cages); e != g {
			t.Errorf("len(cages): expected %d, got %d", e, g)
		}
	})

	t.Run("OneResultPerQualifyingSlot", func(t *testing.T) {
		f, ctx := newFixture(t)

		f.createCage(t, ctx, port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 20},
			[2]time.Time{jan1, jan5},
			[2]time.Time{jan1.AddDate(0, 0, -1), jan5.AddDate(0, 0, 1)},
		)

		snake := f.createSnake(t, ctx, 40, false)

		cages, err := f.manager.FindAvailableCages(ctx, jan1, jan5, snake)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		// Both slots contain the window, so the cage is reported twice
		if e, g := 2, len(cages); e != g {
			t.Fatalf("len(cages): expected %d, got %d", e, g)
		}

		if e, g := cages[0].ID(), cages[1].ID(); e != g {
			t.Errorf("cages[1].ID(): expected %s, got %s", e, g)
		}
	})

	t.Run("Ordering", func(t *testing.T) {
		f, ctx := newFixture(t)

		f.createCage(t, ctx, port.CageAttrs{Name: "pricey", Price: 50, SquareMeters: 30}, [2]time.Time{jan1, jan5})
		f.createCage(t, ctx, port.CageAttrs{Name: "cheap-small", Price: 10, SquareMeters: 20}, [2]time.Time{jan1, jan5})
		f.createCage(t, ctx, port.CageAttrs{Name: "cheap-large", Price: 10, SquareMeters: 30}, [2]time.Time{jan1, jan5})

		snake := f.createSnake(t, ctx, 40, false)

		cages, err := f.manager.FindAvailableCages(ctx, jan1, jan5, snake)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		expected := []string{"cheap-large", "cheap-small", "pricey"}

		if e, g := len(expected), len(cages); e != g {
			t.Fatalf("len(cages): expected %d, got %d", e, g)
		}

		for i := range expected {
			if e, g := expected[i], cages[i].Name(); e != g {
				t.Errorf("cages[%d].Name(): expected %s, got %s", i, e, g)
			}
		}
	})

	t.Run("Idempotence", func(t *testing.T) {
		f, ctx := newFixture(t)

		f.createCage(t, ctx, port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 20}, [2]time.Time{jan1, jan5})
		f.createCage(t, ctx, port.CageAttrs{Name: "Other", Price: 15, SquareMeters: 25}, [2]time.Time{jan1, jan5})

		snake := f.createSnake(t, ctx, 40, false)

		first, err := f.manager.FindAvailableCages(ctx, jan1, jan5, snake)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		second, err := f.manager.FindAvailableCages(ctx, jan1, jan5, snake)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := len(first), len(second); e != g {
			t.Fatalf("len(second): expected %d, got %d", e, g)
		}

		for i := range first {
			if e, g := first[i].ID(), second[i].ID(); e != g {
				t.Errorf("second[%d].ID(): expected %s, got %s", i, e, g)
			}
		}
	})
}

func TestBookCage(t *testing.T) {
	t.Run("ClaimsFirstQualifyingSlot", func(t *testing.T) {
		f, ctx := newFixture(t)

		cage := f.createCage(t, ctx, port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 20},
			[2]time.Time{jan1, jan5},
			[2]time.Time{jan1, jan5.AddDate(0, 0, 5)},
		)

		snake := f.createSnake(t, ctx, 40, false)

		snapshot, err := f.manager.GetCageByID(ctx, cage.ID())
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if err := f.manager.BookCage(ctx, f.guest, snake, snapshot, jan1, jan5); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		reloaded, err := f.manager.GetCageByID(ctx, cage.ID())
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		slots := reloaded.Slots()

		if model.SlotAvailable(slots[0]) {
			t.Errorf("first slot should be booked")
		}

		if !model.SlotAvailable(slots[1]) {
			t.Errorf("second slot should still be available")
		}

		if slots[0].GuestSnakeID() == nil || *slots[0].GuestSnakeID() != snake.ID() {
			t.Errorf("slots[0].GuestSnakeID(): expected %s, got %v", snake.ID(), slots[0].GuestSnakeID())
		}

		if slots[0].BookedAt() == nil {
			t.Errorf("slots[0].BookedAt() should be set")
		}
	})

	t.Run("NoQualifyingSlot", func(t *testing.T) {
		f, ctx := newFixture(t)

		cage := f.createCage(t, ctx, port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 20}, [2]time.Time{jan1, jan5})

		snake := f.createSnake(t, ctx, 40, false)

		snapshot, err := f.manager.GetCageByID(ctx, cage.ID())
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		err = f.manager.BookCage(ctx, f.guest, snake, snapshot, jan1, jan5.AddDate(0, 0, 5))
		if !errors.Is(err, port.ErrNoAvailableSlot) {
			t.Errorf("BookCage(): expected port.ErrNoAvailableSlot, got %v", err)
		}
	})

	t.Run("StaleSnapshotRejected", func(t *testing.T) {
		f, ctx := newFixture(t)

		cage := f.createCage(t, ctx, port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 20}, [2]time.Time{jan1, jan5})

		snake := f.createSnake(t, ctx, 40, false)

		// Both sessions read the same state of the cage
		snapshot, err := f.manager.GetCageByID(ctx, cage.ID())
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if err := f.manager.BookCage(ctx, f.guest, snake, snapshot, jan1, jan5); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		err = f.manager.BookCage(ctx, f.guest, snake, snapshot, jan1, jan5)
		if !errors.Is(err, port.ErrNoAvailableSlot) {
			t.Errorf("BookCage() on stale snapshot: expected port.ErrNoAvailableSlot, got %v", err)
		}
	})

	t.Run("ConcurrentCommits", func(t *testing.T) {
		f, ctx := newFixture(t)

		cage := f.createCage(t, ctx, port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 20}, [2]time.Time{jan1, jan5})

		first := f.createSnake(t, ctx, 40, false)
		second := f.createSnake(t, ctx, 35, false)

		snapshot, err := f.manager.GetCageByID(ctx, cage.ID())
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		results := make([]error, 2)

		var wg sync.WaitGroup
		for i, snake := range []model.Snake{first, second} {
			wg.Add(1)
			go func(i int, snake model.Snake) {
				defer wg.Done()
				results[i] = f.manager.BookCage(ctx, f.guest, snake, snapshot, jan1, jan5)
			}(i, snake)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
			} else if !errors.Is(err, port.ErrNoAvailableSlot) {
				t.Errorf("concurrent BookCage(): expected port.ErrNoAvailableSlot, got %+v", err)
			}
		}

		if e, g := 1, succeeded; e != g {
			t.Errorf("succeeded commits: expected %d, got %d", e, g)
		}

		reloaded, err := f.manager.GetCageByID(ctx, cage.ID())
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		booked := 0
		for _, slot := range reloaded.Slots() {
			if !model.SlotAvailable(slot) {
				booked++
			}
		}

		if e, g := 1, booked; e != g {
			t.Errorf("booked slots: expected %d, got %d", e, g)
		}
	})
}

func TestEntityValidation(t *testing.T) {
	f, ctx := newFixture(t)

	if _, err := f.manager.CreateAccount(ctx, "Jake", "not-an-email"); !errors.Is(err, port.ErrInvalidEntity) {
		t.Errorf("CreateAccount() with invalid email: expected port.ErrInvalidEntity, got %v", err)
	}

	if _, err := f.manager.CreateSnake(ctx, f.guest.ID(), "Kaa", "python", -1, false); !errors.Is(err, port.ErrInvalidEntity) {
		t.Errorf("CreateSnake() with negative length: expected port.ErrInvalidEntity, got %v", err)
	}

	if _, err := f.manager.CreateSnake(ctx, f.guest.ID(), "", "python", 40, false); !errors.Is(err, port.ErrInvalidEntity) {
		t.Errorf("CreateSnake() with empty name: expected port.ErrInvalidEntity, got %v", err)
	}

	if _, err := f.manager.CreateCage(ctx, f.host.ID(), port.CageAttrs{Name: "Cozy Corner", Price: -10, SquareMeters: 20}); !errors.Is(err, port.ErrInvalidEntity) {
		t.Errorf("CreateCage() with negative price: expected port.ErrInvalidEntity, got %v", err)
	}

	if _, err := f.manager.CreateCage(ctx, f.host.ID(), port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 0}); !errors.Is(err, port.ErrInvalidEntity) {
		t.Errorf("CreateCage() with zero square meters: expected port.ErrInvalidEntity, got %v", err)
	}

	cage := f.createCage(t, ctx, port.CageAttrs{Name: "Cozy Corner", Price: 10, SquareMeters: 20})

	if _, err := f.manager.AddAvailableDate(ctx, cage.ID(), jan1, 0); !errors.Is(err, port.ErrInvalidEntity) {
		t.Errorf("AddAvailableDate() with zero days: expected port.ErrInvalidEntity, got %v", err)
	}
}
