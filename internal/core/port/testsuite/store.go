package testsuite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bornholm/snakebnb/internal/core/model"
	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/pkg/errors"
)

// TestStore runs the port.Store conformance suite against the store returned
// by the factory. Each test case gets a fresh store.
func TestStore(t *testing.T, factory func(t *testing.T) (port.Store, error)) {
	type testCase struct {
		Name string
		Run  func(t *testing.T, ctx context.Context, store port.Store) error
	}

	var testCases []testCase = []testCase{
		{
			Name: "AccountLifecycle",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				if _, err := store.FindAccountByEmail(ctx, "jane@example.net"); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("FindAccountByEmail() on empty store: expected port.ErrNotFound, got %v", err)
				}

				owner, err := store.CreateAccount(ctx, "Jane", "jane@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				if owner.ID() == "" {
					t.Errorf("owner.ID() should not be empty")
				}

				found, err := store.FindAccountByEmail(ctx, "jane@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := owner.ID(), found.ID(); e != g {
					t.Errorf("found.ID(): expected %s, got %s", e, g)
				}

				if e, g := "Jane", found.Name(); e != g {
					t.Errorf("found.Name(): expected %s, got %s", e, g)
				}

				if _, err := store.CreateAccount(ctx, "Impostor", "jane@example.net"); !errors.Is(err, port.ErrInvalidEntity) {
					t.Errorf("CreateAccount() with duplicate email: expected port.ErrInvalidEntity, got %v", err)
				}

				return nil
			},
		},
		{
			Name: "OwnedEntities",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				owner, err := store.CreateAccount(ctx, "Jane", "jane@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				snake, err := store.CreateSnake(ctx, owner.ID(), "Kaa", "python", 40, false)
				if err != nil {
					return errors.WithStack(err)
				}

				cage, err := store.CreateCage(ctx, owner.ID(), port.CageAttrs{
					Name:         "Cozy Corner",
					Price:        25,
					SquareMeters: 15,
					HasToys:      true,
				})
				if err != nil {
					return errors.WithStack(err)
				}

				snakes, err := store.GetSnakesForOwner(ctx, owner.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 1, len(snakes); e != g {
					t.Fatalf("len(snakes): expected %d, got %d", e, g)
				}

				if e, g := snake.ID(), snakes[0].ID(); e != g {
					t.Errorf("snakes[0].ID(): expected %s, got %s", e, g)
				}

				cages, err := store.GetCagesForOwner(ctx, owner.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 1, len(cages); e != g {
					t.Fatalf("len(cages): expected %d, got %d", e, g)
				}

				if e, g := cage.ID(), cages[0].ID(); e != g {
					t.Errorf("cages[0].ID(): expected %s, got %s", e, g)
				}

				refreshed, err := store.FindAccountByEmail(ctx, "jane@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 1, len(refreshed.SnakeIDs()); e != g {
					t.Errorf("len(refreshed.SnakeIDs()): expected %d, got %d", e, g)
				}

				if e, g := 1, len(refreshed.CageIDs()); e != g {
					t.Errorf("len(refreshed.CageIDs()): expected %d, got %d", e, g)
				}

				if _, err := store.CreateSnake(ctx, model.NewOwnerID(), "Ghost", "cobra", 10, true); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("CreateSnake() with unknown owner: expected port.ErrNotFound, got %v", err)
				}

				return nil
			},
		},
		{
			Name: "Availability",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				owner, err := store.CreateAccount(ctx, "Jane", "jane@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				cage, err := store.CreateCage(ctx, owner.ID(), port.CageAttrs{
					Name:         "Cozy Corner",
					Price:        25,
					SquareMeters: 15,
				})
				if err != nil {
					return errors.WithStack(err)
				}

				start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

				slot, err := store.AddAvailableDate(ctx, cage.ID(), start, 4)
				if err != nil {
					return errors.WithStack(err)
				}

				if !model.SlotAvailable(slot) {
					t.Errorf("slot should be available")
				}

				if e, g := start.AddDate(0, 0, 4), slot.CheckOut(); !g.Equal(e) {
					t.Errorf("slot.CheckOut(): expected %s, got %s", e, g)
				}

				if _, err := store.AddAvailableDate(ctx, cage.ID(), start.AddDate(0, 0, 10), 2); err != nil {
					return errors.WithStack(err)
				}

				reloaded, err := store.GetCageByID(ctx, cage.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				slots := reloaded.Slots()

				if e, g := 2, len(slots); e != g {
					t.Fatalf("len(slots): expected %d, got %d", e, g)
				}

				if e, g := slot.ID(), slots[0].ID(); e != g {
					t.Errorf("slots[0].ID(): expected %s, got %s", e, g)
				}

				if _, err := store.AddAvailableDate(ctx, model.NewCageID(), start, 2); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("AddAvailableDate() with unknown cage: expected port.ErrNotFound, got %v", err)
				}

				return nil
			},
		},
		{
			Name: "CandidateQueryFiltersAndOrdering",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				owner, err := store.CreateAccount(ctx, "Jane", "jane@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

				type seed struct {
					name      string
					price     float64
					sqm       float64
					dangerous bool
					window    bool
				}

				seeds := []seed{
					{name: "cheap-small", price: 10, sqm: 12, window: true},
					{name: "cheap-large", price: 10, sqm: 30, window: true},
					{name: "pricey", price: 50, sqm: 30, window: true},
					{name: "tiny", price: 5, sqm: 2, window: true},
					{name: "no-window", price: 5, sqm: 30, window: false},
					{name: "dangerous-ok", price: 20, sqm: 30, dangerous: true, window: true},
				}

				for _, sd := range seeds {
					cage, err := store.CreateCage(ctx, owner.ID(), port.CageAttrs{
						Name:                 sd.name,
						Price:                sd.price,
						SquareMeters:         sd.sqm,
						AllowDangerousSnakes: sd.dangerous,
					})
					if err != nil {
						return errors.WithStack(err)
					}

					if sd.window {
						if _, err := store.AddAvailableDate(ctx, cage.ID(), start, 5); err != nil {
							return errors.WithStack(err)
						}
					} else {
						// Window too short to contain the queried range
						if _, err := store.AddAvailableDate(ctx, cage.ID(), start, 1); err != nil {
							return errors.WithStack(err)
						}
					}
				}

				cages, err := store.QueryCandidateCages(ctx, port.QueryCandidateCagesOptions{
					MinSquareMeters: 10,
					CheckIn:         start,
					CheckOut:        start.AddDate(0, 0, 3),
				})
				if err != nil {
					return errors.WithStack(err)
				}

				expected := []string{"cheap-large", "cheap-small", "dangerous-ok", "pricey"}

				if e, g := len(expected), len(cages); e != g {
					t.Fatalf("len(cages): expected %d, got %d", e, g)
				}

				for i, name := range expected {
					if e, g := name, cages[i].Name(); e != g {
						t.Errorf("cages[%d].Name(): expected %s, got %s", i, e, g)
					}
				}

				dangerousOnly, err := store.QueryCandidateCages(ctx, port.QueryCandidateCagesOptions{
					MinSquareMeters:      10,
					DangerousAllowedOnly: true,
					CheckIn:              start,
					CheckOut:             start.AddDate(0, 0, 3),
				})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 1, len(dangerousOnly); e != g {
					t.Fatalf("len(dangerousOnly): expected %d, got %d", e, g)
				}

				if e, g := "dangerous-ok", dangerousOnly[0].Name(); e != g {
					t.Errorf("dangerousOnly[0].Name(): expected %s, got %s", e, g)
				}

				return nil
			},
		},
		{
			Name: "CandidateQueryOrderIsDeterministic",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				owner, err := store.CreateAccount(ctx, "Jane", "jane@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

				// All cages tie on price and square meters, so ordering falls
				// through to the id tiebreak: creation order.
				names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
				for _, name := range names {
					cage, err := store.CreateCage(ctx, owner.ID(), port.CageAttrs{
						Name:         name,
						Price:        10,
						SquareMeters: 20,
					})
					if err != nil {
						return errors.WithStack(err)
					}

					if _, err := store.AddAvailableDate(ctx, cage.ID(), start, 5); err != nil {
						return errors.WithStack(err)
					}
				}

				opts := port.QueryCandidateCagesOptions{
					MinSquareMeters: 10,
					CheckIn:         start,
					CheckOut:        start.AddDate(0, 0, 3),
				}

				first, err := store.QueryCandidateCages(ctx, opts)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := len(names), len(first); e != g {
					t.Fatalf("len(first): expected %d, got %d", e, g)
				}

				for i, name := range names {
					if e, g := name, first[i].Name(); e != g {
						t.Errorf("first[%d].Name(): expected %s, got %s", i, e, g)
					}
				}

				second, err := store.QueryCandidateCages(ctx, opts)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := len(first), len(second); e != g {
					t.Fatalf("len(second): expected %d, got %d", e, g)
				}

				for i := range first {
					if e, g := first[i].ID(), second[i].ID(); e != g {
						t.Errorf("second[%d].ID(): expected %s, got %s", i, e, g)
					}
				}

				return nil
			},
		},
		{
			Name: "ClaimSlot",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				host, err := store.CreateAccount(ctx, "Jane", "jane@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				guest, err := store.CreateAccount(ctx, "John", "john@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				snake, err := store.CreateSnake(ctx, guest.ID(), "Kaa", "python", 40, false)
				if err != nil {
					return errors.WithStack(err)
				}

				cage, err := store.CreateCage(ctx, host.ID(), port.CageAttrs{
					Name:         "Cozy Corner",
					Price:        25,
					SquareMeters: 15,
				})
				if err != nil {
					return errors.WithStack(err)
				}

				start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

				slot, err := store.AddAvailableDate(ctx, cage.ID(), start, 4)
				if err != nil {
					return errors.WithStack(err)
				}

				bookedAt := time.Date(2025, time.December, 24, 12, 0, 0, 0, time.UTC)

				if err := store.ClaimSlot(ctx, slot.ID(), guest.ID(), snake.ID(), bookedAt); err != nil {
					return errors.WithStack(err)
				}

				reloaded, err := store.GetCageByID(ctx, cage.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				claimed := reloaded.Slots()[0]

				if model.SlotAvailable(claimed) {
					t.Errorf("claimed slot should not be available")
				}

				if claimed.GuestOwnerID() == nil || *claimed.GuestOwnerID() != guest.ID() {
					t.Errorf("claimed.GuestOwnerID(): expected %s, got %v", guest.ID(), claimed.GuestOwnerID())
				}

				if claimed.GuestSnakeID() == nil || *claimed.GuestSnakeID() != snake.ID() {
					t.Errorf("claimed.GuestSnakeID(): expected %s, got %v", snake.ID(), claimed.GuestSnakeID())
				}

				if claimed.BookedAt() == nil || !claimed.BookedAt().Equal(bookedAt) {
					t.Errorf("claimed.BookedAt(): expected %s, got %v", bookedAt, claimed.BookedAt())
				}

				if err := store.ClaimSlot(ctx, slot.ID(), guest.ID(), snake.ID(), bookedAt); !errors.Is(err, port.ErrNoAvailableSlot) {
					t.Errorf("second ClaimSlot(): expected port.ErrNoAvailableSlot, got %v", err)
				}

				if err := store.ClaimSlot(ctx, model.NewSlotID(), guest.ID(), snake.ID(), bookedAt); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("ClaimSlot() with unknown slot: expected port.ErrNotFound, got %v", err)
				}

				return nil
			},
		},
		{
			Name: "ConcurrentClaims",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				host, err := store.CreateAccount(ctx, "Jane", "jane@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				cage, err := store.CreateCage(ctx, host.ID(), port.CageAttrs{
					Name:         "Cozy Corner",
					Price:        25,
					SquareMeters: 15,
				})
				if err != nil {
					return errors.WithStack(err)
				}

				start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

				slot, err := store.AddAvailableDate(ctx, cage.ID(), start, 4)
				if err != nil {
					return errors.WithStack(err)
				}

				guests := 8
				results := make([]error, guests)

				var wg sync.WaitGroup
				for i := 0; i < guests; i++ {
					wg.Add(1)
					go func(i int) {
						defer wg.Done()
						results[i] = store.ClaimSlot(ctx, slot.ID(), model.NewOwnerID(), model.NewSnakeID(), time.Now())
					}(i)
				}
				wg.Wait()

				succeeded := 0
				for _, err := range results {
					if err == nil {
						succeeded++
						continue
					}

					if !errors.Is(err, port.ErrNoAvailableSlot) {
						t.Errorf("concurrent ClaimSlot(): expected port.ErrNoAvailableSlot, got %+v", err)
					}
				}

				if e, g := 1, succeeded; e != g {
					t.Errorf("succeeded claims: expected %d, got %d", e, g)
				}

				return nil
			},
		},
		{
			Name: "BookingsForOwner",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				host, err := store.CreateAccount(ctx, "Jane", "jane@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				guest, err := store.CreateAccount(ctx, "John", "john@example.net")
				if err != nil {
					return errors.WithStack(err)
				}

				snake, err := store.CreateSnake(ctx, guest.ID(), "Kaa", "python", 40, false)
				if err != nil {
					return errors.WithStack(err)
				}

				first, err := store.CreateCage(ctx, host.ID(), port.CageAttrs{Name: "First", Price: 25, SquareMeters: 15})
				if err != nil {
					return errors.WithStack(err)
				}

				second, err := store.CreateCage(ctx, host.ID(), port.CageAttrs{Name: "Second", Price: 30, SquareMeters: 20})
				if err != nil {
					return errors.WithStack(err)
				}

				start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

				laterSlot, err := store.AddAvailableDate(ctx, second.ID(), start.AddDate(0, 0, 10), 5)
				if err != nil {
					return errors.WithStack(err)
				}

				earlySlot, err := store.AddAvailableDate(ctx, first.ID(), start, 4)
				if err != nil {
					return errors.WithStack(err)
				}

				// A free slot must not show up in the bookings
				if _, err := store.AddAvailableDate(ctx, first.ID(), start.AddDate(0, 1, 0), 4); err != nil {
					return errors.WithStack(err)
				}

				for _, slot := range []model.Slot{laterSlot, earlySlot} {
					if err := store.ClaimSlot(ctx, slot.ID(), guest.ID(), snake.ID(), time.Now()); err != nil {
						return errors.WithStack(err)
					}
				}

				bookings, err := store.GetBookingsForOwner(ctx, guest.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 2, len(bookings); e != g {
					t.Fatalf("len(bookings): expected %d, got %d", e, g)
				}

				if e, g := earlySlot.ID(), bookings[0].Slot.ID(); e != g {
					t.Errorf("bookings[0].Slot.ID(): expected %s, got %s", e, g)
				}

				if e, g := "First", bookings[0].Cage.Name(); e != g {
					t.Errorf("bookings[0].Cage.Name(): expected %s, got %s", e, g)
				}

				if e, g := "Second", bookings[1].Cage.Name(); e != g {
					t.Errorf("bookings[1].Cage.Name(): expected %s, got %s", e, g)
				}

				hostBookings, err := store.GetBookingsForOwner(ctx, host.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 0, len(hostBookings); e != g {
					t.Errorf("len(hostBookings): expected %d, got %d", e, g)
				}

				return nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx := context.Background()

			store, err := factory(t)
			if err != nil {
				t.Fatalf("could not create store: %+v", errors.WithStack(err))
			}

			if err := tc.Run(t, ctx, store); err != nil {
				t.Fatalf("could not run test: %+v", errors.WithStack(err))
			}
		})
	}
}
