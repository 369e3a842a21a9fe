package guest

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bornholm/snakebnb/internal/command/common"
	"github.com/bornholm/snakebnb/internal/core/model"
	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/bornholm/snakebnb/internal/core/service"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Root() *cli.Command {
	return &cli.Command{
		Name:  "guest",
		Usage: "Find and book cages for your snakes",
		Subcommands: []*cli.Command{
			AddSnakeCommand(),
			ListSnakesCommand(),
			SearchCommand(),
			BookCommand(),
			BookingsCommand(),
		},
	}
}

const (
	flagName     = "name"
	flagSpecies  = "species"
	flagLength   = "length"
	flagVenomous = "venomous"
	flagSnake    = "snake"
	flagCage     = "cage"
	flagCheckIn  = "checkin"
	flagCheckOut = "checkout"
)

func AddSnakeCommand() *cli.Command {
	return &cli.Command{
		Name:  "add-snake",
		Usage: "Add a snake to the selected account",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:     flagName,
				Aliases:  []string{"n"},
				Usage:    "Name of the snake",
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagSpecies,
				Aliases:  []string{"s"},
				Usage:    "Species of the snake",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     flagLength,
				Aliases:  []string{"l"},
				Usage:    "Length of the snake in centimeters",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  flagVenomous,
				Usage: "The snake is venomous",
			},
		),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, err := common.GetBookingManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			account, err := common.ResolveAccount(cCtx, manager)
			if err != nil {
				return errors.WithStack(err)
			}

			snake, err := manager.CreateSnake(ctx,
				account.ID(),
				cCtx.String(flagName),
				cCtx.String(flagSpecies),
				cCtx.Float64(flagLength),
				cCtx.Bool(flagVenomous),
			)
			if err != nil {
				return errors.Wrap(err, "could not add snake")
			}

			fmt.Printf("Added snake '%s' (%s)\n", snake.Name(), snake.ID())

			return nil
		},
	}
}

func ListSnakesCommand() *cli.Command {
	return &cli.Command{
		Name:  "list-snakes",
		Usage: "List the snakes of the selected account",
		Flags: common.WithCommonFlags(),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, err := common.GetBookingManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			account, err := common.ResolveAccount(cCtx, manager)
			if err != nil {
				return errors.WithStack(err)
			}

			snakes, err := manager.GetSnakesForOwner(ctx, account.ID())
			if err != nil {
				return errors.Wrap(err, "could not list snakes")
			}

			if len(snakes) == 0 {
				fmt.Println("No snake registered yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIES\tLENGTH\tVENOMOUS")

			for _, snake := range snakes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%scm\t%v\n",
					snake.ID(), snake.Name(), snake.Species(),
					humanize.Ftoa(snake.Length()), snake.IsVenomous(),
				)
			}

			if err := w.Flush(); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}

func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the cages available for a snake over a date range",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:     flagSnake,
				Aliases:  []string{"s"},
				Usage:    "ID or name of the snake to board",
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagCheckIn,
				Usage:    fmt.Sprintf("Check-in date (format '%s')", common.DateLayout),
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagCheckOut,
				Usage:    fmt.Sprintf("Check-out date (format '%s')", common.DateLayout),
				Required: true,
			},
		),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, err := common.GetBookingManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			account, err := common.ResolveAccount(cCtx, manager)
			if err != nil {
				return errors.WithStack(err)
			}

			snake, err := resolveSnake(cCtx, manager, account, cCtx.String(flagSnake))
			if err != nil {
				return errors.WithStack(err)
			}

			checkIn, checkOut, err := common.ParseDateRange(cCtx.String(flagCheckIn), cCtx.String(flagCheckOut))
			if err != nil {
				return errors.WithStack(err)
			}

			cages, err := manager.FindAvailableCages(ctx, checkIn, checkOut, snake)
			if err != nil {
				return errors.Wrap(err, "could not search available cages")
			}

			if len(cages) == 0 {
				fmt.Printf("No cage available for '%s' between %s and %s.\n",
					snake.Name(),
					checkIn.Format(common.DateLayout),
					checkOut.Format(common.DateLayout),
				)
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tSIZE\tCARPETED\tTOYS")

			for _, cage := range cages {
				fmt.Fprintf(w, "%s\t%s\t%s\t%sm²\t%v\t%v\n",
					cage.ID(), cage.Name(),
					humanize.Commaf(cage.Price()), humanize.Ftoa(cage.SquareMeters()),
					cage.IsCarpeted(), cage.HasToys(),
				)
			}

			if err := w.Flush(); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}

func BookCommand() *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "Book a cage for a snake over a date range",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:     flagSnake,
				Aliases:  []string{"s"},
				Usage:    "ID or name of the snake to board",
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagCage,
				Aliases:  []string{"c"},
				Usage:    "ID of the cage to book",
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagCheckIn,
				Usage:    fmt.Sprintf("Check-in date (format '%s')", common.DateLayout),
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagCheckOut,
				Usage:    fmt.Sprintf("Check-out date (format '%s')", common.DateLayout),
				Required: true,
			},
		),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, err := common.GetBookingManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			account, err := common.ResolveAccount(cCtx, manager)
			if err != nil {
				return errors.WithStack(err)
			}

			snake, err := resolveSnake(cCtx, manager, account, cCtx.String(flagSnake))
			if err != nil {
				return errors.WithStack(err)
			}

			checkIn, checkOut, err := common.ParseDateRange(cCtx.String(flagCheckIn), cCtx.String(flagCheckOut))
			if err != nil {
				return errors.WithStack(err)
			}

			cage, err := manager.GetCageByID(ctx, model.CageID(cCtx.String(flagCage)))
			if err != nil {
				if errors.Is(err, port.ErrNotFound) {
					return errors.Errorf("no cage '%s'", cCtx.String(flagCage))
				}

				return errors.WithStack(err)
			}

			if err := manager.BookCage(ctx, account, snake, cage, checkIn, checkOut); err != nil {
				if errors.Is(err, port.ErrNoAvailableSlot) {
					return errors.Errorf("cage '%s' has no available slot between %s and %s",
						cage.Name(),
						checkIn.Format(common.DateLayout),
						checkOut.Format(common.DateLayout),
					)
				}

				return errors.Wrap(err, "could not book cage")
			}

			fmt.Printf("Booked cage '%s' for '%s' from %s to %s\n",
				cage.Name(), snake.Name(),
				checkIn.Format(common.DateLayout),
				checkOut.Format(common.DateLayout),
			)

			return nil
		},
	}
}

func BookingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "bookings",
		Usage: "List the bookings made by the selected account",
		Flags: common.WithCommonFlags(),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, err := common.GetBookingManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			account, err := common.ResolveAccount(cCtx, manager)
			if err != nil {
				return errors.WithStack(err)
			}

			bookings, err := manager.GetBookingsForOwner(ctx, account.ID())
			if err != nil {
				return errors.Wrap(err, "could not list bookings")
			}

			if len(bookings) == 0 {
				fmt.Println("No booking yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "CAGE\tCHECK-IN\tCHECK-OUT\tNIGHTS\tBOOKED")

			for _, booking := range bookings {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					booking.Cage.Name(),
					booking.Slot.CheckIn().Format(common.DateLayout),
					booking.Slot.CheckOut().Format(common.DateLayout),
					model.SlotDays(booking.Slot),
					humanize.Time(*booking.Slot.BookedAt()),
				)
			}

			if err := w.Flush(); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}

func resolveSnake(cCtx *cli.Context, manager *service.BookingManager, account model.Owner, raw string) (model.Snake, error) {
	snakes, err := manager.GetSnakesForOwner(cCtx.Context, account.ID())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, snake := range snakes {
		if string(snake.ID()) == raw || snake.Name() == raw {
			return snake, nil
		}
	}

	return nil, errors.Errorf("account '%s' has no snake '%s'", account.Email(), raw)
}
