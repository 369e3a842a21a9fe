package host

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
		Name:  "host",
		Usage: "Offer cages for boarding",
		Subcommands: []*cli.Command{
			RegisterCageCommand(),
			ListCagesCommand(),
			AddAvailabilityCommand(),
			BookingsCommand(),
		},
	}
}

const (
	flagName           = "name"
	flagPrice          = "price"
	flagSquareMeters   = "square-meters"
	flagCarpeted       = "carpeted"
	flagToys           = "toys"
	flagAllowDangerous = "allow-dangerous"
	flagCage           = "cage"
	flagStart          = "start"
	flagDays           = "days"
)

func RegisterCageCommand() *cli.Command {
	return &cli.Command{
		Name:  "register-cage",
		Usage: "Register a new cage for the selected account",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:     flagName,
				Aliases:  []string{"n"},
				Usage:    "Name of the cage",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     flagPrice,
				Aliases:  []string{"p"},
				Usage:    "Price per night",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     flagSquareMeters,
				Aliases:  []string{"m"},
				Usage:    "Surface of the cage in square meters",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  flagCarpeted,
				Usage: "The cage is carpeted",
			},
			&cli.BoolFlag{
				Name:  flagToys,
				Usage: "The cage has toys",
			},
			&cli.BoolFlag{
				Name:  flagAllowDangerous,
				Usage: "Venomous snakes are welcome",
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

			cage, err := manager.CreateCage(ctx, account.ID(), port.CageAttrs{
				Name:                 cCtx.String(flagName),
				Price:                cCtx.Float64(flagPrice),
				SquareMeters:         cCtx.Float64(flagSquareMeters),
				IsCarpeted:           cCtx.Bool(flagCarpeted),
				HasToys:              cCtx.Bool(flagToys),
				AllowDangerousSnakes: cCtx.Bool(flagAllowDangerous),
			})
			if err != nil {
				return errors.Wrap(err, "could not register cage")
			}

			fmt.Printf("Registered cage '%s' (%s)\n", cage.Name(), cage.ID())

			return nil
		},
	}
}

func ListCagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "list-cages",
		Usage: "List the cages of the selected account",
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

			cages, err := manager.GetCagesForOwner(ctx, account.ID())
			if err != nil {
				return errors.Wrap(err, "could not list cages")
			}

			if len(cages) == 0 {
				fmt.Println("No cage registered yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tSIZE\tSLOTS\tBOOKED")

			for _, cage := range cages {
				booked := 0
				for _, slot := range cage.Slots() {
					if !model.SlotAvailable(slot) {
						booked++
					}
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%sm²\t%d\t%d\n",
					cage.ID(), cage.Name(),
					humanize.Commaf(cage.Price()), humanize.Ftoa(cage.SquareMeters()),
					len(cage.Slots()), booked,
				)
			}

			if err := w.Flush(); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}

func AddAvailabilityCommand() *cli.Command {
	return &cli.Command{
		Name:  "add-availability",
		Usage: "Open a date range of a cage for booking",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:     flagCage,
				Aliases:  []string{"c"},
				Usage:    "ID of the cage",
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagStart,
				Aliases:  []string{"s"},
				Usage:    fmt.Sprintf("First available date (format '%s')", common.DateLayout),
				Required: true,
			},
			&cli.IntFlag{
				Name:     flagDays,
				Aliases:  []string{"d"},
				Usage:    "Number of available days",
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

			cage, err := resolveCage(cCtx, manager, account, cCtx.String(flagCage))
			if err != nil {
				return errors.WithStack(err)
			}

			start, err := common.ParseDate(cCtx.String(flagStart))
			if err != nil {
				return errors.WithStack(err)
			}

			slot, err := manager.AddAvailableDate(ctx, cage.ID(), start, cCtx.Int(flagDays))
			if err != nil {
				return errors.Wrap(err, "could not add availability")
			}

			fmt.Printf("Cage '%s' is now available from %s to %s\n",
				cage.Name(),
				slot.CheckIn().Format(common.DateLayout),
				slot.CheckOut().Format(common.DateLayout),
			)

			return nil
		},
	}
}

func BookingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "bookings",
		Usage: "List the bookings received on the cages of the selected account",
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

			cages, err := manager.GetCagesForOwner(ctx, account.ID())
			if err != nil {
				return errors.Wrap(err, "could not list cages")
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "CAGE\tCHECK-IN\tCHECK-OUT\tSNAKE\tBOOKED")

			total := 0
			for _, cage := range cages {
				for _, slot := range cage.Slots() {
					if model.SlotAvailable(slot) {
						continue
					}

					snake, err := manager.GetSnakeByID(ctx, *slot.GuestSnakeID())
					if err != nil {
						return errors.Wrap(err, "could not retrieve guest snake")
					}

					fmt.Fprintf(w, "%s\t%s\t%s\t%s (%s)\t%s\n",
						cage.Name(),
						slot.CheckIn().Format(common.DateLayout),
						slot.CheckOut().Format(common.DateLayout),
						snake.Name(), snake.Species(),
						humanize.Time(*slot.BookedAt()),
					)

					total++
				}
			}

			if total == 0 {
				fmt.Println("No booking received yet.")
				return nil
			}

			if err := w.Flush(); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}

func resolveCage(cCtx *cli.Context, manager *service.BookingManager, account model.Owner, raw string) (model.Cage, error) {
	cages, err := manager.GetCagesForOwner(cCtx.Context, account.ID())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, cage := range cages {
		if string(cage.ID()) == raw || cage.Name() == raw {
			return cage, nil
		}
	}

	return nil, errors.Errorf("account '%s' has no cage '%s'", account.Email(), raw)
}
