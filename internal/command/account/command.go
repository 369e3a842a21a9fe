package account

import (
	"fmt"

	"github.com/bornholm/snakebnb/internal/command/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Root() *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Manage accounts",
		Subcommands: []*cli.Command{
			RegisterCommand(),
			ShowCommand(),
		},
	}
}

const (
	flagName = "name"
)

func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Register a new account",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:     flagName,
				Aliases:  []string{"n"},
				Usage:    "Display name of the account",
				Required: true,
			},
		),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			manager, err := common.GetBookingManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			name := cCtx.String(flagName)
			email := common.NormalizeEmail(cCtx.String("email"))

			account, err := manager.CreateAccount(ctx, name, email)
			if err != nil {
				return errors.Wrap(err, "could not register account")
			}

			fmt.Printf("Registered account '%s' <%s> (%s)\n", account.Name(), account.Email(), account.ID())

			return nil
		},
	}
}

func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the selected account",
		Flags: common.WithCommonFlags(),
		Action: func(cCtx *cli.Context) error {
			manager, err := common.GetBookingManager(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			account, err := common.ResolveAccount(cCtx, manager)
			if err != nil {
				return errors.WithStack(err)
			}

			fmt.Printf("%s <%s>\n", account.Name(), account.Email())
			fmt.Printf("ID: %s\n", account.ID())
			fmt.Printf("Snakes: %d\n", len(account.SnakeIDs()))
			fmt.Printf("Cages: %d\n", len(account.CageIDs()))

			return nil
		},
	}
}
