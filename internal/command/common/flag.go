package common

import (
	"strings"
	"time"

	"github.com/bornholm/snakebnb/internal/config"
	"github.com/bornholm/snakebnb/internal/core/model"
	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/bornholm/snakebnb/internal/core/service"
	"github.com/bornholm/snakebnb/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	paramEmail = "email"

	DateLayout = "2006-01-02"
)

var flagEmail = &cli.StringFlag{
	Name:    paramEmail,
	Aliases: []string{"e"},
	EnvVars: []string{"SNAKEBNB_EMAIL"},
	Usage:   "Email of the account to act as",
}

func WithCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		flagEmail,
	}, flags...)
}

func GetBookingManager(cCtx *cli.Context) (*service.BookingManager, error) {
	conf, err := config.Parse()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}

	manager, err := setup.NewBookingManagerFromConfig(cCtx.Context, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create booking manager from config")
	}

	return manager, nil
}

// NormalizeEmail lowercases and trims an email so that lookups are
// case-insensitive. Emails are stored normalized, so normalization happens
// here, before anything hits the store.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ResolveAccount loads the account designated by the --email flag. Every
// command acting on behalf of an account goes through it.
func ResolveAccount(cCtx *cli.Context, manager *service.BookingManager) (model.Owner, error) {
	email := NormalizeEmail(cCtx.String(paramEmail))
	if email == "" {
		return nil, errors.New("no account selected, use --email or SNAKEBNB_EMAIL")
	}

	account, err := manager.FindAccountByEmail(cCtx.Context, email)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, errors.Errorf("no account registered for '%s'", email)
		}

		return nil, errors.WithStack(err)
	}

	return account, nil
}

func ParseDate(raw string) (time.Time, error) {
	date, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "could not parse date '%s', expected format '%s'", raw, DateLayout)
	}

	return date, nil
}

func ParseDateRange(rawCheckIn, rawCheckOut string) (time.Time, time.Time, error) {
	checkIn, err := ParseDate(rawCheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, errors.WithStack(err)
	}

	checkOut, err := ParseDate(rawCheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, errors.WithStack(err)
	}

	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, errors.Errorf("check-out '%s' must be after check-in '%s'", rawCheckOut, rawCheckIn)
	}

	return checkIn, checkOut, nil
}
