package setup

import (
	"context"

	"github.com/bornholm/snakebnb/internal/config"
	"github.com/bornholm/snakebnb/internal/core/service"
	"github.com/pkg/errors"
)

var NewBookingManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.BookingManager, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create store from config")
	}

	return service.NewBookingManager(store), nil
})
