package setup

import (
	"context"

	gormAdapter "github.com/bornholm/snakebnb/internal/adapter/gorm"
	"github.com/bornholm/snakebnb/internal/config"
	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/pkg/errors"
)

var getStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.Store, error) {
	db, err := getGormDatabaseFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create database from config")
	}

	return gormAdapter.NewStore(db), nil
})
