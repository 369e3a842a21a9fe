package gorm

import (
	"path/filepath"
	"testing"

	"github.com/bornholm/snakebnb/internal/core/port"
	"github.com/bornholm/snakebnb/internal/core/port/testsuite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
)

func TestStore(t *testing.T) {
	testsuite.TestStore(t, func(t *testing.T) (port.Store, error) {
		dsn := filepath.Join(t.TempDir(), "snakebnb.sqlite")

		db, err := gorm.Open(gormlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, errors.WithStack(err)
		}

		internalDB, err := db.DB()
		if err != nil {
			return nil, errors.WithStack(err)
		}

		internalDB.SetMaxOpenConns(1)

		if err := db.Exec("PRAGMA journal_mode=wal; PRAGMA foreign_keys=on; PRAGMA busy_timeout=5000").Error; err != nil {
			return nil, errors.WithStack(err)
		}

		return NewStore(db), nil
	})
}
