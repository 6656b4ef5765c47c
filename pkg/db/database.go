package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultDSN = "project.db"

type Options struct {
	// DSN is either a postgres URL or a sqlite path; empty means DefaultDSN.
	DSN string
	// Echo logs every statement.
	Echo bool
	// Migrate runs after the connection is up. Only Initialize calls it.
	Migrate func(*gorm.DB) error
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func configurePool(sqlDB *sql.DB, postgres bool) {
	if !postgres {
		// one connection keeps :memory: databases alive and serializes writers
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
		return
	}

	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

// Open connects to the store described by opts and pings it. Each call returns
// a fresh handle.
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	dsn := opts.DSN
	if dsn == "" {
		dsn = DefaultDSN
	}

	pg := isPostgres(dsn)
	var dialector gorm.Dialector
	if pg {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(sqliteDSN(dsn))
	}

	level := logger.Warn
	if opts.Echo {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    pg,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	configurePool(sqlDB, pg)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return db, nil
}

var (
	initOnce sync.Once
	initDB   *gorm.DB
	initErr  error
)

// Initialize opens and migrates the store once per process. Later calls
// ignore opts and hand back the first result.
func Initialize(ctx context.Context, opts Options) (*gorm.DB, error) {
	initOnce.Do(func() {
		db, err := Open(ctx, opts)
		if err != nil {
			initErr = err
			return
		}
		if opts.Migrate != nil {
			if err := opts.Migrate(db); err != nil {
				initErr = fmt.Errorf("migrate db: %w", err)
				if sqlDB, e := db.DB(); e == nil {
					_ = sqlDB.Close()
				}
				return
			}
		}
		initDB = db
	})
	return initDB, initErr
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
