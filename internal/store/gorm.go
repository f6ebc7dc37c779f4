package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
	"github.com/ngrok/sqlmw"
	"github.com/peeringlatam/network-planner/internal/config"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	pgxInstrumentedDriver    = "pgx-instrumented"
	sqliteInstrumentedDriver = "sqlite3-instrumented"
)

var registerDrivers sync.Once

func instrumentDrivers() {
	registerDrivers.Do(func() {
		sql.Register(pgxInstrumentedDriver, sqlmw.Driver(stdlib.GetDefaultDriver(), &metricInterceptor{}))
		sql.Register(sqliteInstrumentedDriver, sqlmw.Driver(&sqlite3.SQLiteDriver{}, &metricInterceptor{}))
	})
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	instrumentDrivers()

	var dia gorm.Dialector

	if cfg.Database.Type == "pgsql" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s port=%s",
			cfg.Database.Hostname,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Port,
		)
		if cfg.Database.Name != "" {
			dsn = fmt.Sprintf("%s dbname=%s", dsn, cfg.Database.Name)
		}
		dia = postgres.New(postgres.Config{DriverName: pgxInstrumentedDriver, DSN: dsn})
	} else {
		dia = sqlite.New(sqlite.Config{DriverName: sqliteInstrumentedDriver, DSN: sqliteDSN(cfg.Database.Name)})
	}

	newLogger := logger.New(
		logrus.New(),
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true,        // Don't include params in the SQL log
			Colorful:                  false,       // Disable color
		},
	)

	newDB, err := gorm.Open(dia, &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		zap.S().Named("gorm").Errorf("failed to connect database: %v", err)
		return nil, err
	}

	sqlDB, err := newDB.DB()
	if err != nil {
		zap.S().Named("gorm").Errorf("failed to configure connections: %v", err)
		return nil, err
	}

	if cfg.Database.Type == "pgsql" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)

		var minorVersion string
		if result := newDB.Raw("SELECT version()").Scan(&minorVersion); result.Error != nil {
			zap.S().Named("gorm").Infoln(result.Error.Error())
			return nil, result.Error
		}

		zap.S().Named("gorm").Infof("PostgreSQL information: '%s'", minorVersion)
	} else {
		// one connection keeps a ":memory:" database alive and serializes writers
		sqlDB.SetMaxOpenConns(1)
	}

	return newDB, nil
}

func sqliteDSN(name string) string {
	if name == "" || name == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", name)
}

// IsPostgres reports whether db talks to a postgres server.
func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
