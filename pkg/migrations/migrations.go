package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var embedded embed.FS

// MigrateStore applies every pending migration. When migrationFolder is empty the migrations
// bundled with the binary for the connection's dialect are used.
func MigrateStore(db *gorm.DB, migrationFolder string) error {
	goose.SetLogger(&logger{})

	dialect, dir := dialectFor(db)

	var fsys fs.FS
	if migrationFolder == "" {
		sub, err := fs.Sub(embedded, "sql/"+dir)
		if err != nil {
			return err
		}
		fsys = sub
	} else {
		fi, err := os.Stat(migrationFolder)
		if err != nil {
			return err
		}
		if !fi.Mode().IsDir() {
			return fmt.Errorf("failed to open migration folder: %s is not a folder", migrationFolder)
		}
		fsys = os.DirFS(migrationFolder)
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return goose.Up(sqlDB, ".")
}

// Version returns the current schema version.
func Version(db *gorm.DB) (int64, error) {
	dialect, _ := dialectFor(db)
	if err := goose.SetDialect(dialect); err != nil {
		return 0, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersion(sqlDB)
}

// dialectFor returns the goose dialect and the bundled migrations directory.
func dialectFor(db *gorm.DB) (string, string) {
	if db.Dialector.Name() == "postgres" {
		return "postgres", "postgres"
	}
	return "sqlite3", "sqlite"
}

/*
logger implements goose.Logger interface

	type Logger interface {
		Fatalf(format string, v ...interface{})
		Printf(format string, v ...interface{})
	}
*/
type logger struct{}

func (m *logger) Printf(format string, v ...interface{}) { zap.S().Infof(format, v...) }
func (m *logger) Fatalf(format string, v ...interface{}) { zap.S().Fatalf(format, v...) }
