package db

import (
	"fmt"
	"strings"
	"time"

	"restofinder/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database: MySQL, then Postgres, then SQLite
func Open() (*gorm.DB, error) {
	switch config.Dialect() {
	case "mysql":
		return OpenWith(mysql.Open(config.MYSQL_DSN), true)
	case "postgres":
		return OpenWith(postgres.Open(config.POSTGRES_DSN), true)
	}
	return OpenSQLite(config.SQLITE_FILE)
}

// OpenSQLite opens a SQLite database with foreign keys enabled.
// Tests use it with "file:<name>?mode=memory&cache=shared".
func OpenSQLite(file string) (*gorm.DB, error) {
	dsn := file
	if !strings.Contains(dsn, "_fk=") && !strings.Contains(dsn, "_foreign_keys=") {
		if strings.Contains(dsn, "?") {
			dsn += "&_fk=1"
		} else {
			dsn += "?_fk=1"
		}
	}
	// Prepared statements are skipped: with a single connection they would
	// be prepared outside of a running transaction and block on it
	db, err := OpenWith(sqlite.Open(dsn), false)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer, queue everything on one connection
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func OpenWith(dialector gorm.Dialector, prepareStmt bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if config.DEBUG_MODE {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            prepareStmt,
		Logger:                 logger.Default.LogMode(logLevel),
	})
	if err != nil || db == nil {
		return nil, fmt.Errorf("open %s: %w", dialector.Name(), err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// OpenMemory opens a named in-memory SQLite database. It lives as long as a connection to it is open.
func OpenMemory(name string) (*gorm.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	return OpenSQLite("file:" + name + "?mode=memory&cache=shared")
}
