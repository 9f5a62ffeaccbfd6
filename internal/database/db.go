package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"partstore-backend/internal/config"
	"partstore-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ErrBusy means the store lock could not be acquired within the configured
// wait ceiling. Safe to retry.
var ErrBusy = errors.New("store is busy")

var (
	dbPath   string
	lockWait = 5 * time.Second
	lock     = make(chan struct{}, 1)
)

func Init(cfg *config.Config) {
	dbPath = cfg.DatabasePath
	lockWait = cfg.LockWait

	var err error
	DB, err = open()
	if err != nil {
		log.Fatalf("Cannot open database %s: %v", dbPath, err)
	}
}

func open() (*gorm.DB, error) {
	// busy_timeout mirrors the lock-wait ceiling at the SQLite level in
	// case an external process holds the file.
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)", dbPath, lockWait.Milliseconds())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.Part{}, &models.LedgerEntry{}); err != nil {
		return nil, err
	}
	return db, nil
}

// Path returns the location of the live database file.
func Path() string {
	return dbPath
}

// Acquire takes the store-wide exclusive lock. Every read-modify-write
// against parts and ledger runs inside it, as does the whole
// close-copy-reopen section of a snapshot, so a snapshot can never observe
// a half-applied mutation. Waiting is bounded; callers get ErrBusy instead
// of hanging.
func Acquire() error {
	select {
	case lock <- struct{}{}:
		return nil
	case <-time.After(lockWait):
		return ErrBusy
	}
}

func Release() {
	<-lock
}

// Quiesce closes the SQLite handle, runs fn against the bare database
// file, then reopens the store. The caller must hold the store lock.
// fn's error is reported after the reopen so the store is usable again
// even when the file operation failed.
func Quiesce(fn func(path string) error) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("storage handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("storage close: %w", err)
	}

	fnErr := fn(dbPath)

	reopened, err := open()
	if err != nil {
		// keep fn's failure visible next to the reopen failure
		return errors.Join(fnErr, fmt.Errorf("storage reopen: %w", err))
	}
	DB = reopened
	return fnErr
}
