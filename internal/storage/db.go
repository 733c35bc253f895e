// Package storage provides the persistence layer for Tasksync.
//
// Every collection is a single JSON blob under a fixed key. Repositories read
// the whole blob, modify it in memory and write it back.
package storage

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/logging"
)

const (
	// AppName is the application name used for data directories.
	AppName = "tasksync"

	// MemoryPath selects the volatile in-memory backend.
	MemoryPath = ":memory:"

	// NonePath runs without any backing store.
	NonePath = "none"
)

// DB wraps a Badger database connection.
type DB struct {
	db           *badger.DB
	path         string
	minFreeSpace uint64
}

// Options configures the database connection.
type Options struct {
	// Path is the database directory path. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
	// MinFreeSpace is checked before each write to an on-disk database.
	// Zero disables the check.
	MinFreeSpace uint64
}

// DefaultPath returns the default database path following XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// Open opens or creates a database at the given path.
func Open(opts Options) (*DB, error) {
	var badgerOpts badger.Options
	path := opts.Path

	if opts.InMemory || path == "" || path == MemoryPath {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
		path = ""
	} else {
		if err := EnsureDirectory(path, opts.MinFreeSpace); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(path)
	}

	// Reduce logging noise
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		if strings.Contains(err.Error(), "directory lock") {
			return nil, errors.NewRecoverableError("database is in use", errors.ErrDatabaseLocked, 0)
		}
		if os.IsPermission(err) {
			return nil, errors.NewSystemErrorWithOp("open database", path, errors.ErrPermissionDenied)
		}
		if IsDatabaseCorrupted(err) {
			return nil, errors.NewSystemErrorWithOp("open database", path,
				fmt.Errorf("%w: %v", errors.ErrDatabaseCorrupted, err))
		}
		return nil, errors.NewSystemErrorWithOp("open database", path, err)
	}

	logging.DebugLog("database opened", "path", path)
	return &DB{db: db, path: path, minFreeSpace: opts.MinFreeSpace}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database directory, or "" for an in-memory database.
func (d *DB) Path() string {
	return d.path
}

// Badger returns the underlying Badger database for advanced operations.
func (d *DB) Badger() *badger.DB {
	return d.db
}

// Get returns the blob stored under key. ok is false when the key is absent.
func (d *DB) Get(key string) (value string, ok bool, err error) {
	err = d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewSystemErrorWithOp("read", key, err)
	}
	return value, true, nil
}

// Set replaces the blob stored under key.
func (d *DB) Set(key, value string) error {
	if d.path != "" && d.minFreeSpace > 0 {
		if err := CheckDiskSpace(d.path, d.minFreeSpace); err != nil {
			return err
		}
	}
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	return wrapWriteError("write", key, err)
}

// Remove deletes the blob stored under key. Removing an absent key is not an error.
func (d *DB) Remove(key string) error {
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	return wrapWriteError("remove", key, err)
}

// Keys lists every stored key.
func (d *DB) Keys() ([]string, error) {
	var keys []string
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

func wrapWriteError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if isDiskFullError(err) {
		return errors.NewSystemErrorWithOp(op, "disk full", errors.ErrDiskFull)
	}
	return errors.NewSystemErrorWithOp(op, key, err)
}
