package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/perpetuallyhorni/diary/pkg/storage"
)

//go:embed queries/*.sql
var queryFS embed.FS

// DB is a SQLite implementation of the storage.Storer interface.
// Every slot is one row of the slots table.
type DB struct {
	Conn *sql.DB // The raw database connection, exposed for extensibility.
	path string
}

var _ storage.Storer = (*DB)(nil)
var _ storage.Locator = (*DB)(nil)

// New creates a new SQLite database connection and ensures the schema is up to date.
// It returns a concrete *DB type to allow for extension.
func New(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	instance := &DB{Conn: db, path: path}
	if err := instance.createSchema(); err != nil {
		_ = instance.Close()
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}

	return instance, nil
}

// getQuery reads a raw SQL query from the embedded filesystem.
func getQuery(name string) (string, error) {
	b, err := queryFS.ReadFile("queries/" + name)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded query %s: %w", name, err)
	}
	return string(b), nil
}

// createSchema creates the slots table if it doesn't exist.
func (db *DB) createSchema() error {
	query, err := getQuery("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Conn.Exec(query)
	return err
}

// Location returns the directory holding the database file.
func (db *DB) Location() string {
	return filepath.Dir(db.path)
}

// Get reads the value of a slot.
func (db *DB) Get(key string) ([]byte, bool, error) {
	query, err := getQuery("get_slot.sql")
	if err != nil {
		return nil, false, err
	}
	var value []byte
	err = db.Conn.QueryRow(query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, true, nil
}

// Set overwrites a slot with an atomic upsert and forces a WAL checkpoint.
func (db *DB) Set(key string, value []byte) error {
	query, err := getQuery("set_slot.sql")
	if err != nil {
		return err
	}
	if _, err := db.Conn.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	if _, err := db.Conn.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL after writing slot %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.Conn.Close()
}
