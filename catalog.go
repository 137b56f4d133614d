package untile

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/bodgit/untile/order"
	"github.com/bodgit/untile/tile"
	_ "github.com/mattn/go-sqlite3" // register sqlite3 driver
)

// Entry is a scrambled image known to the catalog.
type Entry struct {
	SHA1     string
	Name     string
	Size     tile.Size
	Ordering order.Ordering
}

// Catalog is a SQLite database of scrambled images.
type Catalog struct {
	db *sql.DB
}

// NewCatalog opens the catalog stored in file, creating it if necessary.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS scrambled (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, tile_height INTEGER NOT NULL, tile_width INTEGER NOT NULL, ordering BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Add records the image stored in file. The tile size and ordering must be
// valid for the image dimensions otherwise an error wrapping
// tile.ErrInvalidConfiguration is returned. Adding the same image again
// replaces the previous entry.
func (c *Catalog) Add(file string, size tile.Size, o order.Ordering) (int64, error) {
	sha, config, err := sha1Config(file)
	if err != nil {
		return 0, err
	}

	if !tile.Valid(config.Height, config.Width, size, o) {
		return 0, fmt.Errorf("%s: %w", file, tile.ErrInvalidConfiguration)
	}

	b, err := o.MarshalBinary()
	if err != nil {
		return 0, err
	}

	result, err := c.db.Exec("INSERT OR REPLACE INTO scrambled (sha1, name, tile_height, tile_width, ordering) VALUES (?, ?, ?, ?, ?)", sha, filepath.Base(file), size.Height, size.Width, b)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// FindBySHA1 returns the entry for the image with the given SHA-1, or nil if
// there isn't one.
func (c *Catalog) FindBySHA1(sha string) (*Entry, error) {
	e := Entry{SHA1: sha}
	var b []byte
	switch err := c.db.QueryRow("SELECT name, tile_height, tile_width, ordering FROM scrambled WHERE sha1 = ?", sha).Scan(&e.Name, &e.Size.Height, &e.Size.Width, &b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		if err := e.Ordering.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return &e, nil
	default:
		return nil, err
	}
}

// Length returns the number of images in the catalog.
func (c *Catalog) Length() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM scrambled").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}
