/*
Package untile is a library for restoring images that have been scrambled by
shuffling fixed size tiles.

Scrambled images are recorded in a catalog along with their tile size and
the ordering that restores them, keyed by the SHA-1 of the image file. A
directory tree can then be scanned and every recognised image restored.
*/
package untile

import (
	"log"

	"github.com/bodgit/untile/order"
	"github.com/bodgit/untile/tile"
)

// Untile restores scrambled images using a catalog of known orderings.
type Untile struct {
	db     *Catalog
	logger *log.Logger
}

// New opens or creates the catalog stored in file.
func New(file string, logger *log.Logger) (*Untile, error) {
	db, err := NewCatalog(file)
	if err != nil {
		return nil, err
	}
	return &Untile{
		db:     db,
		logger: logger,
	}, nil
}

// Add records the image stored in file as scrambled with the given tile
// size, restored by the ordering read from orderFile.
func (u *Untile) Add(file, orderFile string, size tile.Size) error {
	o, err := order.ReadFile(orderFile)
	if err != nil {
		return err
	}

	if _, err := u.db.Add(file, size, o); err != nil {
		return err
	}
	u.logger.Printf("Added \"%s\" with %d %s tiles\n", file, len(o), size)

	return nil
}

// ImportManifest adds every image listed in the YAML manifest file.
func (u *Untile) ImportManifest(file string) error {
	n, err := u.db.ImportManifest(file)
	if err != nil {
		return err
	}
	u.logger.Printf("Imported %d images from \"%s\"\n", n, file)

	return nil
}

// Close closes the catalog.
func (u *Untile) Close() error {
	return u.db.Close()
}
