// Package catalog maintains the local index of archived tracks using
// BoltDB. The index is a convenience layer over the output directory:
// losing it never loses media, it only empties the -list and -search
// views until tracks are re-recorded.
package catalog

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/soundry/reel/internal/domain"
)

// FileName is the catalog database file, kept inside the output
// directory so the archive and its index travel together.
const FileName = "catalog.db"

var bucketTracks = []byte("tracks")

// Catalog implements domain.ArchiveIndex using BoltDB
type Catalog struct {
	db *bolt.DB
}

// Open opens (or creates) the catalog database in dir
func Open(dir string) (*Catalog, error) {
	dbPath := filepath.Join(dir, FileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketTracks)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create catalog bucket: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close releases the underlying database
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Record stores one archive entry keyed by track id, overwriting any
// previous entry for the same track.
func (c *Catalog) Record(entry domain.ArchiveEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode catalog entry: %w", err)
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTracks)
		return b.Put([]byte(entry.TrackID), data)
	})
}

// Get returns the entry for a track id, if recorded
func (c *Catalog) Get(trackID string) (domain.ArchiveEntry, bool) {
	var entry domain.ArchiveEntry
	found := false

	c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTracks)
		if v := b.Get([]byte(trackID)); v != nil {
			found = json.Unmarshal(v, &entry) == nil
		}
		return nil
	})

	return entry, found
}

// All returns every recorded entry, newest archived first. Entries
// that fail to decode are skipped rather than failing the listing.
func (c *Catalog) All() ([]domain.ArchiveEntry, error) {
	var entries []domain.ArchiveEntry

	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTracks)
		return b.ForEach(func(k, v []byte) error {
			var entry domain.ArchiveEntry
			if json.Unmarshal(v, &entry) == nil {
				entries = append(entries, entry)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ArchivedAt.After(entries[j].ArchivedAt)
	})
	return entries, nil
}

// Count returns the number of recorded entries
func (c *Catalog) Count() (int, error) {
	count := 0
	err := c.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(bucketTracks).Stats().KeyN
		return nil
	})
	return count, err
}
