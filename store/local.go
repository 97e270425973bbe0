// store/local.go
package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/filatrack/filatrack/api/models"
)

var (
	bucketApp      = []byte("appdata")
	keyCollections = []byte("collections")
)

// LocalStore keeps a durable copy of the collections in a bbolt file: one
// bucket, one key, one JSON blob, mirroring the remote document shape.
type LocalStore struct {
	db *bolt.DB
}

// OpenLocal opens the bbolt file at path, creating it if needed.
func OpenLocal(path string) (*LocalStore, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketApp)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init local store: %w", err)
	}
	return &LocalStore{db: db}, nil
}

// Load returns the stored collections, or nil when nothing has ever been
// saved.
func (l *LocalStore) Load() (*models.Collections, error) {
	var raw []byte
	err := l.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketApp).Get(keyCollections); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read local store: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var c models.Collections
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode local store: %w", err)
	}
	c = c.Normalized()
	return &c, nil
}

// Save overwrites the stored blob with the given collections.
func (l *LocalStore) Save(c models.Collections) error {
	raw, err := json.Marshal(c.Normalized())
	if err != nil {
		return fmt.Errorf("encode collections: %w", err)
	}
	err = l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketApp).Put(keyCollections, raw)
	})
	if err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	return nil
}

// Close closes the underlying bbolt file.
func (l *LocalStore) Close() error {
	return l.db.Close()
}
