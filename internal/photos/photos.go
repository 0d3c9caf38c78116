// ABOUTME: Progress-photo blob store on Badger.
// ABOUTME: Metadata and image bytes are stored under separate keys per photo.
package photos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a photo ID is unknown.
var ErrNotFound = errors.New("photo not found")

// Angle is the camera angle of a progress photo.
type Angle string

const (
	AngleFront Angle = "front"
	AngleSide  Angle = "side"
	AngleBack  Angle = "back"
	AngleOther Angle = "other"
)

// ParseAngle validates an angle, defaulting empty input to "other".
func ParseAngle(s string) (Angle, error) {
	switch a := Angle(s); a {
	case AngleFront, AngleSide, AngleBack, AngleOther:
		return a, nil
	case "":
		return AngleOther, nil
	default:
		return "", fmt.Errorf("unknown photo angle: %s", s)
	}
}

// Meta describes a stored photo.
type Meta struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Angle     Angle     `json:"angle"`
	Label     string    `json:"label,omitempty"`
	Size      int       `json:"size"`
}

// Photo is a stored photo with its bytes.
type Photo struct {
	Meta
	Blob []byte `json:"-"`
}

const (
	metaPrefix = "photo:meta:"
	blobPrefix = "photo:blob:"
)

// Store keeps photos in a Badger database.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a photo store in dir.
func Open(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open photo store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that lives only for the process.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open photo store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a photo and returns its new ID. A zero timestamp is set to now.
func (s *Store) Put(ctx context.Context, blob []byte, meta Meta) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	if len(blob) == 0 {
		return uuid.Nil, errors.New("photo is empty")
	}
	meta.ID = uuid.New()
	meta.Size = len(blob)
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.Angle == "" {
		meta.Angle = AngleOther
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode photo meta: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(blobPrefix+meta.ID.String()), blob); err != nil {
			return err
		}
		return txn.Set([]byte(metaPrefix+meta.ID.String()), data)
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("save photo: %w", err)
	}
	return meta.ID, nil
}

// Get loads one photo with its bytes.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var p Photo
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaPrefix + id.String()))
		if err != nil {
			return err
		}
		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &p.Meta); err != nil {
			return fmt.Errorf("decode photo meta: %w", err)
		}
		item, err = txn.Get([]byte(blobPrefix + id.String()))
		if err != nil {
			return err
		}
		p.Blob, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load photo: %w", err)
	}
	return &p, nil
}

// List returns metadata for every photo, newest first.
func (s *Store) List(ctx context.Context) ([]Meta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []Meta{}
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(metaPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			data, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var m Meta
			if err := json.Unmarshal(data, &m); err != nil {
				return fmt.Errorf("decode photo meta: %w", err)
			}
			out = append(out, m)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	slices.SortStableFunc(out, func(a, b Meta) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out, nil
}

// Delete removes a photo. Unknown IDs return ErrNotFound.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(metaPrefix + id.String())
		if _, err := txn.Get(key); err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete([]byte(blobPrefix + id.String()))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}
