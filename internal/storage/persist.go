// ABOUTME: Snapshot persistence adapter between the session store and a Backend.
// ABOUTME: Writes revisioned JSON documents and reloads state other processes saved.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/ironlog/internal/logging"
	"github.com/harperreed/ironlog/internal/models"
	"github.com/harperreed/ironlog/internal/session"
)

const defaultPersistTimeout = 10 * time.Second

// Persister saves store snapshots to a Backend.
type Persister struct {
	backend Backend
	name    string
	lock    *Lock
	timeout time.Duration
	logger  *log.Logger
	held    bool
}

var _ session.Syncer = (*Persister)(nil)

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithLock serialises writes through l.
func WithLock(l *Lock) PersisterOption {
	return func(p *Persister) { p.lock = l }
}

// WithTimeout bounds each write, lock wait included.
func WithTimeout(d time.Duration) PersisterOption {
	return func(p *Persister) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithPersisterLogger sets the logger.
func WithPersisterLogger(l *log.Logger) PersisterOption {
	return func(p *Persister) { p.logger = logging.OrDiscard(l) }
}

// NewPersister creates a Persister writing models.SnapshotName to b.
func NewPersister(b Backend, opts ...PersisterOption) *Persister {
	p := &Persister{
		backend: b,
		name:    models.SnapshotName,
		timeout: defaultPersistTimeout,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Begin implements session.Syncer. The lock stays held until release is
// called, so a Persist in between does not take it again.
func (p *Persister) Begin(revision int64) (*models.Snapshot, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	release, err := p.acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	data, err := p.backend.Load(ctx, p.name)
	if errors.Is(err, ErrSnapshotNotFound) {
		return nil, release, nil
	}
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("load snapshot: %w", err)
	}
	stored, err := storedRevision(data)
	if err != nil {
		release()
		return nil, nil, err
	}
	if stored == revision {
		return nil, release, nil
	}
	snap, err := session.DecodeSnapshot(data)
	if err != nil {
		release()
		return nil, nil, err
	}
	p.logger.Debug("snapshot changed on disk", "loaded", revision, "stored", stored)
	return &snap, release, nil
}

// Persist implements session.Persister.
func (p *Persister) Persist(snap models.Snapshot) error {
	base := snap.Revision
	snap.Revision = base + 1
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	release, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	current, err := p.backend.Load(ctx, p.name)
	switch {
	case errors.Is(err, ErrSnapshotNotFound):
	case err != nil:
		return fmt.Errorf("load snapshot: %w", err)
	default:
		stored, err := storedRevision(current)
		if err != nil {
			return err
		}
		if stored != base {
			return fmt.Errorf("%w: stored revision %d, loaded %d", session.ErrConflict, stored, base)
		}
	}

	if err := p.backend.Save(ctx, p.name, data); err != nil {
		return err
	}
	p.logger.Debug("snapshot saved", "revision", snap.Revision, "bytes", len(data), "workouts", len(snap.Workouts))
	return nil
}

// acquire takes the lock unless this persister already holds it.
func (p *Persister) acquire(ctx context.Context) (func(), error) {
	if p.lock == nil || p.held {
		return func() {}, nil
	}
	release, err := p.lock.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	p.held = true
	return func() {
		p.held = false
		release()
	}, nil
}

func storedRevision(data []byte) (int64, error) {
	var head struct {
		Revision int64 `json:"revision"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return 0, fmt.Errorf("decode snapshot revision: %w", err)
	}
	return head.Revision, nil
}

// LoadSnapshot reads the stored snapshot, or the defaults when none exists.
func LoadSnapshot(ctx context.Context, b Backend) (models.Snapshot, error) {
	data, err := b.Load(ctx, models.SnapshotName)
	if errors.Is(err, ErrSnapshotNotFound) {
		return session.DefaultSnapshot(), nil
	}
	if err != nil {
		return models.Snapshot{}, err
	}
	return session.DecodeSnapshot(data)
}
