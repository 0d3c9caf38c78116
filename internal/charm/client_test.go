// ABOUTME: Unit tests for the Charm KV snapshot backend.
// ABOUTME: Uses an in-memory kvStore so no Charm account is needed.
package charm

import (
	"context"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v3"

	"github.com/harperreed/ironlog/internal/models"
	"github.com/harperreed/ironlog/internal/storage"
)

type memKV struct {
	data     map[string][]byte
	readOnly bool
	syncs    int
	closed   bool
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}}
}

func (m *memKV) Get(key []byte) ([]byte, error) {
	v, ok := m.data[string(key)]
	if !ok {
		return nil, badger.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) Set(key, value []byte) error {
	m.data[string(key)] = value
	return nil
}

func (m *memKV) Delete(key []byte) error {
	delete(m.data, string(key))
	return nil
}

func (m *memKV) Keys() ([][]byte, error) {
	var keys [][]byte
	for k := range m.data {
		keys = append(keys, []byte(k))
	}
	return keys, nil
}

func (m *memKV) Sync() error      { m.syncs++; return nil }
func (m *memKV) IsReadOnly() bool { return m.readOnly }
func (m *memKV) Close() error     { m.closed = true; return nil }

func TestSnapshotKeyFormat(t *testing.T) {
	if got := SnapshotPrefix + models.SnapshotName; got != "snapshot:ironlog-storage" {
		t.Errorf("Unexpected snapshot key %q", got)
	}
}

func TestSaveLoad(t *testing.T) {
	mem := newMemKV()
	c := newClient(mem)
	ctx := context.Background()

	if _, err := c.Load(ctx, models.SnapshotName); !errors.Is(err, storage.ErrSnapshotNotFound) {
		t.Fatalf("Expected ErrSnapshotNotFound, got %v", err)
	}

	if err := c.Save(ctx, models.SnapshotName, []byte(`{}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if mem.syncs != 1 {
		t.Errorf("Expected one sync after write, got %d", mem.syncs)
	}

	got, err := c.Load(ctx, models.SnapshotName)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != `{}` {
		t.Errorf("Unexpected document %s", got)
	}

	names, err := c.Names()
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	if len(names) != 1 || names[0] != models.SnapshotName {
		t.Errorf("Unexpected names %v", names)
	}

	if err := c.Delete(ctx, models.SnapshotName); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := c.Load(ctx, models.SnapshotName); !errors.Is(err, storage.ErrSnapshotNotFound) {
		t.Errorf("Expected document removed, got %v", err)
	}
}

func TestAutoSyncDisabled(t *testing.T) {
	mem := newMemKV()
	c := newClient(mem)
	c.SetAutoSync(false)

	if err := c.Save(context.Background(), "x", []byte("1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if mem.syncs != 0 {
		t.Errorf("Expected no sync, got %d", mem.syncs)
	}
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	mem := newMemKV()
	mem.readOnly = true
	c := newClient(mem)

	if err := c.Save(context.Background(), "x", []byte("1")); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("Expected ErrReadOnly, got %v", err)
	}
	if err := c.Sync(); err != nil {
		t.Errorf("Sync in read-only mode should be a no-op, got %v", err)
	}
	if !c.IsReadOnly() {
		t.Error("Expected read-only client")
	}
}

func TestPersisterOverCharm(t *testing.T) {
	mem := newMemKV()
	c := newClient(mem)

	snap, err := storage.LoadSnapshot(context.Background(), c)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	snap.SoundEnabled = false
	if err := storage.NewPersister(c).Persist(snap); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	got, err := storage.LoadSnapshot(context.Background(), c)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if got.SoundEnabled {
		t.Error("Expected persisted sound flag")
	}
}

func TestCanceledContext(t *testing.T) {
	c := newClient(newMemKV())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Save(ctx, "x", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
