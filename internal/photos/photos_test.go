// ABOUTME: Tests for the Badger-backed progress-photo store.
// ABOUTME: Uses in-memory and temp-dir databases.
package photos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutListDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	older, err := s.Put(ctx, []byte("jpeg-1"), Meta{Angle: AngleFront, Timestamp: base})
	require.NoError(t, err)
	newer, err := s.Put(ctx, []byte("jpeg-22"), Meta{Angle: AngleSide, Label: "week 4", Timestamp: base.Add(72 * time.Hour)})
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer, list[0].ID)
	assert.Equal(t, older, list[1].ID)
	assert.Equal(t, "week 4", list[0].Label)
	assert.Equal(t, 7, list[0].Size)

	p, err := s.Get(ctx, older)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-1"), p.Blob)
	assert.Equal(t, AngleFront, p.Angle)

	require.NoError(t, s.Delete(ctx, older))
	assert.ErrorIs(t, s.Delete(ctx, older), ErrNotFound)
	_, err = s.Get(ctx, older)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPutDefaults(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, nil, Meta{})
	assert.Error(t, err)

	id, err := s.Put(ctx, []byte("x"), Meta{})
	require.NoError(t, err)
	p, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, AngleOther, p.Angle)
	assert.False(t, p.Timestamp.IsZero())
}

func TestEmptyListIsNotNil(t *testing.T) {
	s := newStore(t)
	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestPersistsOnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)
	id, err := s.Put(ctx, []byte("png"), Meta{Angle: AngleBack})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	p, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), p.Blob)
}

func TestCancelledContext(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Put(ctx, []byte("x"), Meta{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Delete(ctx, uuid.New()), context.Canceled)
}

func TestParseAngle(t *testing.T) {
	a, err := ParseAngle("")
	require.NoError(t, err)
	assert.Equal(t, AngleOther, a)
	a, err = ParseAngle("side")
	require.NoError(t, err)
	assert.Equal(t, AngleSide, a)
	_, err = ParseAngle("top")
	assert.Error(t, err)
}
