// ABOUTME: Data migration between ironlog storage backends.
// ABOUTME: Copies the named snapshot document from source to destination.

package storage

import (
	"context"
	"fmt"

	"github.com/harperreed/ironlog/internal/models"
	"github.com/harperreed/ironlog/internal/session"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Workouts     int
	BodyMetrics  int
	RecoveryLogs int
	Bytes        int
}

// MigrateData copies the snapshot from src to dst, overwriting dst. The
// document is decoded first so a corrupt source is never copied.
func MigrateData(ctx context.Context, src, dst Backend) (*MigrateSummary, error) {
	data, err := src.Load(ctx, models.SnapshotName)
	if err != nil {
		return nil, fmt.Errorf("load source snapshot: %w", err)
	}
	snap, err := session.DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	if err := dst.Save(ctx, models.SnapshotName, data); err != nil {
		return nil, fmt.Errorf("save destination snapshot: %w", err)
	}
	return &MigrateSummary{
		Workouts:     len(snap.Workouts),
		BodyMetrics:  len(snap.BodyMetrics),
		RecoveryLogs: len(snap.RecoveryLogs),
		Bytes:        len(data),
	}, nil
}
