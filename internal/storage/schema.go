// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: One row per named snapshot document.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := d.db.Exec(schema)
	return err
}
