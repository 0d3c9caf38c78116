// ABOUTME: Persisted snapshot of the whole workout store.
// ABOUTME: One named document holds history, logs, settings and the active session.
package models

// SnapshotVersion is the current snapshot schema version.
const SnapshotVersion = 1

// SnapshotName is the key the store state is saved under.
const SnapshotName = "ironlog-storage"

// Snapshot is the serialised store state. Revision counts saves and is
// used to detect writes from other processes.
type Snapshot struct {
	Version         int              `json:"version"`
	Revision        int64            `json:"revision"`
	User            UserProfile      `json:"user"`
	Workouts        []WorkoutSession `json:"workouts"`
	BodyMetrics     []BodyMetric     `json:"body_metrics"`
	RecoveryLogs    []RecoveryLog    `json:"recovery_logs"`
	ActiveWorkout   *WorkoutSession  `json:"active_workout,omitempty"`
	LastSummary     *WorkoutSummary  `json:"last_finished_summary,omitempty"`
	SoundEnabled    bool             `json:"sound_enabled"`
	Settings        UserSettings     `json:"settings"`
	TrainingSplit   []TrainingDay    `json:"training_split"`
	CustomExercises []Exercise       `json:"custom_exercises"`
}
