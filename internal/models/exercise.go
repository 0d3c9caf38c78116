// ABOUTME: Exercise catalog entry and training-day template models.
// ABOUTME: Training days reference exercises by ID and never mutate catalog rows.
package models

// ExerciseSource records where a catalog entry came from.
type ExerciseSource string

const (
	SourceBuiltin ExerciseSource = "builtin"
	SourceCustom  ExerciseSource = "custom"
	SourceWeb     ExerciseSource = "web"
)

// Exercise is a catalog entry. Entries are reference data and are not
// modified after creation.
type Exercise struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	MuscleGroup  string         `json:"muscle_group"`
	TargetMuscle string         `json:"target_muscle"`
	Equipment    string         `json:"equipment,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	PainWarning  string         `json:"pain_warning,omitempty"`
	Optional     bool           `json:"optional,omitempty"`
	FormSteps    []string       `json:"form_steps,omitempty"`
	Instructions []string       `json:"instructions,omitempty"`
	VideoURL     string         `json:"video_url,omitempty"`
	GIFURL       string         `json:"gif_url,omitempty"`
	Source       ExerciseSource `json:"source,omitempty"`
}

// DisplayName returns the name, falling back to the ID.
func (e Exercise) DisplayName() string {
	if e.Name == "" {
		return e.ID
	}
	return e.Name
}

// TrainingDay is one day of the training split: an ordered list of
// exercise ID references.
type TrainingDay struct {
	Number       int      `json:"number"`
	Name         string   `json:"name"`
	Focus        string   `json:"focus"`
	MuscleGroups []string `json:"muscle_groups"`
	ExerciseIDs  []string `json:"exercise_ids"`
}

// IsRestDay reports whether the day has nothing scheduled.
func (d TrainingDay) IsRestDay() bool {
	return len(d.ExerciseIDs) == 0
}

// Clone returns a deep copy of the day.
func (d TrainingDay) Clone() TrainingDay {
	out := d
	out.MuscleGroups = append([]string(nil), d.MuscleGroups...)
	out.ExerciseIDs = append([]string(nil), d.ExerciseIDs...)
	return out
}
