// ABOUTME: Exercise registry merging the built-in table with custom entries.
// ABOUTME: Registration is idempotent by ID; lookups never fail hard.
package catalog

import (
	"sort"
	"strings"

	"github.com/harperreed/ironlog/internal/models"
)

// Registry resolves exercise IDs across built-in and custom entries.
// It is not safe for concurrent use; the session store serialises access.
type Registry struct {
	builtin map[string]models.Exercise
	order   []string
	custom  []models.Exercise
}

// NewRegistry creates a registry with the built-in table and any
// previously registered custom exercises.
func NewRegistry(custom []models.Exercise) *Registry {
	r := &Registry{builtin: make(map[string]models.Exercise, len(builtinExercises))}
	for _, ex := range builtinExercises {
		if _, ok := r.builtin[ex.ID]; ok {
			continue
		}
		ex.Source = models.SourceBuiltin
		r.builtin[ex.ID] = ex
		r.order = append(r.order, ex.ID)
	}
	for _, ex := range custom {
		r.Register(ex)
	}
	return r
}

// Lookup returns the exercise for id.
func (r *Registry) Lookup(id string) (models.Exercise, bool) {
	if ex, ok := r.builtin[id]; ok {
		return ex, true
	}
	for _, ex := range r.custom {
		if ex.ID == id {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

// Register adds a custom exercise. It returns false if the ID is empty or
// already known.
func (r *Registry) Register(ex models.Exercise) bool {
	if ex.ID == "" {
		return false
	}
	if _, ok := r.Lookup(ex.ID); ok {
		return false
	}
	if ex.Source == "" || ex.Source == models.SourceBuiltin {
		ex.Source = models.SourceCustom
	}
	r.custom = append(r.custom, ex)
	return true
}

// Custom returns a copy of the custom entries in registration order.
func (r *Registry) Custom() []models.Exercise {
	return append([]models.Exercise(nil), r.custom...)
}

// All returns built-in entries followed by custom ones.
func (r *Registry) All() []models.Exercise {
	out := make([]models.Exercise, 0, len(r.order)+len(r.custom))
	for _, id := range r.order {
		out = append(out, r.builtin[id])
	}
	return append(out, r.custom...)
}

// Search filters the catalog by a case-insensitive name substring and an
// optional muscle group ("" or "All" matches everything).
func (r *Registry) Search(query, group string) []models.Exercise {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Exercise
	for _, ex := range r.All() {
		if q != "" && !strings.Contains(strings.ToLower(ex.Name), q) {
			continue
		}
		if group != "" && !strings.EqualFold(group, "all") && !strings.EqualFold(ex.MuscleGroup, group) {
			continue
		}
		out = append(out, ex)
	}
	return out
}

// MuscleGroups returns the distinct muscle groups in the catalog, sorted.
func (r *Registry) MuscleGroups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, ex := range r.All() {
		if ex.MuscleGroup == "" || seen[ex.MuscleGroup] {
			continue
		}
		seen[ex.MuscleGroup] = true
		groups = append(groups, ex.MuscleGroup)
	}
	sort.Strings(groups)
	return groups
}
