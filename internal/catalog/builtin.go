// ABOUTME: Built-in exercise table and default push/pull/legs training split.
// ABOUTME: Read-only reference data; training days reference exercises by ID.
package catalog

import "github.com/harperreed/ironlog/internal/models"

func yt(id string) string { return "https://www.youtube.com/watch?v=" + id }

// builtinExercises is the built-in catalog. The first definition of an ID wins.
var builtinExercises = []models.Exercise{
	{ID: "chest_fly", Name: "Chest Fly (DB/Cable)", MuscleGroup: "Chest", TargetMuscle: "All fibers", VideoURL: yt("eGjt4lk6g34"),
		FormSteps: []string{
			"Lie on the bench with dumbbells held above your chest, palms facing each other.",
			"Lower your arms in a wide arc until you feel a deep stretch in your chest.",
			"Squeeze your chest muscles to bring the weights back together.",
		}},
	{ID: "incline_press", Name: "Incline DB/Smith Press", MuscleGroup: "Chest", TargetMuscle: "Upper chest", VideoURL: yt("8iP6nruuLyo"),
		FormSteps: []string{
			"Set the bench to a 30-45 degree angle.",
			"Press the weights straight up from your upper chest level.",
			"Lower the weights slowly until the dumbbells are near your shoulders.",
		}},
	{ID: "high_to_low_fly", Name: "High-to-Low Cable Fly", MuscleGroup: "Chest", TargetMuscle: "Lower chest", VideoURL: yt("taI4XduLpTk")},
	{ID: "skull_crushers", Name: "Skull Crushers (EZ Bar)", MuscleGroup: "Triceps", TargetMuscle: "Medial head", PainWarning: "Elbow discomfort", VideoURL: yt("d_KZxPkhzOk"),
		FormSteps: []string{
			"Lie on a flat bench holding an EZ bar with a narrow grip.",
			"Lower the bar by bending your elbows until it is just above your forehead.",
			"Extend your arms back to the starting position using your triceps.",
		}},
	{ID: "tricep_pushdown", Name: "Tricep Cable Pushdown", MuscleGroup: "Triceps", TargetMuscle: "All 3 heads", VideoURL: yt("2-LAMcpzODU")},
	{ID: "db_shoulder_press", Name: "Dumbbell Shoulder Press", MuscleGroup: "Shoulders", TargetMuscle: "Front/Lateral delts", VideoURL: yt("qEwKCR5JCog")},
	{ID: "lateral_raises", Name: "Lateral Raises", MuscleGroup: "Shoulders", TargetMuscle: "Side delts", VideoURL: yt("PzsOxWzOkYk")},
	{ID: "lat_pulldown", Name: "Lat Pulldown (Wide)", MuscleGroup: "Back", TargetMuscle: "Upper lats", Equipment: "Wrist wraps", VideoURL: yt("CAwf7n6Luuc")},
	{ID: "barbell_row", Name: "Barbell Row", MuscleGroup: "Back", TargetMuscle: "Upper back", Equipment: "Wrist wraps", VideoURL: yt("axoeDmW0oAY")},
	{ID: "seated_cable_row", Name: "Seated Cable Row", MuscleGroup: "Back", TargetMuscle: "Lower lats", Equipment: "Wrist wraps", VideoURL: yt("GZbfZ033f74")},
	{ID: "ez_curl", Name: "EZ Curl Bar", MuscleGroup: "Biceps", TargetMuscle: "Both heads", VideoURL: yt("i1YgFZB6alI")},
	{ID: "incline_db_curl", Name: "Incline Dumbbell Curls", MuscleGroup: "Biceps", TargetMuscle: "Long head", VideoURL: yt("aTYlqC_JacQ")},
	{ID: "hammer_curl", Name: "Hammer Curls", MuscleGroup: "Biceps", TargetMuscle: "Brachialis", VideoURL: yt("7jqi2qWAUzQ")},
	{ID: "smith_squat", Name: "Smith Machine Squats", MuscleGroup: "Legs", TargetMuscle: "Quads", VideoURL: yt("G_H99S_X3_o")},
	{ID: "leg_extension", Name: "Leg Extensions", MuscleGroup: "Legs", TargetMuscle: "Quads", VideoURL: yt("m0auP_3_mTo")},
	{ID: "hamstring_curl", Name: "Hamstring Curls", MuscleGroup: "Legs", TargetMuscle: "Hamstrings", VideoURL: yt("F488k67btNo")},
	{ID: "cable_crunch", Name: "Cable Crunches", MuscleGroup: "Abs", TargetMuscle: "Abs", Optional: true, VideoURL: yt("2EnWvI8AdqU")},
	{ID: "jm_press", Name: "JM Press (Smith)", MuscleGroup: "Triceps", TargetMuscle: "Lateral head", VideoURL: yt("788W85y9yY0")},
}

// DefaultSplit returns the default seven-day training split.
func DefaultSplit() []models.TrainingDay {
	return []models.TrainingDay{
		{Number: 1, Name: "Push (Chest/Shoulders/Triceps)", Focus: "Push muscles",
			MuscleGroups: []string{"Chest", "Shoulders", "Triceps"},
			ExerciseIDs:  []string{"chest_fly", "incline_press", "high_to_low_fly", "skull_crushers", "tricep_pushdown", "db_shoulder_press", "lateral_raises"}},
		{Number: 2, Name: "Pull (Back/Biceps)", Focus: "Pull muscles",
			MuscleGroups: []string{"Back", "Biceps"},
			ExerciseIDs:  []string{"lat_pulldown", "barbell_row", "seated_cable_row", "ez_curl", "incline_db_curl", "hammer_curl"}},
		{Number: 3, Name: "Legs/Abs", Focus: "Lower body",
			MuscleGroups: []string{"Legs", "Abs"},
			ExerciseIDs:  []string{"smith_squat", "leg_extension", "hamstring_curl", "cable_crunch"}},
		{Number: 4, Name: "Arms (Biceps/Triceps)", Focus: "Arm specialization",
			MuscleGroups: []string{"Biceps", "Triceps"},
			ExerciseIDs:  []string{"ez_curl", "jm_press", "skull_crushers", "hammer_curl"}},
		{Number: 5, Name: "Push (Light)", Focus: "Maintenance",
			MuscleGroups: []string{"Chest", "Shoulders", "Triceps"},
			ExerciseIDs:  []string{"incline_press", "lateral_raises"}},
		{Number: 6, Name: "Pull (Repeat)", Focus: "Pull muscles",
			MuscleGroups: []string{"Back", "Biceps"},
			ExerciseIDs:  []string{"lat_pulldown", "barbell_row", "ez_curl"}},
		{Number: 7, Name: "REST DAY", Focus: "Recovery"},
	}
}

// DefaultProfile returns the starting user profile.
func DefaultProfile() models.UserProfile {
	return models.UserProfile{
		Name:               "Rahul",
		Age:                19,
		Height:             `155 cm (5'1")`,
		CurrentWeight:      "55 kg",
		EstimatedBodyFat:   "18-22%",
		TrainingExperience: "November 2023 - Present",
		Diet:               "Vegetarian",
		Supplements:        []string{"Creatine (daily)"},
	}
}
