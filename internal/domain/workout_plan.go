package domain

import "time"

type Goal string

const (
	GoalWeightLoss     Goal = "weight_loss"
	GoalMuscleGain     Goal = "muscle_gain"
	GoalEndurance      Goal = "endurance"
	GoalFlexibility    Goal = "flexibility"
	GoalGeneralFitness Goal = "general_fitness"
)

// WorkoutPlan is a reusable training plan owned by a trainer.
// Exercises is stored as a JSON array blob, never as rows.
type WorkoutPlan struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     *string           `json:"description"`
	TrainerID       string            `json:"trainer_id"`
	DurationWeeks   *int              `json:"duration_weeks"`
	Goal            *string           `json:"goal"`
	DifficultyLevel *string           `json:"difficulty_level"`
	Exercises       []WorkoutExercise `json:"exercises"`
	IsTemplate      bool              `json:"is_template"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// WorkoutExercise places an Exercise inside a plan with its prescription.
type WorkoutExercise struct {
	ExerciseID      string `json:"exercise_id"`
	Day             *int   `json:"day,omitempty"`
	Sets            *int   `json:"sets,omitempty"`
	Reps            *int   `json:"reps,omitempty"`
	RestSeconds     *int   `json:"rest_seconds,omitempty"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
	Notes           string `json:"notes,omitempty"`
}
