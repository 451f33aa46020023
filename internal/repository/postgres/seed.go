package postgres

import (
	"context"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/repository/query"
)

// Fixed identities of the demo accounts owned by the user service.
const (
	SeedTrainerID = "4420f58b-f7b9-415c-afcb-60d23ae6c17f"
	SeedClientID  = "ae34ea3f-fea2-42bb-b7bc-8337e4f187f5"
)

// SeedResult counts the rows written by Seed.
type SeedResult struct {
	Exercises    int `json:"exercise_count"`
	WorkoutPlans int `json:"workout_plan_count"`
	DietPlans    int `json:"diet_plan_count"`
	Programs     int `json:"program_count"`
}

type seedExercise struct {
	name        string
	muscles     []string
	equipment   []string
	difficulty  string
	description string
}

var seedExercises = []seedExercise{
	{"Bench Press", []string{"chest", "triceps"}, []string{"barbell", "bench"}, "intermediate", "Classic chest compound exercise"},
	{"Squats", []string{"legs", "glutes"}, []string{"barbell", "squat rack"}, "intermediate", "King of leg exercises"},
	{"Deadlift", []string{"back", "legs", "core"}, []string{"barbell"}, "advanced", "Full body compound movement"},
	{"Pull-ups", []string{"back", "biceps"}, []string{"pull-up bar"}, "intermediate", "Upper body pulling exercise"},
	{"Push-ups", []string{"chest", "triceps", "shoulders"}, []string{"bodyweight"}, "beginner", "Classic bodyweight exercise"},
	{"Dumbbell Rows", []string{"back"}, []string{"dumbbells"}, "beginner", "Back isolation exercise"},
	{"Shoulder Press", []string{"shoulders"}, []string{"dumbbells"}, "beginner", "Shoulder development"},
	{"Bicep Curls", []string{"biceps"}, []string{"dumbbells"}, "beginner", "Arm isolation"},
	{"Tricep Dips", []string{"triceps"}, []string{"dip bars"}, "intermediate", "Tricep compound movement"},
	{"Lunges", []string{"legs", "glutes"}, []string{"dumbbells"}, "beginner", "Unilateral leg exercise"},
	{"Plank", []string{"core"}, []string{"bodyweight"}, "beginner", "Core stability exercise"},
	{"Russian Twists", []string{"core"}, []string{"medicine ball"}, "beginner", "Oblique work"},
	{"Leg Press", []string{"legs"}, []string{"leg press machine"}, "beginner", "Leg compound on machine"},
	{"Lat Pulldown", []string{"back"}, []string{"cable machine"}, "beginner", "Back width development"},
	{"Cable Flyes", []string{"chest"}, []string{"cable machine"}, "intermediate", "Chest isolation"},
}

func intp(n int) *int { return &n }

func seedWorkoutExercises(ids []string) []domain.WorkoutExercise {
	return []domain.WorkoutExercise{
		{ExerciseID: ids[4], Day: intp(1), Sets: intp(3), Reps: intp(12), RestSeconds: intp(60), Notes: "Focus on form"},
		{ExerciseID: ids[1], Day: intp(1), Sets: intp(3), Reps: intp(10), RestSeconds: intp(90), Notes: "Go deep"},
		{ExerciseID: ids[5], Day: intp(1), Sets: intp(3), Reps: intp(12), RestSeconds: intp(60), Notes: "Each arm"},
		{ExerciseID: ids[10], Day: intp(1), Sets: intp(3), Reps: intp(60), DurationMinutes: intp(1), RestSeconds: intp(60), Notes: "Hold steady"},
	}
}

var seedMeals = []domain.Meal{
	{
		MealType:     "breakfast",
		Name:         "Protein Oatmeal",
		Ingredients:  []string{"oats", "protein powder", "banana", "almond butter"},
		Instructions: "Mix oats with protein, top with banana and almond butter",
		Calories:     intp(450),
		Macros:       &domain.Macros{Protein: 30, Carbs: 55, Fats: 12},
	},
	{
		MealType:     "lunch",
		Name:         "Chicken Rice Bowl",
		Ingredients:  []string{"chicken breast", "brown rice", "broccoli", "olive oil"},
		Instructions: "Grill chicken, serve with rice and steamed broccoli",
		Calories:     intp(600),
		Macros:       &domain.Macros{Protein: 50, Carbs: 65, Fats: 15},
	},
	{
		MealType:     "snack",
		Name:         "Greek Yogurt",
		Ingredients:  []string{"greek yogurt", "berries", "honey"},
		Instructions: "Mix yogurt with berries and drizzle honey",
		Calories:     intp(250),
		Macros:       &domain.Macros{Protein: 20, Carbs: 30, Fats: 5},
	},
	{
		MealType:     "dinner",
		Name:         "Salmon with Sweet Potato",
		Ingredients:  []string{"salmon fillet", "sweet potato", "asparagus"},
		Instructions: "Bake salmon, roast sweet potato and asparagus",
		Calories:     intp(550),
		Macros:       &domain.Macros{Protein: 45, Carbs: 45, Fats: 20},
	},
}

// Seed writes the demo catalogue in a single transaction: the exercise
// library, a template workout plan, a diet plan and one active program
// linking the demo trainer and client.
func Seed(ctx context.Context, db Beginner, log *logger.Logger) (result SeedResult, err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	ids := make([]string, 0, len(seedExercises))
	for _, ex := range seedExercises {
		var id string
		err = tx.QueryRow(ctx,
			`INSERT INTO exercises (name, description, muscle_group, equipment_needed, difficulty_level, created_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			ex.name, ex.description, ex.muscles, ex.equipment, ex.difficulty, SeedTrainerID,
		).Scan(&id)
		if err != nil {
			return result, err
		}
		ids = append(ids, id)
	}
	result.Exercises = len(ids)
	log.Info("Seeded exercises", "count", len(ids))

	exercises, err := query.MarshalStructured(seedWorkoutExercises(ids))
	if err != nil {
		return result, err
	}
	var workoutPlanID string
	err = tx.QueryRow(ctx,
		`INSERT INTO workout_plans (name, description, trainer_id, duration_weeks, goal, difficulty_level, exercises, is_template)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		"Beginner Full Body Workout", "3-day full body workout for beginners", SeedTrainerID,
		8, string(domain.GoalGeneralFitness), string(domain.DifficultyBeginner), exercises, true,
	).Scan(&workoutPlanID)
	if err != nil {
		return result, err
	}
	result.WorkoutPlans = 1

	meals, err := query.MarshalStructured(seedMeals)
	if err != nil {
		return result, err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO diet_plans (name, trainer_id, calories_target, protein_g, carbs_g, fats_g, meals, restrictions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		"Balanced 2000 Calorie Diet", SeedTrainerID, 2000, 150, 200, 67, meals, []string{},
	)
	if err != nil {
		return result, err
	}
	result.DietPlans = 1

	_, err = tx.Exec(ctx,
		`INSERT INTO programs (client_id, trainer_id, workout_plan_id, diet_plan_id, start_date, end_date, status, notes)
		VALUES ($1, $2, $3, NULL, CURRENT_DATE, CURRENT_DATE + INTERVAL '8 weeks', 'active', $4)`,
		SeedClientID, SeedTrainerID, workoutPlanID, "Goals: Build strength, Improve fitness, Lose weight",
	)
	if err != nil {
		return result, err
	}
	result.Programs = 1

	if err = tx.Commit(ctx); err != nil {
		return result, err
	}
	log.Info("Seed complete",
		"exercises", result.Exercises,
		"workout_plans", result.WorkoutPlans,
		"diet_plans", result.DietPlans,
		"programs", result.Programs,
	)
	return result, nil
}
