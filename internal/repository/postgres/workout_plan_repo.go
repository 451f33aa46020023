package postgres

import (
	"context"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/repository"
	"fitsync/training-service/internal/repository/query"

	"github.com/jackc/pgx/v5"
)

// pgWorkoutPlanRepository implements repository.WorkoutPlanRepository
type pgWorkoutPlanRepository struct {
	db repository.DBTX
}

func NewWorkoutPlanRepository(db repository.DBTX) repository.WorkoutPlanRepository {
	return &pgWorkoutPlanRepository{db: db}
}

func scanWorkoutPlan(row pgx.Row) (*domain.WorkoutPlan, error) {
	var p domain.WorkoutPlan
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.TrainerID, &p.DurationWeeks,
		&p.Goal, &p.DifficultyLevel, &p.Exercises, &p.IsTemplate,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Exercises = nonNil(p.Exercises)
	return &p, nil
}

// Create inserts a plan. The exercise list is stored as a JSON array.
func (r *pgWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	exercises, err := query.MarshalStructured(plan.Exercises)
	if err != nil {
		return nil, err
	}
	sql := `INSERT INTO workout_plans (name, description, trainer_id, duration_weeks, goal, difficulty_level, exercises, is_template)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + query.WorkoutPlans.Columns
	return scanWorkoutPlan(r.db.QueryRow(ctx, sql,
		plan.Name,
		plan.Description,
		plan.TrainerID,
		plan.DurationWeeks,
		plan.Goal,
		plan.DifficultyLevel,
		exercises,
		plan.IsTemplate,
	))
}

func (r *pgWorkoutPlanRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	return getOne(ctx, r.db, query.WorkoutPlans, id, scanWorkoutPlan)
}

func (r *pgWorkoutPlanRepository) List(ctx context.Context, params repository.ListParams) (*domain.Page[domain.WorkoutPlan], error) {
	return listPage(ctx, r.db, query.WorkoutPlans, params, scanWorkoutPlan)
}

func (r *pgWorkoutPlanRepository) Update(ctx context.Context, id string, updates []repository.Update) (*domain.WorkoutPlan, error) {
	return updateOne(ctx, r.db, query.WorkoutPlans, id, updates, scanWorkoutPlan)
}

func (r *pgWorkoutPlanRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.db, query.WorkoutPlans, id)
}
