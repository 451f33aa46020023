package postgres

import (
	"context"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/repository"
	"fitsync/training-service/internal/repository/query"

	"github.com/jackc/pgx/v5"
)

// pgExerciseRepository implements repository.ExerciseRepository
type pgExerciseRepository struct {
	db repository.DBTX
}

// NewExerciseRepository creates a new Exercise repository backed by PostgreSQL.
func NewExerciseRepository(db repository.DBTX) repository.ExerciseRepository {
	return &pgExerciseRepository{db: db}
}

func scanExercise(row pgx.Row) (*domain.Exercise, error) {
	var e domain.Exercise
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.MuscleGroup, &e.EquipmentNeeded,
		&e.DifficultyLevel, &e.VideoURL, &e.Instructions, &e.CreatedBy,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.MuscleGroup = nonNil(e.MuscleGroup)
	e.EquipmentNeeded = nonNil(e.EquipmentNeeded)
	return &e, nil
}

// Create inserts a new exercise owned by exercise.CreatedBy.
func (r *pgExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	sql := `INSERT INTO exercises (name, description, muscle_group, equipment_needed, difficulty_level, video_url, instructions, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + query.Exercises.Columns
	return scanExercise(r.db.QueryRow(ctx, sql,
		exercise.Name,
		exercise.Description,
		nonNil(exercise.MuscleGroup),
		exercise.EquipmentNeeded,
		exercise.DifficultyLevel,
		exercise.VideoURL,
		exercise.Instructions,
		exercise.CreatedBy,
	))
}

func (r *pgExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	return getOne(ctx, r.db, query.Exercises, id, scanExercise)
}

// List returns one page of exercises. Trainers only see the exercises they created.
func (r *pgExerciseRepository) List(ctx context.Context, params repository.ListParams) (*domain.Page[domain.Exercise], error) {
	return listPage(ctx, r.db, query.Exercises, params, scanExercise)
}

func (r *pgExerciseRepository) Update(ctx context.Context, id string, updates []repository.Update) (*domain.Exercise, error) {
	return updateOne(ctx, r.db, query.Exercises, id, updates, scanExercise)
}

func (r *pgExerciseRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.db, query.Exercises, id)
}
