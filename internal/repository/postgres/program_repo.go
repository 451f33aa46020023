package postgres

import (
	"context"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/repository"
	"fitsync/training-service/internal/repository/query"

	"github.com/jackc/pgx/v5"
)

type pgProgramRepository struct {
	db repository.DBTX
}

func NewProgramRepository(db repository.DBTX) repository.ProgramRepository {
	return &pgProgramRepository{db: db}
}

func programTargets(p *domain.Program) []any {
	return []any{
		&p.ID, &p.ClientID, &p.TrainerID, &p.WorkoutPlanID, &p.DietPlanID,
		&p.StartDate, &p.EndDate, &p.Status, &p.Notes, &p.AssignedAt, &p.UpdatedAt,
	}
}

func scanProgram(row pgx.Row) (*domain.Program, error) {
	var p domain.Program
	if err := row.Scan(programTargets(&p)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a program. Status is always written as active, whatever the
// caller set on the struct.
func (r *pgProgramRepository) Create(ctx context.Context, program *domain.Program) (*domain.Program, error) {
	sql := `INSERT INTO programs (client_id, trainer_id, workout_plan_id, diet_plan_id, start_date, end_date, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'active')
		RETURNING ` + query.Programs.Columns
	return scanProgram(r.db.QueryRow(ctx, sql,
		program.ClientID,
		program.TrainerID,
		program.WorkoutPlanID,
		program.DietPlanID,
		program.StartDate,
		program.EndDate,
		program.Notes,
	))
}

func (r *pgProgramRepository) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	return getOne(ctx, r.db, query.Programs, id, scanProgram)
}

// List returns one page of programs. Trainers see the programs they assigned,
// clients see the programs assigned to them.
func (r *pgProgramRepository) List(ctx context.Context, params repository.ListParams) (*domain.Page[domain.Program], error) {
	return listPage(ctx, r.db, query.Programs, params, scanProgram)
}

func (r *pgProgramRepository) UpdateStatus(ctx context.Context, id string, status domain.ProgramStatus) (*domain.Program, error) {
	return updateOne(ctx, r.db, query.Programs, id,
		[]repository.Update{{Field: "status", Value: string(status)}}, scanProgram)
}

const activeByClientSQL = `SELECT p.id, p.client_id, p.trainer_id, p.workout_plan_id, p.diet_plan_id,
		p.start_date, p.end_date, p.status, p.notes, p.assigned_at, p.updated_at,
		w.name, d.name
	FROM programs p
	LEFT JOIN workout_plans w ON p.workout_plan_id = w.id
	LEFT JOIN diet_plans d ON p.diet_plan_id = d.id
	WHERE p.client_id = $1 AND p.status = 'active'
	ORDER BY p.assigned_at DESC, p.id DESC`

// ListActiveByClient returns the client's active programs with the names of
// the attached plans. A deleted plan yields a nil name.
func (r *pgProgramRepository) ListActiveByClient(ctx context.Context, clientID string) ([]domain.ActiveProgram, error) {
	rows, err := r.db.Query(ctx, activeByClientSQL, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := []domain.ActiveProgram{}
	for rows.Next() {
		var ap domain.ActiveProgram
		targets := append(programTargets(&ap.Program), &ap.WorkoutName, &ap.DietName)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		programs = append(programs, ap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return programs, nil
}
