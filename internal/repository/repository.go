package repository

import (
	"context"

	"fitsync/training-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrNoUpdates = RepositoryError("no valid fields to update")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// DBTX is the subset of the pgx API the repositories need.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ListParams carries the inputs of a filtered, role-scoped listing.
// Filters holds raw query values; keys outside the entity allow-list are ignored.
type ListParams struct {
	Caller  domain.Caller
	Filters map[string]string
	Page    int
	Limit   int
}

// Update is one proposed field assignment of a partial update, in request order.
// Value is either a json.RawMessage straight from the request body or a Go value.
type Update struct {
	Field string
	Value any
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	List(ctx context.Context, params ListParams) (*domain.Page[domain.Exercise], error)
	Update(ctx context.Context, id string, updates []Update) (*domain.Exercise, error)
	Delete(ctx context.Context, id string) error
}

// WorkoutPlanRepository defines the interface for interacting with workout plan data.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	List(ctx context.Context, params ListParams) (*domain.Page[domain.WorkoutPlan], error)
	Update(ctx context.Context, id string, updates []Update) (*domain.WorkoutPlan, error)
	Delete(ctx context.Context, id string) error
}

// DietPlanRepository defines the interface for interacting with diet plan data.
type DietPlanRepository interface {
	Create(ctx context.Context, plan *domain.DietPlan) (*domain.DietPlan, error)
	GetByID(ctx context.Context, id string) (*domain.DietPlan, error)
	List(ctx context.Context, params ListParams) (*domain.Page[domain.DietPlan], error)
	Update(ctx context.Context, id string, updates []Update) (*domain.DietPlan, error)
	Delete(ctx context.Context, id string) error
}

// ProgramRepository defines the interface for interacting with program data.
// Programs are only ever inserted in the active state.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (*domain.Program, error)
	GetByID(ctx context.Context, id string) (*domain.Program, error)
	List(ctx context.Context, params ListParams) (*domain.Page[domain.Program], error)
	UpdateStatus(ctx context.Context, id string, status domain.ProgramStatus) (*domain.Program, error)
	ListActiveByClient(ctx context.Context, clientID string) ([]domain.ActiveProgram, error)
}
