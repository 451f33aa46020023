package postgres

import (
	"context"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/repository"
	"fitsync/training-service/internal/repository/query"

	"github.com/jackc/pgx/v5"
)

type pgDietPlanRepository struct {
	db repository.DBTX
}

func NewDietPlanRepository(db repository.DBTX) repository.DietPlanRepository {
	return &pgDietPlanRepository{db: db}
}

func scanDietPlan(row pgx.Row) (*domain.DietPlan, error) {
	var p domain.DietPlan
	err := row.Scan(
		&p.ID, &p.Name, &p.TrainerID, &p.CaloriesTarget, &p.ProteinG,
		&p.CarbsG, &p.FatsG, &p.Meals, &p.Restrictions,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Meals = nonNil(p.Meals)
	p.Restrictions = nonNil(p.Restrictions)
	return &p, nil
}

func (r *pgDietPlanRepository) Create(ctx context.Context, plan *domain.DietPlan) (*domain.DietPlan, error) {
	meals, err := query.MarshalStructured(plan.Meals)
	if err != nil {
		return nil, err
	}
	sql := `INSERT INTO diet_plans (name, trainer_id, calories_target, protein_g, carbs_g, fats_g, meals, restrictions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + query.DietPlans.Columns
	return scanDietPlan(r.db.QueryRow(ctx, sql,
		plan.Name,
		plan.TrainerID,
		plan.CaloriesTarget,
		plan.ProteinG,
		plan.CarbsG,
		plan.FatsG,
		meals,
		plan.Restrictions,
	))
}

func (r *pgDietPlanRepository) GetByID(ctx context.Context, id string) (*domain.DietPlan, error) {
	return getOne(ctx, r.db, query.DietPlans, id, scanDietPlan)
}

// List returns one page of diet plans. Trainers are limited to their own plans.
func (r *pgDietPlanRepository) List(ctx context.Context, params repository.ListParams) (*domain.Page[domain.DietPlan], error) {
	return listPage(ctx, r.db, query.DietPlans, params, scanDietPlan)
}

func (r *pgDietPlanRepository) Update(ctx context.Context, id string, updates []repository.Update) (*domain.DietPlan, error) {
	return updateOne(ctx, r.db, query.DietPlans, id, updates, scanDietPlan)
}

func (r *pgDietPlanRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.db, query.DietPlans, id)
}
