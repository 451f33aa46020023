package service

import (
	"context"
	"strconv"
	"strings"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/repository"
)

type DietPlanService interface {
	CreateDietPlan(ctx context.Context, caller domain.Caller, plan *domain.DietPlan) (*domain.DietPlan, error)
	GetDietPlan(ctx context.Context, id string) (*domain.DietPlan, error)
	ListDietPlans(ctx context.Context, params repository.ListParams) (*domain.Page[domain.DietPlan], error)
	UpdateDietPlan(ctx context.Context, id string, updates []repository.Update) (*domain.DietPlan, error)
	DeleteDietPlan(ctx context.Context, id string) error
}

type dietPlanService struct {
	planRepo repository.DietPlanRepository
}

func NewDietPlanService(planRepo repository.DietPlanRepository) DietPlanService {
	return &dietPlanService{planRepo: planRepo}
}

func (s *dietPlanService) CreateDietPlan(ctx context.Context, caller domain.Caller, plan *domain.DietPlan) (*domain.DietPlan, error) {
	if strings.TrimSpace(plan.Name) == "" {
		return nil, validationError("name is required")
	}
	for i, meal := range plan.Meals {
		if meal.MealType == "" || meal.Name == "" {
			return nil, validationError("meals[" + itoa(i) + "] requires meal_type and name")
		}
	}
	plan.TrainerID = caller.ID
	return s.planRepo.Create(ctx, plan)
}

func (s *dietPlanService) GetDietPlan(ctx context.Context, id string) (*domain.DietPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrDietPlanNotFound)
	}
	return plan, nil
}

func (s *dietPlanService) ListDietPlans(ctx context.Context, params repository.ListParams) (*domain.Page[domain.DietPlan], error) {
	return s.planRepo.List(ctx, params)
}

func (s *dietPlanService) UpdateDietPlan(ctx context.Context, id string, updates []repository.Update) (*domain.DietPlan, error) {
	plan, err := s.planRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, translate(err, ErrDietPlanNotFound)
	}
	return plan, nil
}

func (s *dietPlanService) DeleteDietPlan(ctx context.Context, id string) error {
	return translate(s.planRepo.Delete(ctx, id), ErrDietPlanNotFound)
}

func itoa(i int) string { return strconv.Itoa(i) }
