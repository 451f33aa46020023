package service

import (
	"context"
	"strings"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/repository"
)

type WorkoutPlanService interface {
	CreateWorkoutPlan(ctx context.Context, caller domain.Caller, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	GetWorkoutPlan(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	ListWorkoutPlans(ctx context.Context, params repository.ListParams) (*domain.Page[domain.WorkoutPlan], error)
	UpdateWorkoutPlan(ctx context.Context, id string, updates []repository.Update) (*domain.WorkoutPlan, error)
	DeleteWorkoutPlan(ctx context.Context, id string) error
}

type workoutPlanService struct {
	planRepo repository.WorkoutPlanRepository
}

func NewWorkoutPlanService(planRepo repository.WorkoutPlanRepository) WorkoutPlanService {
	return &workoutPlanService{planRepo: planRepo}
}

// CreateWorkoutPlan stores a plan owned by the caller. Exercise references
// inside the plan are not checked against the exercise library.
func (s *workoutPlanService) CreateWorkoutPlan(ctx context.Context, caller domain.Caller, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if strings.TrimSpace(plan.Name) == "" {
		return nil, validationError("name is required")
	}
	for i, ex := range plan.Exercises {
		if ex.ExerciseID == "" {
			return nil, validationError("exercises[" + itoa(i) + "].exercise_id is required")
		}
	}
	plan.TrainerID = caller.ID
	return s.planRepo.Create(ctx, plan)
}

func (s *workoutPlanService) GetWorkoutPlan(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrWorkoutPlanNotFound)
	}
	return plan, nil
}

func (s *workoutPlanService) ListWorkoutPlans(ctx context.Context, params repository.ListParams) (*domain.Page[domain.WorkoutPlan], error) {
	return s.planRepo.List(ctx, params)
}

func (s *workoutPlanService) UpdateWorkoutPlan(ctx context.Context, id string, updates []repository.Update) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, translate(err, ErrWorkoutPlanNotFound)
	}
	return plan, nil
}

func (s *workoutPlanService) DeleteWorkoutPlan(ctx context.Context, id string) error {
	return translate(s.planRepo.Delete(ctx, id), ErrWorkoutPlanNotFound)
}
