package api

import (
	"net/http"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/service"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	planService service.WorkoutPlanService
	log         *logger.Logger
}

func NewWorkoutHandler(planService service.WorkoutPlanService, log *logger.Logger) *WorkoutHandler {
	return &WorkoutHandler{planService: planService, log: log}
}

// CreateWorkoutPlanRequest is the body of POST /api/workouts.
type CreateWorkoutPlanRequest struct {
	Name            string                   `json:"name" binding:"required"`
	Description     *string                  `json:"description"`
	DurationWeeks   *int                     `json:"duration_weeks" binding:"omitempty,min=1"`
	Goal            *string                  `json:"goal" binding:"omitempty,oneof=weight_loss muscle_gain endurance flexibility general_fitness"`
	DifficultyLevel *string                  `json:"difficulty_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Exercises       []domain.WorkoutExercise `json:"exercises"`
	IsTemplate      bool                     `json:"is_template"`
}

func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	exercises := req.Exercises
	if exercises == nil {
		exercises = []domain.WorkoutExercise{}
	}

	plan, err := h.planService.CreateWorkoutPlan(c.Request.Context(), mustCaller(c), &domain.WorkoutPlan{
		Name:            req.Name,
		Description:     req.Description,
		DurationWeeks:   req.DurationWeeks,
		Goal:            req.Goal,
		DifficultyLevel: req.DifficultyLevel,
		Exercises:       exercises,
		IsTemplate:      req.IsTemplate,
	})
	if err != nil {
		respondError(c, h.log, err, createFailed("workout plan"))
		return
	}
	respondData(c, http.StatusCreated, plan)
}

// ListWorkouts handles GET /api/workouts.
// Filters: goal, difficulty_level, is_template.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	page, err := h.planService.ListWorkoutPlans(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, h.log, err, fetchFailed("workouts"))
		return
	}
	respondPage(c, page, nil)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	plan, err := h.planService.GetWorkoutPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, fetchFailed("workout"))
		return
	}
	respondData(c, http.StatusOK, plan)
}

func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	plan, err := h.planService.UpdateWorkoutPlan(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		respondError(c, h.log, err, updateFailed("workout"))
		return
	}
	respondData(c, http.StatusOK, plan)
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	if err := h.planService.DeleteWorkoutPlan(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, deleteFailed("workout"))
		return
	}
	respondMessage(c, "Workout plan deleted successfully")
}
