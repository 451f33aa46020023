package api

import (
	"net/http"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/service"

	"github.com/gin-gonic/gin"
)

type DietHandler struct {
	planService service.DietPlanService
	log         *logger.Logger
}

func NewDietHandler(planService service.DietPlanService, log *logger.Logger) *DietHandler {
	return &DietHandler{planService: planService, log: log}
}

// CreateDietPlanRequest is the body of POST /api/diets.
type CreateDietPlanRequest struct {
	Name           string        `json:"name" binding:"required"`
	CaloriesTarget *int          `json:"calories_target" binding:"omitempty,min=0"`
	ProteinG       *int          `json:"protein_g" binding:"omitempty,min=0"`
	CarbsG         *int          `json:"carbs_g" binding:"omitempty,min=0"`
	FatsG          *int          `json:"fats_g" binding:"omitempty,min=0"`
	Meals          []domain.Meal `json:"meals"`
	Restrictions   []string      `json:"restrictions"`
}

func (h *DietHandler) CreateDiet(c *gin.Context) {
	var req CreateDietPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	meals := req.Meals
	if meals == nil {
		meals = []domain.Meal{}
	}

	plan, err := h.planService.CreateDietPlan(c.Request.Context(), mustCaller(c), &domain.DietPlan{
		Name:           req.Name,
		CaloriesTarget: req.CaloriesTarget,
		ProteinG:       req.ProteinG,
		CarbsG:         req.CarbsG,
		FatsG:          req.FatsG,
		Meals:          meals,
		Restrictions:   req.Restrictions,
	})
	if err != nil {
		respondError(c, h.log, err, createFailed("diet plan"))
		return
	}
	respondData(c, http.StatusCreated, plan)
}

func (h *DietHandler) ListDiets(c *gin.Context) {
	page, err := h.planService.ListDietPlans(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, h.log, err, fetchFailed("diets"))
		return
	}
	respondPage(c, page, nil)
}

func (h *DietHandler) GetDiet(c *gin.Context) {
	plan, err := h.planService.GetDietPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, fetchFailed("diet"))
		return
	}
	respondData(c, http.StatusOK, plan)
}

func (h *DietHandler) UpdateDiet(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	plan, err := h.planService.UpdateDietPlan(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		respondError(c, h.log, err, updateFailed("diet"))
		return
	}
	respondData(c, http.StatusOK, plan)
}

func (h *DietHandler) DeleteDiet(c *gin.Context) {
	if err := h.planService.DeleteDietPlan(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, deleteFailed("diet"))
		return
	}
	respondMessage(c, "Diet plan deleted successfully")
}
