package api

import (
	"bytes"
	"net/http"
	"time"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const dateLayout = "2006-01-02"

type ProgramHandler struct {
	programService service.ProgramService
	log            *logger.Logger
}

func NewProgramHandler(programService service.ProgramService, log *logger.Logger) *ProgramHandler {
	return &ProgramHandler{programService: programService, log: log}
}

// AssignProgramRequest is the body of POST /api/programs. Dates are
// YYYY-MM-DD; RFC 3339 timestamps are accepted too.
type AssignProgramRequest struct {
	ClientID      string  `json:"client_id" binding:"required"`
	WorkoutPlanID *string `json:"workout_plan_id"`
	DietPlanID    *string `json:"diet_plan_id"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       *string `json:"end_date"`
	Notes         *string `json:"notes"`
	DurationWeeks *int    `json:"duration_weeks" binding:"omitempty,min=1"`
}

type UpdateProgramStatusRequest struct {
	Status domain.ProgramStatus `json:"status" binding:"required,oneof=active paused completed"`
}

type CompleteProgramRequest struct {
	AdherenceRate *float64 `json:"adherence_rate"`
}

func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}

// CreateProgram handles POST /api/programs.
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req AssignProgramRequest
	if !bindJSON(c, &req) {
		return
	}

	in := service.AssignProgramInput{
		ClientID:      req.ClientID,
		WorkoutPlanID: req.WorkoutPlanID,
		DietPlanID:    req.DietPlanID,
		Notes:         req.Notes,
		DurationWeeks: req.DurationWeeks,
	}
	start, ok := parseDate(req.StartDate)
	if !ok {
		abortWithError(c, http.StatusBadRequest, service.CodeValidation, "start_date must be a date (YYYY-MM-DD)")
		return
	}
	in.StartDate = start
	if req.EndDate != nil {
		end, ok := parseDate(*req.EndDate)
		if !ok {
			abortWithError(c, http.StatusBadRequest, service.CodeValidation, "end_date must be a date (YYYY-MM-DD)")
			return
		}
		in.EndDate = &end
	}

	program, err := h.programService.AssignProgram(c.Request.Context(), mustCaller(c), in)
	if err != nil {
		respondError(c, h.log, err, createFailed("program"))
		return
	}
	respondData(c, http.StatusCreated, program)
}

// ListPrograms handles GET /api/programs.
// Filters: client_id, status. expand=users attaches the referenced users.
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	expand := c.Query("expand") == "users"
	page, err := h.programService.ListPrograms(c.Request.Context(), listParams(c), expand)
	if err != nil {
		respondError(c, h.log, err, fetchFailed("programs"))
		return
	}
	respondPage(c, page.Page, page.Users)
}

func (h *ProgramHandler) GetProgram(c *gin.Context) {
	program, err := h.programService.GetProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, fetchFailed("program"))
		return
	}
	respondData(c, http.StatusOK, program)
}

// UpdateProgramStatus handles PUT /api/programs/:id/status.
func (h *ProgramHandler) UpdateProgramStatus(c *gin.Context) {
	var req UpdateProgramStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	program, err := h.programService.UpdateProgramStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.log, err, updateFailed("status"))
		return
	}
	respondData(c, http.StatusOK, program)
}

// CompleteProgram handles POST /api/programs/:id/complete. The body is optional.
func (h *ProgramHandler) CompleteProgram(c *gin.Context) {
	var req CompleteProgramRequest
	body, err := c.GetRawData()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, service.CodeValidation, "Invalid request body")
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := binding.JSON.BindBody(body, &req); err != nil {
			abortWithError(c, http.StatusBadRequest, service.CodeValidation, validationMessage(err))
			return
		}
	}

	program, err := h.programService.CompleteProgram(c.Request.Context(), c.Param("id"), req.AdherenceRate)
	if err != nil {
		respondError(c, h.log, err, failure{code: "UPDATE_FAILED", message: "Failed to complete program"})
		return
	}
	respondData(c, http.StatusOK, program)
}

// GetActivePrograms handles GET /api/clients/:client_id/programs/active.
func (h *ProgramHandler) GetActivePrograms(c *gin.Context) {
	out, err := h.programService.GetActivePrograms(c.Request.Context(), mustCaller(c), c.Param("client_id"))
	if err != nil {
		respondError(c, h.log, err, fetchFailed("active programs"))
		return
	}
	respondData(c, http.StatusOK, out)
}
