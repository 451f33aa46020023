package api

import (
	"net/http"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	log             *logger.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, log *logger.Logger) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, log: log}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     *string  `json:"description"`
	MuscleGroup     []string `json:"muscle_group" binding:"required,min=1"`
	EquipmentNeeded []string `json:"equipment_needed"`
	DifficultyLevel *string  `json:"difficulty_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	VideoURL        *string  `json:"video_url"`
	Instructions    *string  `json:"instructions"`
}

// MediaUploadRequest asks for a presigned upload URL for an exercise video.
type MediaUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// --- Handler Methods ---

// CreateExercise handles POST /api/exercises.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if !bindJSON(c, &req) {
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), mustCaller(c), &domain.Exercise{
		Name:            req.Name,
		Description:     req.Description,
		MuscleGroup:     req.MuscleGroup,
		EquipmentNeeded: req.EquipmentNeeded,
		DifficultyLevel: req.DifficultyLevel,
		VideoURL:        req.VideoURL,
		Instructions:    req.Instructions,
	})
	if err != nil {
		respondError(c, h.log, err, createFailed("exercise"))
		return
	}
	respondData(c, http.StatusCreated, exercise)
}

// ListExercises handles GET /api/exercises.
// Filters: muscle_group, difficulty_level, search.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	page, err := h.exerciseService.ListExercises(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, h.log, err, fetchFailed("exercises"))
		return
	}
	respondPage(c, page, nil)
}

// GetExercise handles GET /api/exercises/:id.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, fetchFailed("exercise"))
		return
	}
	respondData(c, http.StatusOK, exercise)
}

// UpdateExercise handles PUT /api/exercises/:id with a sparse body.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		respondError(c, h.log, err, updateFailed("exercise"))
		return
	}
	respondData(c, http.StatusOK, exercise)
}

// DeleteExercise handles DELETE /api/exercises/:id.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, deleteFailed("exercise"))
		return
	}
	respondMessage(c, "Exercise deleted successfully")
}

// RequestMediaUpload handles POST /api/exercises/:id/media.
func (h *ExerciseHandler) RequestMediaUpload(c *gin.Context) {
	var req MediaUploadRequest
	if !bindJSON(c, &req) {
		return
	}
	upload, err := h.exerciseService.RequestMediaUpload(c.Request.Context(), c.Param("id"), req.FileName, req.ContentType)
	if err != nil {
		respondError(c, h.log, err, updateFailed("exercise media"))
		return
	}
	respondData(c, http.StatusOK, upload)
}

// GetMediaURL handles GET /api/exercises/:id/media.
func (h *ExerciseHandler) GetMediaURL(c *gin.Context) {
	url, err := h.exerciseService.GetMediaURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, fetchFailed("exercise media"))
		return
	}
	respondData(c, http.StatusOK, gin.H{"url": url})
}
