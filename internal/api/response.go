package api

import (
	"errors"
	"net/http"
	"time"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/service"

	"github.com/gin-gonic/gin"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// errorBody is the error half of the response envelope.
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type pageResponse struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
	Users      []domain.User     `json:"users,omitempty"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// failure is the code and fixed message returned when an operation fails for
// an unclassified reason.
type failure struct {
	code    string
	message string
}

func createFailed(what string) failure {
	return failure{code: "CREATE_FAILED", message: "Failed to create " + what}
}

func fetchFailed(what string) failure {
	return failure{code: "FETCH_FAILED", message: "Failed to fetch " + what}
}

func updateFailed(what string) failure {
	return failure{code: "UPDATE_FAILED", message: "Failed to update " + what}
}

func deleteFailed(what string) failure {
	return failure{code: "DELETE_FAILED", message: "Failed to delete " + what}
}

func now() string {
	return time.Now().UTC().Format(timestampLayout)
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, dataResponse{Success: true, Data: data})
}

func respondPage[T any](c *gin.Context, page *domain.Page[T], users []domain.User) {
	c.JSON(http.StatusOK, pageResponse{
		Success:    true,
		Data:       page.Items,
		Pagination: page.Pagination,
		Users:      users,
	})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, messageResponse{Success: true, Message: message})
}

// abortWithError writes the error envelope and aborts the chain.
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Error: errorBody{Code: code, Message: message, Timestamp: now()},
	})
}

// statusFor maps a classified service error code onto an HTTP status.
func statusFor(code string) int {
	switch code {
	case service.CodeNotFound, service.CodeClientNotFound:
		return http.StatusNotFound
	case service.CodeNoUpdates, service.CodeInvalidRole, service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case service.CodeForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// respondError translates err into the error envelope. Classified errors keep
// their code and message; anything else is logged and reported as fallback.
func respondError(c *gin.Context, log *logger.Logger, err error, fallback failure) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		if svcErr.Err != nil {
			log.Warn(svcErr.Message,
				"error", svcErr.Err,
				"method", c.Request.Method,
				"path", c.FullPath(),
				"correlation_id", c.GetString(ContextCorrelationIDKey),
			)
		}
		abortWithError(c, statusFor(svcErr.Code), svcErr.Code, svcErr.Message)
		return
	}
	log.Error(fallback.message,
		"error", err,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"correlation_id", c.GetString(ContextCorrelationIDKey),
	)
	abortWithError(c, http.StatusInternalServerError, fallback.code, fallback.message)
}
