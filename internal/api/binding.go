package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"fitsync/training-service/internal/repository"
	"fitsync/training-service/internal/repository/query"
	"fitsync/training-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report json field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON decodes the request body into req and aborts with a
// VALIDATION_ERROR envelope when that fails.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusBadRequest, service.CodeValidation, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param()))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

// bindUpdates reads a partial update document, keeping its key order.
func bindUpdates(c *gin.Context) ([]repository.Update, bool) {
	body, err := c.GetRawData()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, service.CodeValidation, "Invalid request body")
		return nil, false
	}
	updates, err := query.ParseUpdates(body)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, service.CodeValidation, "Request body must be a JSON object")
		return nil, false
	}
	return updates, true
}

// listParams collects pagination and filters for the authenticated caller.
// Every query value is passed on; the repositories keep only allow-listed keys.
func listParams(c *gin.Context) repository.ListParams {
	page, limit := query.ParsePage(c.Query("page"), c.Query("limit"))
	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}
	return repository.ListParams{
		Caller:  mustCaller(c),
		Filters: filters,
		Page:    page,
		Limit:   limit,
	}
}
