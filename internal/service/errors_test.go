package service

import (
	"errors"
	"testing"

	"fitsync/training-service/internal/repository"
	"fitsync/training-service/internal/repository/query"

	"github.com/stretchr/testify/require"
)

func TestTranslate_FieldErrorHidesDecoderText(t *testing.T) {
	updates, err := query.ParseUpdates([]byte(`{"duration_weeks":"twelve"}`))
	require.NoError(t, err)
	_, _, err = query.BuildUpdate(query.WorkoutPlans, "wp-1", updates)
	require.Error(t, err)

	translated := translate(err, ErrWorkoutPlanNotFound)

	var svcErr *Error
	require.True(t, errors.As(translated, &svcErr))
	require.Equal(t, CodeValidation, svcErr.Code)
	require.Equal(t, "Invalid value for duration_weeks", svcErr.Message)
	require.NotContains(t, svcErr.Error(), "json")

	var fieldErr *query.FieldError
	require.True(t, errors.As(translated, &fieldErr))
	require.Equal(t, "duration_weeks", fieldErr.Field)
}

func TestTranslate_RepositoryErrors(t *testing.T) {
	require.NoError(t, translate(nil, ErrDietPlanNotFound))
	require.Same(t, ErrDietPlanNotFound, translate(repository.ErrNotFound, ErrDietPlanNotFound))
	require.Same(t, ErrNoUpdates, translate(repository.ErrNoUpdates, ErrDietPlanNotFound))

	opaque := errors.New("connection reset")
	require.Same(t, opaque, translate(opaque, ErrDietPlanNotFound))
}
