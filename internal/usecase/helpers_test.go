package usecase_test

import (
	"errors"
	"testing"

	"placementhub-backend/pkg/apperror"
	"placementhub-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %v", err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}
