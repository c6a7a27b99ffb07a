package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError(t *testing.T) {
	err := fmt.Errorf("row 3: %w", NewValidationError("exam_date is required"))

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "row 3: exam_date is required", err.Error())

	var custom *CustomError
	assert.True(t, errors.As(err, &custom))
	assert.Equal(t, "exam_date is required", custom.Message)

	assert.Equal(t, "resource not found", NewCustomError(ErrResourceNotFound, "").Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}
