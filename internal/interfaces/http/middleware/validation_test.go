package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type probe struct {
		Period string `form:"period" binding:"periodkey"`
	}

	assert.NoError(t, v.Struct(probe{Period: "2026"}))
	assert.NoError(t, v.Struct(probe{Period: "2026-01"}))
	assert.NoError(t, v.Struct(probe{Period: "2026-01-05"}))
	assert.Error(t, v.Struct(probe{Period: "January 2026"}))
	assert.Error(t, v.Struct(probe{Period: "2026-1"}))
	assert.Error(t, v.Struct(probe{Period: "2026-W02"}))
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type query struct {
		Granularity string `form:"granularity" json:"granularity" binding:"required"`
		Period      string `form:"period" json:"period" binding:"omitempty,periodkey"`
	}

	err := v.Struct(query{Period: "bogus"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-7")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-7", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)

	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "granularity")
	assert.Contains(t, fields, "period")
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Empty(t, resp.Error.Details)
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Set(RequestIDKey, "req-9")

	HandleValidationError(c, assert.AnError)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Request validation failed")
	assert.Contains(t, w.Body.String(), "req-9")
}

func TestGetValidationMessage(t *testing.T) {
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type limits struct {
		Count int    `json:"count" binding:"gte=1,lte=100"`
		Key   string `json:"key" binding:"omitempty,periodkey"`
	}

	err := v.Struct(limits{Count: 0, Key: "nope"})
	require.Error(t, err)

	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	require.Len(t, verrs, 2)

	assert.Equal(t, "Must be greater than or equal to 1", getValidationMessage(verrs[0]))
	assert.Contains(t, getValidationMessage(verrs[1]), "period key")
}
