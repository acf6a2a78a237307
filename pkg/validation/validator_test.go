package validation

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engine(t *testing.T) *validator.Validate {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

type profileSample struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	DateOfBirth string `json:"dateOfBirth" binding:"omitempty,dob"`
}

func TestToMessageRequired(t *testing.T) {
	v := engine(t)

	err := v.Struct(profileSample{})
	require.Error(t, err)
	assert.Equal(t, "One or more mandatory fields are empty", ToMessage(err))
}

func TestToMessageEmailUsesJSONFieldName(t *testing.T) {
	v := engine(t)

	err := v.Struct(profileSample{Name: "Alice", Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, "email must be a valid email", ToMessage(err))
}

func TestToMessageDOB(t *testing.T) {
	v := engine(t)

	err := v.Struct(profileSample{Name: "Alice", DateOfBirth: "1993-07-02"})
	require.Error(t, err)
	assert.Equal(t, "dateOfBirth must be in DD/MM/YYYY format", ToMessage(err))

	assert.NoError(t, v.Struct(profileSample{Name: "Alice", DateOfBirth: "02/07/1993"}))
}

func TestToMessageMalformedJSON(t *testing.T) {
	var dst profileSample
	err := json.Unmarshal([]byte(`{"name":`), &dst)
	require.Error(t, err)
	assert.Equal(t, "Invalid request payload", ToMessage(err))
}

func TestToMessageNil(t *testing.T) {
	assert.Equal(t, "", ToMessage(nil))
}
