package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

func TestStructValid(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.NoError(t, v.Struct(samplePayload{Email: "jane@example.com", Code: "123456"}))
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Struct(samplePayload{Code: "123456"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.NotContains(t, err.Error(), "Email")
}

func TestStructJoinsAllFailures(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Struct(samplePayload{Email: "not-an-email", Code: "12"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "code")
	assert.Contains(t, err.Error(), ";")
}
