package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"articlegen-be/pkg/apperror"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Title string `validate:"required"`
}

func TestValidateRequestPasses(t *testing.T) {
	err := ValidateRequest(sampleRequest{Email: "a@b.com", Title: "ok"})

	assert.NoError(t, err)
}

func TestValidateRequestReportsFields(t *testing.T) {
	err := ValidateRequest(sampleRequest{Email: "not-an-email"})

	assert.True(t, apperror.Is(err, apperror.CodeValidationFailed))
	assert.Contains(t, err.Error(), "Email (email)")
	assert.Contains(t, err.Error(), "Title (required)")
}
