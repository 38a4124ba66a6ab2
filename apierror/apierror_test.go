package apierror

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string          `json:"name" validate:"required,min=3"`
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	err := Validate(payload{Name: "ab", Amount: decimal.Zero})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"name": "min=3", "amount": "gt=0"}, verr.Fields)
	assert.Equal(t, "validation failed: amount: gt=0, name: min=3", verr.Error())
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(payload{Name: "abc", Amount: decimal.NewFromInt(5)}))
}

func TestBody(t *testing.T) {
	body := Body(NewValidation("code", "len=6"))
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, "len=6", body.Fields["code"])

	assert.Equal(t, &APIError{Error: "boom"}, Body(errors.New("boom")))
}
