package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Phone  string `validate:"required,numeric,min=6"`
	Status string `validate:"omitempty,oneof=pending delivered"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(signup{Phone: "123456"}))

	errs := ValidateStruct(signup{Phone: "12ab", Status: "lost"})
	assert.Equal(t, map[string]string{
		"Phone":  "Must contain digits only",
		"Status": "Must be one of: pending, delivered",
	}, errs)

	assert.Equal(t, "Phone: Must contain digits only; Status: Must be one of: pending, delivered",
		FormatValidationErrors(errs))
}
