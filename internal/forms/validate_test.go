package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string `form:"title" validate:"notblank" msg:"Title is required"`
	Date  string `form:"date" validate:"omitempty,datetime=2006-01-02"`
	Plain string `validate:"required"`
}

func TestValidateReportsFirstFailingField(t *testing.T) {
	err := Validate(sample{Title: "   ", Plain: "x"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
	assert.Equal(t, "Title is required", ve.Message)
}

func TestValidateFallsBackToGenericMessage(t *testing.T) {
	err := Validate(&sample{Title: "ok", Date: "10/03/2026", Plain: "x"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "date", ve.Field)
	assert.Equal(t, "date is invalid", ve.Message)
}

func TestValidateUsesStructNameWithoutFormTag(t *testing.T) {
	err := Validate(sample{Title: "ok"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Plain", ve.Field)
}

func TestValidatePasses(t *testing.T) {
	assert.NoError(t, Validate(sample{Title: "ok", Date: "2026-03-10", Plain: "x"}))
}
