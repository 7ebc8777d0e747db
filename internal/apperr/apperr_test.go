package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("not yours")))
	assert.Equal(t, KindAuth, KindOf(Auth("invalid credentials")))
	assert.Equal(t, KindExpired, KindOf(Expired("too late")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain error")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", NotFound("order not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestErrorsIsMatchesByKind(t *testing.T) {
	err := Forbidden("cannot cancel another user's order")
	assert.True(t, errors.Is(err, Forbidden("")))
	assert.False(t, errors.Is(err, NotFound("")))
}

func TestMessageFormatting(t *testing.T) {
	err := NotFound("order %d not found", 42)
	assert.Equal(t, "order 42 not found", err.Error())
}
