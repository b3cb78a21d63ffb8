package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "nope")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("untyped")))
}

func TestHasCode_SurvivesWrapping(t *testing.T) {
	err := New(CodeUnauthorized, "company not registered")
	wrapped := fmt.Errorf("validate owner: %w", err)

	assert.True(t, HasCode(wrapped, CodeUnauthorized))
	assert.False(t, HasCode(wrapped, CodeNotFound))
}

func TestWrap_KeepsCauseReachable(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeInternal, "find disclosed credit line", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "find disclosed credit line")
	assert.Contains(t, err.Error(), "connection refused")
}
