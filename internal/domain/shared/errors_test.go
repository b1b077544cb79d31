package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	t.Run("Error returns the message", func(t *testing.T) {
		err := NewValidationError("old and new names are identical")
		assert.Equal(t, "old and new names are identical", err.Error())
		assert.Equal(t, CodeValidation, err.Code)
	})

	t.Run("errors.Is matches by code", func(t *testing.T) {
		err := NewNotFoundError("nothing to merge")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrValidation))
	})

	t.Run("wrapped errors are still classified", func(t *testing.T) {
		err := fmt.Errorf("apply merge: %w", NewValidationError("bad"))
		assert.True(t, IsValidation(err))
		assert.False(t, IsNotFound(err))
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("plain errors are not domain errors", func(t *testing.T) {
		err := errors.New("boom")
		assert.False(t, IsValidation(err))
		assert.False(t, IsNotFound(err))
	})
}
