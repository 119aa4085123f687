package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("direct code", func(t *testing.T) {
		err := New(CodeNotFound, "aircraft not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("wrapped by fmt", func(t *testing.T) {
		err := fmt.Errorf("scan: %w", New(CodePaymentRequired, "payment required"))
		assert.True(t, Is(err, CodePaymentRequired))
	})

	t.Run("inner domain error", func(t *testing.T) {
		inner := New(CodeTimeout, "discovery timed out")
		err := Wrap(inner, CodeInternal, "resolve failed")
		assert.True(t, HasCode(err, CodeTimeout))
		assert.True(t, HasCode(err, CodeInternal))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	err := Wrap(errors.New("connection refused"), CodeUnavailable, "registry unavailable")
	assert.Equal(t, "unavailable: registry unavailable: connection refused", err.Error())
	assert.Equal(t, "not_found: missing", New(CodeNotFound, "missing").Error())
}
