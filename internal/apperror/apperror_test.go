package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	cause := errors.New("duplicate key")
	err := AlreadyExists("collection.create", "collection", cause)

	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, cause))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, errors.Is(wrapped, ErrAlreadyExists))
	assert.Equal(t, ErrAlreadyExists, KindOf(wrapped))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "session.get: session not found", NotFound("session.get", "session").Error())
	assert.Equal(t,
		"document.create: dependency failure: provider down",
		DependencyFailure("document.create", errors.New("provider down")).Error(),
	)
}

func TestKindOfForeignError(t *testing.T) {
	assert.Nil(t, KindOf(errors.New("plain")))
	assert.Nil(t, KindOf(nil))
}
