package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhmyung/GuildQuest-Group3/internal/errors"
)

func TestWrapPreservesCodeAndMeta(t *testing.T) {
	t.Run("Preserves code through wrapping", func(t *testing.T) {
		base := errors.NotFound("campaign not found").WithMeta("campaign_id", "P3")
		wrapped := errors.Wrap(base, "failed to load campaign")

		assert.True(t, errors.IsNotFound(wrapped))
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(wrapped))
		require.NotNil(t, errors.GetMeta(wrapped))
		assert.Equal(t, "P3", errors.GetMeta(wrapped)["campaign_id"])
	})

	t.Run("Unknown code for foreign errors", func(t *testing.T) {
		wrapped := errors.Wrap(fmt.Errorf("boom"), "operation failed")
		assert.Equal(t, errors.CodeUnknown, errors.GetCode(wrapped))
	})

	t.Run("Wrap of nil is nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, "nothing"))
	})

	t.Run("WrapWithCode overrides the code", func(t *testing.T) {
		base := errors.Validation("day must be non-negative")
		wrapped := errors.WrapWithCode(base, errors.CodeInvalidArgument, "bad input")
		assert.True(t, errors.IsInvalidArgument(wrapped))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Run("Includes cause", func(t *testing.T) {
		base := fmt.Errorf("disk full")
		wrapped := errors.Wrap(base, "failed to save")
		assert.Equal(t, "failed to save: disk full", wrapped.Error())
	})

	t.Run("Message only without cause", func(t *testing.T) {
		err := errors.PermissionDeniedf("user %s cannot edit", "alice")
		assert.Equal(t, "user alice cannot edit", err.Error())
	})
}

func TestPredicates(t *testing.T) {
	assert.True(t, errors.IsAlreadyExists(errors.AlreadyExists("username taken")))
	assert.True(t, errors.IsValidation(errors.Validationf("hour %d out of range", 24)))
	assert.True(t, errors.IsPermissionDenied(errors.PermissionDenied("view denied")))
	assert.False(t, errors.IsNotFound(nil))
	assert.False(t, errors.IsNotFound(fmt.Errorf("plain")))
}
