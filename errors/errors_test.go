package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCode_SpecificBeforeGeneric(t *testing.T) {
	require.Equal(t, "GROUP_NOT_FOUND", Code(ErrGroupNotFound))
	require.Equal(t, "MESSAGE_NOT_FOUND", Code(fmt.Errorf("loading m1: %w", ErrMessageNotFound)))
	require.Equal(t, "NOT_FOUND", Code(ErrNotFound))
	require.Equal(t, "OK", Code(nil))
	require.Equal(t, "INTERNAL", Code(stderrors.New("boom")))
}

func TestStorage(t *testing.T) {
	req := require.New(t)
	cause := stderrors.New("disk full")

	err := Storage(cause)

	req.ErrorIs(err, ErrStorage)
	req.ErrorIs(err, cause)
	req.True(IsRetryable(err))
	req.Equal("STORAGE_ERROR", Code(err))
	req.Same(err, Storage(err))
	req.NoError(Storage(nil))
	req.False(IsRetryable(ErrLastAdminViolation))
}
