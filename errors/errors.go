package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Authorization failures, terminal for the request.
	ErrNotMember           = fmt.Errorf("not a member of this group")
	ErrNotAdmin            = fmt.Errorf("admin access required")
	ErrAdminOnlyRestricted = fmt.Errorf("only admins can send messages in this group")
	ErrMuted               = fmt.Errorf("muted in this group")
	ErrNotAuthorized       = fmt.Errorf("not authorized to delete this message")
	ErrUnauthenticated     = fmt.Errorf("unauthenticated")

	// Invariant failures.
	ErrAlreadyMember      = fmt.Errorf("user is already a member of this group")
	ErrLastAdminViolation = fmt.Errorf("cannot remove or demote the only admin, assign another admin first")

	ErrNotFound        = fmt.Errorf("not found")
	ErrGroupNotFound   = fmt.Errorf("group %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrMemberNotFound  = fmt.Errorf("member %w", ErrNotFound)
	ErrMessageNotFound = fmt.Errorf("message %w", ErrNotFound)

	ErrValidation = fmt.Errorf("validation error")

	// ErrStorage marks transient infrastructure failures. It is the only retryable class.
	ErrStorage = fmt.Errorf("storage error")
)

// Storage wraps an infrastructure failure so callers can classify it with
// errors.Is(err, ErrStorage) while the cause stays in the chain.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

func IsRetryable(err error) bool {
	return stderrors.Is(err, ErrStorage)
}

// Code returns the machine-readable code of err, used by the transport layer
// and the decision metrics. Order matters: the specific not-found errors are
// checked before the generic one.
func Code(err error) string {
	switch {
	case err == nil:
		return "OK"
	case stderrors.Is(err, ErrNotMember):
		return "NOT_MEMBER"
	case stderrors.Is(err, ErrNotAdmin):
		return "NOT_ADMIN"
	case stderrors.Is(err, ErrAdminOnlyRestricted):
		return "ADMIN_ONLY_RESTRICTED"
	case stderrors.Is(err, ErrMuted):
		return "MUTED"
	case stderrors.Is(err, ErrNotAuthorized):
		return "NOT_AUTHORIZED"
	case stderrors.Is(err, ErrUnauthenticated):
		return "UNAUTHENTICATED"
	case stderrors.Is(err, ErrAlreadyMember):
		return "ALREADY_MEMBER"
	case stderrors.Is(err, ErrLastAdminViolation):
		return "LAST_ADMIN_VIOLATION"
	case stderrors.Is(err, ErrGroupNotFound):
		return "GROUP_NOT_FOUND"
	case stderrors.Is(err, ErrUserNotFound):
		return "USER_NOT_FOUND"
	case stderrors.Is(err, ErrMemberNotFound):
		return "MEMBER_NOT_FOUND"
	case stderrors.Is(err, ErrMessageNotFound):
		return "MESSAGE_NOT_FOUND"
	case stderrors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case stderrors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case stderrors.Is(err, ErrStorage):
		return "STORAGE_ERROR"
	default:
		return "INTERNAL"
	}
}
