// Package validation checks the shape of incoming requests before any rule
// evaluation happens. It only looks at the request itself, never at state.
package validation

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"group-chat/errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	DefaultMessageLimit = 50
	DefaultSearchLimit  = 20
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsAdminOnly bool   `json:"isAdminOnly"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type AddMemberRequest struct {
	UserID string `json:"userId" validate:"required,max=128,excludesall=:"`
	Role   string `json:"role" validate:"omitempty,oneof=admin member"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin member"`
}

type MuteRequest struct {
	Minutes *int   `json:"minutes" validate:"omitempty,min=1,max=10080"`
	Reason  string `json:"reason" validate:"max=200"`
}

type SendMessageRequest struct {
	Content     string `json:"content" validate:"required,max=2000"`
	MessageType string `json:"messageType" validate:"omitempty,oneof=text image file system"`
	FileURL     string `json:"fileUrl" validate:"omitempty,url"`
	FileName    string `json:"fileName" validate:"max=255"`
}

type ListMessagesRequest struct {
	Limit  int `validate:"min=1,max=100"`
	Before *time.Time
}

type SearchRequest struct {
	Query string `validate:"required,min=2,max=50"`
	Limit int    `validate:"min=1,max=50"`
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned for every rejected request. It matches errors.ErrValidation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", errors.ErrValidation, strings.Join(lo.Map(e.Fields, func(f FieldError, _ int) string {
		return f.Field + " " + f.Message
	}), ", "))
}

func (e *Error) Unwrap() error {
	return errors.ErrValidation
}

// Invalid builds a validation error for a single field, for checks that
// cannot be expressed as struct tags (malformed query parameters).
func Invalid(field, message string) error {
	return &Error{Fields: []FieldError{{Field: field, Message: message}}}
}

// Validate trims string fields of known requests in place, then checks tags.
func Validate(request any) error {
	normalize(request)
	err := validate.Struct(request)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	return &Error{Fields: lo.Map(fieldErrors, func(fe validator.FieldError, _ int) FieldError {
		return FieldError{Field: fieldName(fe), Message: describe(fe)}
	})}
}

func normalize(request any) {
	switch r := request.(type) {
	case *CreateGroupRequest:
		r.Name = strings.TrimSpace(r.Name)
		r.Description = strings.TrimSpace(r.Description)
	case *UpdateGroupRequest:
		if r.Name != nil {
			r.Name = lo.ToPtr(strings.TrimSpace(*r.Name))
		}
		if r.Description != nil {
			r.Description = lo.ToPtr(strings.TrimSpace(*r.Description))
		}
	case *AddMemberRequest:
		r.UserID = strings.TrimSpace(r.UserID)
	case *MuteRequest:
		r.Reason = strings.TrimSpace(r.Reason)
	case *SendMessageRequest:
		r.Content = strings.TrimSpace(r.Content)
		r.FileName = strings.TrimSpace(r.FileName)
	case *SearchRequest:
		r.Query = strings.TrimSpace(r.Query)
	}
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	return strings.ToLower(name[:1]) + name[1:]
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "excludesall":
		return "contains forbidden characters"
	default:
		return "failed " + fe.Tag()
	}
}
