package validation

import (
	"strings"
	"testing"

	"group-chat/errors"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestValidate_SendMessage(t *testing.T) {
	tests := []struct {
		name    string
		request SendMessageRequest
		field   string
	}{
		{name: "valid text", request: SendMessageRequest{Content: "hello"}},
		{name: "valid file", request: SendMessageRequest{Content: "see attached", MessageType: "file", FileURL: "https://cdn.example.com/a.pdf", FileName: "a.pdf"}},
		{name: "blank content", request: SendMessageRequest{Content: "   \n\t "}, field: "content"},
		{name: "content too long", request: SendMessageRequest{Content: strings.Repeat("x", 2001)}, field: "content"},
		{name: "unknown type", request: SendMessageRequest{Content: "hi", MessageType: "video"}, field: "messageType"},
		{name: "bad url", request: SendMessageRequest{Content: "hi", FileURL: "not a url"}, field: "fileURL"},
		{name: "file name too long", request: SendMessageRequest{Content: "hi", FileName: strings.Repeat("f", 256)}, field: "fileName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			request := tt.request
			err := Validate(&request)
			if tt.field == "" {
				req.NoError(err)
				return
			}
			req.ErrorIs(err, errors.ErrValidation)
			var verr *Error
			req.ErrorAs(err, &verr)
			req.Contains(lo.Map(verr.Fields, func(f FieldError, _ int) string { return f.Field }), tt.field)
		})
	}
}

func TestValidate_TrimsBeforeChecking(t *testing.T) {
	req := require.New(t)

	// Given 2000 characters surrounded by whitespace
	request := SendMessageRequest{Content: "  " + strings.Repeat("é", 2000) + "  "}

	// Then the trimmed content is accepted and stored trimmed
	req.NoError(Validate(&request))
	req.Equal(strings.Repeat("é", 2000), request.Content)
}

func TestValidate_MuteMinutesRange(t *testing.T) {
	req := require.New(t)

	req.NoError(Validate(&MuteRequest{}))
	req.NoError(Validate(&MuteRequest{Minutes: lo.ToPtr(10080)}))
	req.ErrorIs(Validate(&MuteRequest{Minutes: lo.ToPtr(0)}), errors.ErrValidation)
	req.ErrorIs(Validate(&MuteRequest{Minutes: lo.ToPtr(10081)}), errors.ErrValidation)
}

func TestValidate_ListMessagesLimit(t *testing.T) {
	req := require.New(t)

	req.NoError(Validate(&ListMessagesRequest{Limit: DefaultMessageLimit}))
	req.ErrorIs(Validate(&ListMessagesRequest{Limit: 0}), errors.ErrValidation)
	req.ErrorIs(Validate(&ListMessagesRequest{Limit: 101}), errors.ErrValidation)
}

func TestValidate_Roles(t *testing.T) {
	req := require.New(t)

	req.NoError(Validate(&UpdateRoleRequest{Role: "admin"}))
	req.ErrorIs(Validate(&UpdateRoleRequest{Role: "owner"}), errors.ErrValidation)
	req.ErrorIs(Validate(&AddMemberRequest{UserID: "a:b"}), errors.ErrValidation)
	req.Equal("VALIDATION_ERROR", errors.Code(Validate(&UpdateRoleRequest{})))
}
