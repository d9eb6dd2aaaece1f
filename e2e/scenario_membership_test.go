package e2e

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testMembershipSuite struct {
	BaseHTTPSuite
}

func TestMembershipSuite(t *testing.T) {
	suite.Run(t, &testMembershipSuite{})
}

func (s *testMembershipSuite) TestLastAdminAndModerationFlow() {
	// Fresh identities so the scenario can run against a long-lived server
	suffix := uuid.NewString()[:8]
	alice, bob := "alice-"+suffix, "bob-"+suffix

	var group struct {
		ID string `json:"id"`
	}
	s.Run("Step 0: Both users are known and alice creates a group", func() {
		s.Step("Register identities")
		s.Require().Equal(http.StatusOK, s.Call(bob, http.MethodGet, "/api/groups", nil).Status)

		s.Step("Create group")
		response := s.Call(alice, http.MethodPost, "/api/groups", map[string]any{"name": "e2e " + suffix})
		s.Require().Equal(http.StatusCreated, response.Status)
		s.Decode(response, &group)
	})
	base := "/api/groups/" + group.ID

	s.Run("Step 1: The sole admin cannot leave", func() {
		response := s.Call(alice, http.MethodDelete, base+"/leave", nil)
		s.Require().Equal(http.StatusConflict, response.Status)
		s.Require().Equal("LAST_ADMIN_VIOLATION", response.Code)
	})

	s.Run("Step 2: A second admin lets the first one go", func() {
		response := s.Call(alice, http.MethodPost, base+"/members", map[string]any{"userId": bob, "role": "admin"})
		s.Require().Equal(http.StatusCreated, response.Status)

		response = s.Call(alice, http.MethodDelete, base+"/leave", nil)
		s.Require().Equal(http.StatusOK, response.Status)

		response = s.Call(bob, http.MethodDelete, base+"/leave", nil)
		s.Require().Equal("LAST_ADMIN_VIOLATION", response.Code)
	})

	s.Run("Step 3: Messages are stored, read once and soft deleted", func() {
		var message struct {
			ID string `json:"id"`
		}
		response := s.Call(bob, http.MethodPost, base+"/messages", map[string]any{"content": "hello from e2e"})
		s.Require().Equal(http.StatusCreated, response.Status)
		s.Decode(response, &message)

		s.Require().Equal(http.StatusOK, s.Call(bob, http.MethodPost, "/api/messages/"+message.ID+"/read", nil).Status)
		s.Require().Equal(http.StatusOK, s.Call(bob, http.MethodDelete, "/api/messages/"+message.ID, nil).Status)

		var page struct {
			Messages []any `json:"messages"`
		}
		s.Decode(s.Call(bob, http.MethodGet, base+"/messages", nil), &page)
		s.Require().Empty(page.Messages)
	})
}
