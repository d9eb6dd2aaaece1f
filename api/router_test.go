package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"group-chat/auth"
	"group-chat/errors"
	"group-chat/moderation"
	"group-chat/observability"
	"group-chat/repositories"
	"group-chat/runtime"
	"group-chat/services"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gin-gonic/gin"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret-router-test-secret"

type testServer struct {
	router   *gin.Engine
	verifier *auth.TokenVerifier
}

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })

	clock := func() time.Time { return time.Now().UTC() }
	metrics := observability.NewMetrics()
	dispatcher := runtime.NewDispatcher(128, metrics, log)
	groupRepository := repositories.NewGroupRepository(db, log)
	membershipRepository := repositories.NewMembershipRepository(db, log)
	messageRepository := repositories.NewMessageRepository(db, log)
	userRepository := repositories.NewUserRepository(db, log, time.Minute)
	moderator, err := moderation.NewModerator([]string{"badger"}, '*', log)
	require.NoError(t, err)

	gate := services.NewAuthorizationGate(groupRepository, membershipRepository, clock)
	handler := NewHandler(
		services.NewGroupService(groupRepository, membershipRepository, dispatcher, metrics, clock, log),
		services.NewMembershipService(gate, membershipRepository, userRepository, dispatcher, metrics, clock, log),
		services.NewMessageService(gate, messageRepository, repositories.NewMessageIndex(writer, log), moderator, dispatcher, metrics, clock, log),
		log,
	)
	verifier := auth.NewTokenVerifier(testSecret, "group-chat")
	router := NewRouter(RouterDeps{
		Handler:  handler,
		Verifier: verifier,
		Users:    userRepository,
		Limiter:  NewUserRateLimiter(600, 50, time.Minute, clock, log),
		Metrics:  metrics,
		Clock:    clock,
		Log:      log,
	})
	return testServer{router: router, verifier: verifier}
}

func (s testServer) do(t *testing.T, user, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	request := httptest.NewRequest(method, path, reader)
	if user != "" {
		token, err := s.verifier.Issue(user, user, time.Hour, time.Now())
		require.NoError(t, err)
		request.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, request)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func TestRouter_HealthIsPublic(t *testing.T) {
	server := newTestServer(t)
	status, _ := server.do(t, "", http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, status)
}

func TestRouter_RequiresToken(t *testing.T) {
	server := newTestServer(t)
	status, env := server.do(t, "", http.MethodGet, "/api/groups", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "UNAUTHENTICATED", env.Code)
}

func TestRouter_GroupLifecycle(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)

	// Given bob and carol are known to the directory
	status, _ := server.do(t, "bob", http.MethodGet, "/api/groups", nil)
	req.Equal(http.StatusOK, status)
	status, _ = server.do(t, "carol", http.MethodGet, "/api/groups", nil)
	req.Equal(http.StatusOK, status)

	// When alice creates a group
	status, env := server.do(t, "alice", http.MethodPost, "/api/groups", map[string]any{"name": "Platform team"})
	req.Equal(http.StatusCreated, status)
	var group struct {
		ID string `json:"id"`
	}
	req.NoError(json.Unmarshal(env.Data, &group))
	base := "/api/groups/" + group.ID

	// Then the sole admin cannot leave
	status, env = server.do(t, "alice", http.MethodDelete, base+"/leave", nil)
	req.Equal(http.StatusConflict, status)
	req.Equal("LAST_ADMIN_VIOLATION", env.Code)

	// When alice adds bob, twice
	status, _ = server.do(t, "alice", http.MethodPost, base+"/members", map[string]any{"userId": "bob"})
	req.Equal(http.StatusCreated, status)
	status, env = server.do(t, "alice", http.MethodPost, base+"/members", map[string]any{"userId": "bob"})
	req.Equal(http.StatusConflict, status)
	req.Equal("ALREADY_MEMBER", env.Code)

	// Then an unknown user cannot be added and bob cannot add anyone
	status, env = server.do(t, "alice", http.MethodPost, base+"/members", map[string]any{"userId": "ghost"})
	req.Equal(http.StatusNotFound, status)
	req.Equal("USER_NOT_FOUND", env.Code)
	status, env = server.do(t, "bob", http.MethodPost, base+"/members", map[string]any{"userId": "carol"})
	req.Equal(http.StatusForbidden, status)
	req.Equal("NOT_ADMIN", env.Code)
	status, env = server.do(t, "carol", http.MethodGet, base+"/messages", nil)
	req.Equal(http.StatusForbidden, status)
	req.Equal("NOT_MEMBER", env.Code)

	// When bob sends a message containing a censored word
	status, env = server.do(t, "bob", http.MethodPost, base+"/messages", map[string]any{"content": "  the badger is here  "})
	req.Equal(http.StatusCreated, status)
	var message struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}
	req.NoError(json.Unmarshal(env.Data, &message))
	req.Equal("the ****** is here", message.Content)

	// Then alice has one unread message
	status, env = server.do(t, "alice", http.MethodGet, base+"/unread-count", nil)
	req.Equal(http.StatusOK, status)
	req.JSONEq(`{"unreadCount":1}`, string(env.Data))

	// When bob is muted without duration, he cannot send
	status, _ = server.do(t, "alice", http.MethodPut, base+"/members/bob/mute", nil)
	req.Equal(http.StatusOK, status)
	status, env = server.do(t, "bob", http.MethodPost, base+"/messages", map[string]any{"content": "hello?"})
	req.Equal(http.StatusForbidden, status)
	req.Equal("MUTED", env.Code)

	// And malformed inputs are rejected as validation errors
	status, env = server.do(t, "alice", http.MethodGet, base+"/messages?limit=500", nil)
	req.Equal(http.StatusBadRequest, status)
	req.Equal("VALIDATION_ERROR", env.Code)
	status, env = server.do(t, "alice", http.MethodPut, base+"/members/bob/mute", map[string]any{"minutes": 0})
	req.Equal(http.StatusBadRequest, status)
	req.Equal("VALIDATION_ERROR", env.Code)

	// When carol tries to delete bob's message
	status, env = server.do(t, "carol", http.MethodDelete, "/api/messages/"+message.ID, nil)
	req.Equal(http.StatusForbidden, status)
	req.Equal("NOT_AUTHORIZED", env.Code)

	// Then alice as admin can
	status, _ = server.do(t, "alice", http.MethodDelete, "/api/messages/"+message.ID, nil)
	req.Equal(http.StatusOK, status)
	status, env = server.do(t, "alice", http.MethodGet, base+"/unread-count", nil)
	req.Equal(http.StatusOK, status)
	req.JSONEq(`{"unreadCount":0}`, string(env.Data))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{errors.ErrValidation, http.StatusBadRequest},
		{errors.ErrUnauthenticated, http.StatusUnauthorized},
		{errors.ErrNotMember, http.StatusForbidden},
		{errors.ErrNotAdmin, http.StatusForbidden},
		{errors.ErrAdminOnlyRestricted, http.StatusForbidden},
		{errors.ErrMuted, http.StatusForbidden},
		{errors.ErrNotAuthorized, http.StatusForbidden},
		{errors.ErrGroupNotFound, http.StatusNotFound},
		{errors.ErrMessageNotFound, http.StatusNotFound},
		{errors.ErrAlreadyMember, http.StatusConflict},
		{errors.ErrLastAdminViolation, http.StatusConflict},
		{errors.Storage(badger.ErrConflict), http.StatusServiceUnavailable},
		{errors.ErrWorkerPanic, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(errors.Code(tt.err), func(t *testing.T) {
			require.Equal(t, tt.status, statusFor(tt.err))
		})
	}
}
