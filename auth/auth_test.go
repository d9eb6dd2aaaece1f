package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"group-chat/domain"
	"group-chat/errors"
	"group-chat/mocks"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const secret = "test-secret-at-least-32-bytes-long!!"

func TestTokenVerifier_Verify(t *testing.T) {
	verifier := NewTokenVerifier(secret, "group-chat")
	now := time.Now()

	valid, err := verifier.Issue("alice", "Alice", time.Hour, now)
	require.NoError(t, err)
	expired, err := verifier.Issue("alice", "Alice", time.Hour, now.Add(-2*time.Hour))
	require.NoError(t, err)
	otherIssuer, err := NewTokenVerifier(secret, "someone-else").Issue("alice", "", time.Hour, now)
	require.NoError(t, err)
	otherSecret, err := NewTokenVerifier("another-secret-another-secret-!!", "group-chat").Issue("alice", "", time.Hour, now)
	require.NoError(t, err)
	badSubject, err := verifier.Issue("a:b", "", time.Hour, now)
	require.NoError(t, err)
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject: "alice", Issuer: "group-chat", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		ok    bool
	}{
		{name: "valid", token: valid, ok: true},
		{name: "expired", token: expired},
		{name: "wrong issuer", token: otherIssuer},
		{name: "wrong secret", token: otherSecret},
		{name: "subject with separator", token: badSubject},
		{name: "unsigned", token: noneAlg},
		{name: "garbage", token: "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			claims, err := verifier.Verify(tt.token)
			if tt.ok {
				req.NoError(err)
				req.Equal("alice", claims.Subject)
				req.Equal("Alice", claims.Name)
				return
			}
			req.ErrorIs(err, errors.ErrUnauthenticated)
		})
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	verifier := NewTokenVerifier(secret, "group-chat")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	newRouter := func(users *mocks.MockIUserRepository) *gin.Engine {
		router := gin.New()
		router.Use(Middleware(verifier, users, clock, log))
		router.GET("/whoami", func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) })
		return router
	}

	t.Run("should reject a missing token", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)

		w := httptest.NewRecorder()
		newRouter(users).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		req.Equal(http.StatusUnauthorized, w.Code)
		req.Contains(w.Body.String(), "UNAUTHENTICATED")
	})

	t.Run("should register the caller and expose its id", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		users.EXPECT().Touch(gomock.Any(), "alice", "Alice", now).Return(domain.User{ID: "alice"}, nil)

		token, err := verifier.Issue("alice", "Alice", time.Hour, time.Now())
		req.NoError(err)
		request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		request.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		newRouter(users).ServeHTTP(w, request)

		req.Equal(http.StatusOK, w.Code)
		req.Equal("alice", w.Body.String())
	})

	t.Run("should fail closed when the directory is down", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		users.EXPECT().Touch(gomock.Any(), "alice", "", now).
			DoAndReturn(func(context.Context, string, string, time.Time) (domain.User, error) {
				return domain.User{}, errors.Storage(context.DeadlineExceeded)
			})

		token, err := verifier.Issue("alice", "", time.Hour, time.Now())
		req.NoError(err)
		request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		request.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		newRouter(users).ServeHTTP(w, request)

		req.Equal(http.StatusServiceUnavailable, w.Code)
		req.Contains(w.Body.String(), "STORAGE_ERROR")
	})
}
