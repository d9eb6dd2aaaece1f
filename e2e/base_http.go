package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"group-chat/auth"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config   Config
	client   *http.Client
	verifier *auth.TokenVerifier
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  int
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.BaseURL == "" {
		s.T().Skip("E2E_BASE_URL not set")
	}
	s.Require().NotEmpty(s.Config.JWTSecret, "JWT_SECRET must match the server's")
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.verifier = auth.NewTokenVerifier(s.Config.JWTSecret, s.Config.JWTIssuer)
}

// Step prints a colorized header so scenario logs read as a sequence.
func (s *BaseHTTPSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Call performs one authenticated request as user and decodes the envelope.
func (s *BaseHTTPSuite) Call(user, method, path string, body any) Response {
	token, err := s.verifier.Issue(user, user, time.Hour, time.Now())
	s.Require().NoError(err)

	var reader io.Reader
	var raw []byte
	if body != nil {
		raw, err = json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	request, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(s.Config.BaseURL, "/")+path, reader)
	s.Require().NoError(err)
	request.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	response, err := s.client.Do(request)
	s.Require().NoError(err, "request %s %s failed", method, path)
	defer response.Body.Close()
	payload, err := io.ReadAll(response.Body)
	s.Require().NoError(err)

	var out Response
	if len(payload) > 0 {
		s.Require().NoError(json.Unmarshal(payload, &out), "body: %s", payload)
	}
	out.Status = response.StatusCode

	line := fmt.Sprintf("HTTP %s %s [%d %s] in %v", method, path, out.Status, out.Code, time.Since(start))
	if s.Config.DebugJSON {
		line += fmt.Sprintf("\nREQUEST: %s\nRESPONSE: %s", raw, payload)
	}
	s.T().Log(line)
	return out
}

// Decode unmarshals the data part of a successful response.
func (s *BaseHTTPSuite) Decode(response Response, v any) {
	s.Require().True(response.Success, "expected success, got %d %s", response.Status, response.Code)
	s.Require().NoError(json.Unmarshal(response.Data, v))
}
