package domain

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// AuthMode selects which Authorization header a test case sends
type AuthMode string

const (
	// AuthNone sends no Authorization header
	AuthNone AuthMode = "none"
	// AuthDummy sends a fixed bearer token the server is expected to reject
	AuthDummy AuthMode = "dummy"
	// AuthSession sends the token obtained by the login case, if any
	AuthSession AuthMode = "session"
)

// ParseAuthMode parses an auth column value; empty means AuthNone
func ParseAuthMode(s string) (AuthMode, error) {
	switch AuthMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", AuthNone:
		return AuthNone, nil
	case AuthDummy:
		return AuthDummy, nil
	case AuthSession:
		return AuthSession, nil
	}
	return "", fmt.Errorf("unknown auth mode %q (want none, dummy or session)", s)
}

// TestCase is a single HTTP call in the smoke suite
type TestCase struct {
	Name   string          // Display name
	Method string          // GET or POST
	Path   string          // Path appended to the base URL
	Body   json.RawMessage // Optional JSON body
	Auth   AuthMode        // Which Authorization header to send
	Login  bool            // A successful response supplies the session token
}

// RequiresAuth reports whether the case sends the session token
func (tc TestCase) RequiresAuth() bool {
	return tc.Auth == AuthSession
}

// Validate checks the method, path and body of a case
func (tc TestCase) Validate() error {
	switch tc.Method {
	case http.MethodGet, http.MethodPost:
	default:
		return fmt.Errorf("case %q: unsupported method %q", tc.Name, tc.Method)
	}
	if !strings.HasPrefix(tc.Path, "/") {
		return fmt.Errorf("case %q: path must start with /: %q", tc.Name, tc.Path)
	}
	if len(tc.Body) > 0 && !json.Valid(tc.Body) {
		return fmt.Errorf("case %q: body is not valid JSON", tc.Name)
	}
	return nil
}

// LoginRequest is the body of the login case
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Envelope is the response shape the API returns on every endpoint
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Token   string          `json:"token,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
