package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session holds the bearer token for the duration of one run.
// The token is assigned at most once, from a successful login.
type Session struct {
	token string
}

// New returns an empty session
func New() *Session {
	return &Session{}
}

// Token returns the stored token, empty if none was obtained
func (s *Session) Token() string {
	return s.token
}

// HasToken reports whether a token has been stored
func (s *Session) HasToken() bool {
	return s.token != ""
}

// SetToken stores the token if none is set yet. Empty tokens and second
// assignments are ignored; the return value reports whether it was stored.
func (s *Session) SetToken(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" || s.token != "" {
		return false
	}
	s.token = token
	return true
}

// Claims is the subset of token claims shown on the console
type Claims struct {
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Describe decodes the stored token's claims without verifying the signature.
// Opaque (non-JWT) tokens return an error; they are still valid bearer tokens.
func (s *Session) Describe() (*Claims, error) {
	if s.token == "" {
		return nil, fmt.Errorf("no token in session")
	}

	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.token, &tc); err != nil {
		return nil, fmt.Errorf("decode token claims: %w", err)
	}

	claims := &Claims{
		Subject: tc.Subject,
		Email:   tc.Email,
		Role:    tc.Role,
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	return claims, nil
}

// String renders the claims in a single console line
func (c *Claims) String() string {
	who := c.Email
	if who == "" {
		who = c.Subject
	}
	if who == "" {
		who = "unknown user"
	}
	s := who
	if c.Role != "" {
		s += " (" + c.Role + ")"
	}
	if !c.ExpiresAt.IsZero() {
		s += ", expires " + c.ExpiresAt.Format(time.RFC3339)
	}
	return s
}
