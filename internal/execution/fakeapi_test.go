package execution

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"leavesmoke/internal/domain"
)

const (
	fakeEmail    = "rajesh.kumar@college.com"
	fakePassword = "password123"
)

// fakeAPI is an in-process leave-management API that issues HS256 tokens
// and records the Authorization header of every request.
type fakeAPI struct {
	secret []byte
	// omitToken makes a successful login return no token
	omitToken bool

	mu      sync.Mutex
	headers map[string][]string
	order   []string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()

	api := &fakeAPI{
		secret:  []byte("fake-api-secret"),
		headers: make(map[string][]string),
	}
	srv := httptest.NewServer(api.router())
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) router() http.Handler {
	r := chi.NewRouter()
	r.Use(a.record)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.Post("/api/auth/login", a.login)

	r.Group(func(r chi.Router) {
		r.Use(a.requireToken)
		r.Get("/api/classes", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []string{"CS-A", "CS-B"}})
		})
		r.Get("/api/departments", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []string{"CSE"}})
		})
		r.Get("/api/teachers/dashboard-stats", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]int{"pendingLeaves": 2, "approvedLeaves": 5}})
		})
		r.Get("/api/teachers/leave-limits", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]int{"casual": 12}})
		})
		r.Get("/api/teachers/leave-balances", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]int{"casual": 10}})
		})
	})
	return r
}

func (a *fakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.headers[r.URL.Path] = append(a.headers[r.URL.Path], r.Header.Get("Authorization"))
		a.order = append(a.order, r.Method+" "+r.URL.Path)
		a.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (a *fakeAPI) authHeaders(path string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.headers[path]...)
}

func (a *fakeAPI) requests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.order...)
}

func (a *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid request body"})
		return
	}
	if req.Email != fakeEmail || req.Password != fakePassword {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid credentials"})
		return
	}
	if a.omitToken {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "7",
		"email": req.Email,
		"role":  "teacher",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(a.secret)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": signed})
}

func (a *fakeAPI) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "No token provided"})
			return
		}
		raw := strings.TrimPrefix(authz, "Bearer ")
		_, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) { return a.secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "message": "Invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
