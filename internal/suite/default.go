package suite

import (
	"encoding/json"
	"fmt"
	"net/http"

	"leavesmoke/internal/domain"
)

// API paths of the leave-management service
const (
	PathClasses        = "/api/classes"
	PathDepartments    = "/api/departments"
	PathHealth         = "/api/health"
	PathLogin          = "/api/auth/login"
	PathDashboardStats = "/api/teachers/dashboard-stats"
	PathLeaveLimits    = "/api/teachers/leave-limits"
	PathLeaveBalances  = "/api/teachers/leave-balances"
)

// Default returns the built-in smoke suite in execution order. The login
// body is built from the given credentials.
func Default(email, password string) ([]domain.TestCase, error) {
	body, err := json.Marshal(domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("marshal login body: %w", err)
	}

	return []domain.TestCase{
		{Name: "classes (no auth)", Method: http.MethodGet, Path: PathClasses, Auth: domain.AuthNone},
		{Name: "classes (dummy token)", Method: http.MethodGet, Path: PathClasses, Auth: domain.AuthDummy},
		{Name: "departments (no auth)", Method: http.MethodGet, Path: PathDepartments, Auth: domain.AuthNone},
		{Name: "departments (dummy token)", Method: http.MethodGet, Path: PathDepartments, Auth: domain.AuthDummy},
		{Name: "health", Method: http.MethodGet, Path: PathHealth, Auth: domain.AuthNone},
		{Name: "login", Method: http.MethodPost, Path: PathLogin, Body: body, Auth: domain.AuthNone, Login: true},
		{Name: "dashboard stats", Method: http.MethodGet, Path: PathDashboardStats, Auth: domain.AuthSession},
		{Name: "leave limits", Method: http.MethodGet, Path: PathLeaveLimits, Auth: domain.AuthSession},
		{Name: "leave balances", Method: http.MethodGet, Path: PathLeaveBalances, Auth: domain.AuthSession},
	}, nil
}
