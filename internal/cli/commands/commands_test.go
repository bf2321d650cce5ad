package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"leavesmoke/internal/cli"
	"leavesmoke/internal/config"
	"leavesmoke/internal/domain"
)

const apiToken = "opaque-session-token"

// newLeaveAPI accepts apiToken on every protected route
func newLeaveAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/health":
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		case "/api/auth/login":
			var req domain.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Password != "password123" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"token":"` + apiToken + `"}`))
		default:
			if r.Header.Get("Authorization") != "Bearer "+apiToken {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"success":false,"message":"No token provided"}`))
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestCommands(t *testing.T, flags config.Flags) (*Commands, *config.Config, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	cfg := config.New()
	cfg.OutputJSONDir = filepath.Join(t.TempDir(), "storage")
	cfg.ApplyFlags(flags)

	cmds := NewCommands(cfg)
	var buf bytes.Buffer
	cmds.Run.formatter.SetOutput(&buf)
	return cmds, cfg, &buf
}

func TestRunCommand_Execute(t *testing.T) {
	srv := newLeaveAPI(t)
	xlsx := filepath.Join(t.TempDir(), "run.xlsx")
	cmds, cfg, buf := newTestCommands(t, config.Flags{BaseURL: srv.URL, NoProgress: true, ExcelReport: xlsx})

	require.NoError(t, cmds.Run.Execute(&cobra.Command{}, nil))

	output, err := cmds.Run.storage.Load()
	require.NoError(t, err)
	assert.Equal(t, 9, output.Meta.TotalCases)
	assert.Equal(t, 5, output.Meta.PassedCases)
	assert.Equal(t, 4, output.Meta.FailedCases)
	assert.True(t, output.Meta.TokenAcquired)
	assert.Equal(t, srv.URL, output.Meta.BaseURL)
	require.Len(t, output.Details, 4)
	assert.Equal(t, "classes (no auth)", output.Details[0].CaseName)
	assert.Equal(t, "No token provided", output.Details[0].Message)

	_, err = os.Stat(cfg.GetOutputPath())
	assert.NoError(t, err)
	_, err = os.Stat(xlsx)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "token stored")
	assert.Contains(t, out, "Smoke Run Statistics")
	assert.Contains(t, out, "4 case(s) failed")
}

func TestRunCommand_FailedLoginStillCompletes(t *testing.T) {
	srv := newLeaveAPI(t)
	cmds, _, _ := newTestCommands(t, config.Flags{BaseURL: srv.URL, Password: "nope", NoProgress: true})

	require.NoError(t, cmds.Run.Execute(&cobra.Command{}, nil))

	output, err := cmds.Run.storage.Load()
	require.NoError(t, err)
	assert.False(t, output.Meta.TokenAcquired)
	assert.Equal(t, 1, output.Meta.PassedCases)
	assert.Equal(t, 8, output.Meta.FailedCases)
}

func TestRunCommand_Filter(t *testing.T) {
	srv := newLeaveAPI(t)
	cmds, _, _ := newTestCommands(t, config.Flags{BaseURL: srv.URL, NameFilter: "leave*", NoProgress: true})

	require.NoError(t, cmds.Run.Execute(&cobra.Command{}, nil))

	output, err := cmds.Run.storage.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, output.Meta.TotalCases)
	assert.Equal(t, 3, output.Meta.PassedCases)
	assert.Empty(t, output.Details)
}

func TestRunCommand_NothingToRun(t *testing.T) {
	cmds, _, _ := newTestCommands(t, config.Flags{NameFilter: "no-such-case", NoProgress: true})

	require.NoError(t, cmds.Run.Execute(&cobra.Command{}, nil))
	_, err := cmds.Run.storage.Load()
	assert.Error(t, err, "no report is written when nothing ran")
}

func TestRunCommand_MissingWorkbook(t *testing.T) {
	cmds, _, _ := newTestCommands(t, config.Flags{CasesFile: filepath.Join(t.TempDir(), "missing.xlsx"), NoProgress: true})

	err := cmds.Run.Execute(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load cases")
}

func TestListCommand_Execute(t *testing.T) {
	cmds, _, buf := newTestCommands(t, config.Flags{NameFilter: "*token*"})

	require.NoError(t, cmds.List.Execute(&cobra.Command{}, nil))

	out := buf.String()
	assert.Contains(t, out, "Found 2 case(s)")
	assert.Contains(t, out, "classes (dummy token)")
	assert.Contains(t, out, "departments (dummy token)")
	assert.False(t, strings.Contains(out, "[F]"))
}

func TestRegister(t *testing.T) {
	cfg := config.New()
	cmds := NewCommands(cfg)
	root := &cobra.Command{Use: "leavesmoke"}
	var flags cli.Flags

	cmds.Register(root, &flags, cfg)

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"run", "list", "migrate", "history", "faills"}, names)

	runCmd, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	require.NoError(t, runCmd.ParseFlags([]string{"-u", "http://api.test/", "--timeout", "5s", "-f", "leave*", "-v"}))
	require.NoError(t, runCmd.PreRunE(runCmd, nil))

	assert.Equal(t, "http://api.test", cfg.GetBaseURL())
	assert.Equal(t, "leave*", cfg.Flags.NameFilter)
	assert.Equal(t, "5s", cfg.RequestTimeout.String())
	assert.True(t, cmds.level.Enabled(zapcore.DebugLevel), "verbose enables debug logging")
}
