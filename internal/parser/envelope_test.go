package parser

import (
	"strings"
	"testing"

	"leavesmoke/internal/domain"
)

func TestEnvelopeParser_Token(t *testing.T) {
	p := NewEnvelopeParser()

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"token present", `{"success":true,"token":"abc.def.ghi"}`, "abc.def.ghi"},
		{"token missing", `{"success":true}`, ""},
		{"token not a string", `{"success":true,"token":123}`, ""},
		{"token blank", `{"success":true,"token":"  "}`, ""},
		{"nested token ignored", `{"success":true,"data":{"token":"x"}}`, ""},
		{"not json", `<html>502</html>`, ""},
		{"empty body", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Token([]byte(tt.body)); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestEnvelopeParser_Message(t *testing.T) {
	p := NewEnvelopeParser()

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"message field", `{"success":false,"message":"No token provided"}`, "No token provided"},
		{"error fallback", `{"error":"Invalid token"}`, "Invalid token"},
		{"message wins over error", `{"message":"m","error":"e"}`, "m"},
		{"no message", `{"success":false}`, ""},
		{"raw body", "  Bad Gateway \n", "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Message([]byte(tt.body)); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}

	t.Run("long raw body is truncated", func(t *testing.T) {
		got := p.Message([]byte(strings.Repeat("x", 500)))
		if len(got) != maxRawMessage+3 || !strings.HasSuffix(got, "...") {
			t.Errorf("unexpected truncation: len=%d", len(got))
		}
	})
}

func TestEnvelopeParser_Envelope(t *testing.T) {
	p := NewEnvelopeParser()

	env, ok := p.Envelope([]byte(`{"success":true,"message":"ok","data":{"totalLeaves":12}}`))
	if !ok {
		t.Fatalf("expected JSON envelope")
	}
	if !env.Success || env.Message != "ok" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	if string(env.Data) != `{"totalLeaves":12}` {
		t.Errorf("unexpected data %s", env.Data)
	}

	if _, ok := p.Envelope([]byte(`not json`)); ok {
		t.Errorf("expected non-JSON body to be rejected")
	}
}

func TestEnvelopeParser_ParseFailure(t *testing.T) {
	p := NewEnvelopeParser()
	result := domain.CaseResult{
		Name:    "classes (no auth)",
		Method:  "GET",
		Path:    "/api/classes",
		Status:  401,
		Outcome: domain.OutcomeHTTPError,
		Message: "Unauthorized",
		TraceID: "abc",
	}

	failure := p.ParseFailure(result)
	if failure.CaseName != result.Name || failure.Status != 401 || failure.Message != "Unauthorized" {
		t.Errorf("unexpected failure: %+v", failure)
	}
	if failure.Resolved {
		t.Errorf("new failures must not be resolved")
	}
}
