package parser

import (
	"encoding/json"
	"strings"

	"leavesmoke/internal/domain"
)

// maxRawMessage caps how much of a non-JSON body is used as a message
const maxRawMessage = 200

// EnvelopeParser parses the API's {success, message, token, data} responses
type EnvelopeParser struct{}

// NewEnvelopeParser creates a new EnvelopeParser
func NewEnvelopeParser() *EnvelopeParser {
	return &EnvelopeParser{}
}

// decode returns the top-level JSON object, or nil if the body is not one
func (p *EnvelopeParser) decode(body []byte) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil
	}
	return obj
}

// Token returns the top-level token string. A missing, empty or non-string
// token field yields "".
func (p *EnvelopeParser) Token(body []byte) string {
	obj := p.decode(body)
	if obj == nil {
		return ""
	}
	token, ok := obj["token"].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// Message returns the server-supplied message. It falls back to the error
// field, then to a truncated raw body when the response is not JSON.
func (p *EnvelopeParser) Message(body []byte) string {
	obj := p.decode(body)
	if obj == nil {
		raw := strings.TrimSpace(string(body))
		if len(raw) > maxRawMessage {
			raw = raw[:maxRawMessage] + "..."
		}
		return raw
	}
	for _, key := range []string{"message", "error"} {
		if msg, ok := obj[key].(string); ok && msg != "" {
			return msg
		}
	}
	return ""
}

// Envelope decodes the full response envelope. Fields with unexpected types
// are left at their zero value.
func (p *EnvelopeParser) Envelope(body []byte) (domain.Envelope, bool) {
	obj := p.decode(body)
	if obj == nil {
		return domain.Envelope{}, false
	}
	env := domain.Envelope{
		Token:   p.Token(body),
		Message: p.Message(body),
	}
	if success, ok := obj["success"].(bool); ok {
		env.Success = success
	}
	if errText, ok := obj["error"].(string); ok {
		env.Error = errText
	}
	if data, ok := obj["data"]; ok && data != nil {
		if raw, err := json.Marshal(data); err == nil {
			env.Data = raw
		}
	}
	return env, true
}

// ParseFailure builds the report entry for a failed case
func (p *EnvelopeParser) ParseFailure(result domain.CaseResult) domain.CaseFailure {
	return domain.CaseFailure{
		CaseName: result.Name,
		Method:   result.Method,
		Path:     result.Path,
		Status:   result.Status,
		Outcome:  result.Outcome,
		Message:  result.Message,
		Body:     result.Body,
		Curl:     result.Curl,
		TraceID:  result.TraceID,
	}
}
