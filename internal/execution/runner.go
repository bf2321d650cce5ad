package execution

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"leavesmoke/internal/config"
	"leavesmoke/internal/domain"
	"leavesmoke/internal/parser"
	"leavesmoke/internal/session"
)

// Runner executes a single test case against the API
type Runner struct {
	config *config.Config
	client *http.Client
	parser *parser.EnvelopeParser
	logger *zap.Logger
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, envelopeParser *parser.EnvelopeParser, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		config: cfg,
		client: &http.Client{},
		parser: envelopeParser,
		logger: logger,
	}
}

// SetHTTPClient replaces the HTTP client, e.g. with an httptest server client
func (r *Runner) SetHTTPClient(client *http.Client) {
	r.client = client
}

// Run issues the case's request and classifies the response. Network and
// HTTP errors are recorded in the result, never returned, so one failing
// case cannot stop the run. A successful login stores its token in sess.
func (r *Runner) Run(ctx context.Context, index int, tc domain.TestCase, sess *session.Session) domain.CaseResult {
	url := r.config.GetBaseURL() + tc.Path
	result := domain.CaseResult{
		Index:  index,
		Name:   tc.Name,
		Method: tc.Method,
		Path:   tc.Path,
		URL:    url,
	}

	if r.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.RequestTimeout)
		defer cancel()
	}

	var body io.Reader
	if len(tc.Body) > 0 {
		body = bytes.NewReader(tc.Body)
	}

	req, err := http.NewRequestWithContext(ctx, tc.Method, url, body)
	if err != nil {
		result.Outcome = domain.OutcomeNetworkError
		result.Message = fmt.Sprintf("build request: %v", err)
		return result
	}

	traceParent := createTraceParent()
	result.TraceID = extractTraceID(traceParent)
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := r.bearerToken(tc, sess); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		result.AuthSent = true
	}
	result.Curl = toCurl(req, tc.Body)

	r.logger.Debug("request",
		zap.Int("case", index),
		zap.String("method", tc.Method),
		zap.String("url", url),
		zap.Bool("auth", result.AuthSent),
		zap.String("trace_id", result.TraceID),
		zap.String("curl", result.Curl),
	)

	start := time.Now()
	resp, err := r.client.Do(req)
	result.Duration = time.Since(start)
	if err != nil {
		result.Outcome = domain.OutcomeNetworkError
		result.Message = err.Error()
		r.logger.Warn("request failed",
			zap.String("method", tc.Method),
			zap.String("path", tc.Path),
			zap.Duration("duration", result.Duration),
			zap.String("trace_id", result.TraceID),
			zap.Error(err),
		)
		return result
	}
	defer resp.Body.Close()

	result.Status = resp.StatusCode
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Outcome = domain.OutcomeNetworkError
		result.Message = fmt.Sprintf("reading response body: %v", err)
		return result
	}
	result.Body = string(respBody)
	result.Message = r.parser.Message(respBody)

	r.logger.Debug("response",
		zap.Int("case", index),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", result.Duration),
		zap.Int("bytes", len(respBody)),
		zap.String("trace_id", result.TraceID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Outcome = domain.OutcomeHTTPError
		return result
	}

	result.Success = true
	result.Outcome = domain.OutcomeOK
	if tc.Login && sess != nil {
		result.TokenStored = sess.SetToken(r.parser.Token(respBody))
		if !result.TokenStored && !sess.HasToken() {
			r.logger.Warn("login succeeded without a token", zap.String("path", tc.Path))
		}
	}

	return result
}

// bearerToken returns the token to send for the case, empty for none
func (r *Runner) bearerToken(tc domain.TestCase, sess *session.Session) string {
	switch tc.Auth {
	case domain.AuthDummy:
		return r.config.DummyToken
	case domain.AuthSession:
		if sess != nil {
			return sess.Token()
		}
	}
	return ""
}
