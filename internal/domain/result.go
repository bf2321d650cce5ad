package domain

import "time"

// Outcome classifies how a case ended
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeHTTPError    Outcome = "http_error"
	OutcomeNetworkError Outcome = "network_error"
)

// CaseResult represents the result of executing a single test case
type CaseResult struct {
	Index       int           // 1-based position in the suite
	Name        string        // Case name
	Method      string        // HTTP method
	Path        string        // Request path
	URL         string        // Full request URL
	Status      int           // HTTP status, 0 on network error
	Success     bool          // 2xx response
	Outcome     Outcome       // ok, http_error or network_error
	Message     string        // Server message or network error text
	Body        string        // Raw response body
	AuthSent    bool          // An Authorization header was attached
	TokenStored bool          // This case stored the session token
	Duration    time.Duration // Time taken by the request
	Curl        string        // Equivalent curl command
	TraceID     string        // Trace ID sent in the traceparent header
}

// RunMeta contains metadata about a smoke run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	BaseURL         string  `json:"base_url"`
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	NetworkErrors   int     `json:"network_errors"`
	TokenAcquired   bool    `json:"token_acquired"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete output structure for a smoke run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []CaseFailure `json:"details"`
}

// NewRunMeta summarises results into run metadata
func NewRunMeta(runID, baseURL string, results []CaseResult, tokenAcquired bool, duration time.Duration) RunMeta {
	meta := RunMeta{
		RunID:           runID,
		BaseURL:         baseURL,
		TotalCases:      len(results),
		TokenAcquired:   tokenAcquired,
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	for _, r := range results {
		if r.Success {
			meta.PassedCases++
			continue
		}
		meta.FailedCases++
		if r.Outcome == OutcomeNetworkError {
			meta.NetworkErrors++
		}
	}
	return meta
}
