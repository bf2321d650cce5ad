package domain

// CaseFailure represents a failed test case in the run report
type CaseFailure struct {
	CaseName string  `json:"case_name"`
	Method   string  `json:"method"`
	Path     string  `json:"path"`
	Status   int     `json:"status"`
	Outcome  Outcome `json:"outcome"`
	Message  string  `json:"message"`
	Body     string  `json:"body,omitempty"`
	Curl     string  `json:"curl"`
	TraceID  string  `json:"trace_id"`
	Resolved bool    `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}

// RunRecord is a run as archived in the history database
type RunRecord struct {
	RunID         string
	BaseURL       string
	TotalCases    int
	PassedCases   int
	FailedCases   int
	TokenAcquired bool
	DurationMs    int64
	StartedAt     string
}
