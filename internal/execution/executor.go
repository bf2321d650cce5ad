package execution

import (
	"context"
	"time"

	"leavesmoke/internal/domain"
	"leavesmoke/internal/session"
)

// Executor executes test cases in order and returns their results
type Executor interface {
	Execute(ctx context.Context, cases []domain.TestCase, sess *session.Session) ([]domain.CaseResult, time.Duration, error)
}

// Progress receives running success and failure counts
type Progress interface {
	Update(successCount, failCount int)
	Finish()
}

// Observer is notified around each case, e.g. to print it
type Observer interface {
	CaseStarted(index, total int, tc domain.TestCase)
	CaseFinished(result domain.CaseResult)
}
