package execution

import (
	"context"
	"time"

	"leavesmoke/internal/domain"
	"leavesmoke/internal/session"
)

// Sequence executes cases one after another on the calling goroutine.
// Case N+1 is issued only after case N has completed.
type Sequence struct {
	runner   *Runner
	progress Progress
	observer Observer
}

var _ Executor = (*Sequence)(nil)

// NewSequence creates a new Sequence
func NewSequence(runner *Runner) *Sequence {
	return &Sequence{runner: runner}
}

// SetProgress sets the progress bar for the sequence
func (s *Sequence) SetProgress(progress Progress) {
	s.progress = progress
}

// SetObserver sets the observer notified around each case
func (s *Sequence) SetObserver(observer Observer) {
	s.observer = observer
}

// Execute runs every case in order. Failures are recorded per case and never
// stop the sequence; a cancelled context makes the remaining cases fail fast
// as network errors.
func (s *Sequence) Execute(ctx context.Context, cases []domain.TestCase, sess *session.Session) ([]domain.CaseResult, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}
	if sess == nil {
		sess = session.New()
	}

	var successCount, failCount int
	results := make([]domain.CaseResult, 0, len(cases))
	startTime := time.Now()

	for i, tc := range cases {
		if s.observer != nil {
			s.observer.CaseStarted(i+1, len(cases), tc)
		}

		result := s.runner.Run(ctx, i+1, tc, sess)
		results = append(results, result)

		if result.Success {
			successCount++
		} else {
			failCount++
		}
		if s.observer != nil {
			s.observer.CaseFinished(result)
		}
		if s.progress != nil {
			s.progress.Update(successCount, failCount)
		}
	}

	if s.progress != nil {
		s.progress.Finish()
	}
	return results, time.Since(startTime), nil
}
