package runner

import (
	"errors"

	"github.com/lshigami/edugress/internal/domain"
)

var (
	// ErrBusy rejects a submit while another network call of the attempt is
	// still in flight.
	ErrBusy          = errors.New("runner: a request is already in progress")
	ErrNotInProgress = errors.New("runner: attempt is not in progress")
	ErrQuestionMoved = errors.New("runner: answer is for a question that is not current")
)

type Phase int

const (
	Loading Phase = iota
	InProgress
	Submitting
	Completing
	Completed
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case InProgress:
		return "in_progress"
	case Submitting:
		return "submitting"
	case Completing:
		return "completing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the runner. AttemptID and Index are meaningful from
// InProgress on; Result only in Completed; Err only in Failed.
type State struct {
	Phase     Phase
	AttemptID int
	Index     int
	Total     int
	Result    *domain.TestResult
	Summary   *domain.EndSummary
	Err       error
}
