// Package runner drives one test attempt: start or resume, one question at a
// time, end and fetch the result.
package runner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/gateway"
	"github.com/lshigami/edugress/internal/renderer"
	"github.com/rs/zerolog"
)

// Gateway is the subset of the backend client the runner needs.
type Gateway interface {
	StartTest(ctx context.Context, token string, testID int) (int, error)
	GetQuestions(ctx context.Context, token string, attemptID int, filter gateway.AnsweredFilter) ([]domain.AttemptQuestion, error)
	SubmitAnswer(ctx context.Context, token string, questionAnswerID int, a domain.UserAnswer) error
	EndTest(ctx context.Context, token string, attemptID int) (domain.EndSummary, error)
	GetResult(ctx context.Context, token string, attemptID int) (*domain.TestResult, error)
}

type SessionLoader interface {
	Load(ctx context.Context) (domain.Session, error)
}

type Resumption interface {
	FindResumableAttempt(ctx context.Context, testID int) (int, bool, error)
	Remember(ctx context.Context, testID, attemptID int) error
	Forget(ctx context.Context, testID int) error
}

// Runner is the test-taking state machine. The mutex guards state only and
// is never held across a network call; calls are strictly sequential.
type Runner struct {
	testID   int
	gw       Gateway
	sessions SessionLoader
	resume   Resumption
	log      zerolog.Logger

	mu        sync.Mutex
	state     State
	token     string
	questions []domain.AttemptQuestion
	submitted []bool
	// ended is set once EndTest succeeded; completion then only needs the
	// result.
	ended   bool
	summary domain.EndSummary
}

func New(testID int, gw Gateway, sessions SessionLoader, resume Resumption, log zerolog.Logger) *Runner {
	return &Runner{
		testID:   testID,
		gw:       gw,
		sessions: sessions,
		resume:   resume,
		log:      log.With().Str("component", "runner").Int("test_id", testID).Logger(),
		state:    State{Phase: Loading},
	}
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Questions returns a copy of the attempt's questions in display order.
func (r *Runner) Questions() []domain.AttemptQuestion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AttemptQuestion(nil), r.questions...)
}

// Current returns the question at the current index while in progress.
func (r *Runner) Current() (domain.AttemptQuestion, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Phase != InProgress || r.state.Index >= len(r.questions) {
		return domain.AttemptQuestion{}, false
	}
	return r.questions[r.state.Index], true
}

// Load starts a new attempt or resumes the remembered one. Failures move the
// runner to Failed; there is no automatic retry.
func (r *Runner) Load(ctx context.Context) error {
	r.mu.Lock()
	if r.state.Phase != Loading {
		r.mu.Unlock()
		return fmt.Errorf("runner: already loaded (%s)", r.state.Phase)
	}
	r.mu.Unlock()

	sess, err := r.sessions.Load(ctx)
	if err != nil {
		return r.fail(err)
	}
	r.mu.Lock()
	r.token = sess.Token
	r.mu.Unlock()

	attemptID, found, err := r.resume.FindResumableAttempt(ctx, r.testID)
	if err != nil {
		return r.fail(fmt.Errorf("find resumable attempt: %w", err))
	}
	if found {
		resumed, err := r.tryResume(ctx, sess.Token, attemptID)
		if err != nil {
			return err
		}
		if resumed {
			return nil
		}
	}

	attemptID, err = r.gw.StartTest(ctx, sess.Token, r.testID)
	if err != nil {
		return r.fail(err)
	}
	if err := r.resume.Remember(ctx, r.testID, attemptID); err != nil {
		r.log.Warn().Err(err).Int("attempt_id", attemptID).Msg("could not remember attempt for resumption")
	}
	r.log.Info().Int("attempt_id", attemptID).Msg("attempt started")
	return r.enter(ctx, sess.Token, attemptID)
}

// tryResume reports false when the remembered attempt no longer exists on the
// backend and a fresh one should be started.
func (r *Runner) tryResume(ctx context.Context, token string, attemptID int) (bool, error) {
	res, err := r.gw.GetResult(ctx, token, attemptID)
	var se *gateway.HTTPStatusError
	if errors.As(err, &se) && se.Status == http.StatusNotFound {
		r.log.Warn().Int("attempt_id", attemptID).Msg("remembered attempt is gone, starting a new one")
		if err := r.resume.Forget(ctx, r.testID); err != nil {
			r.log.Warn().Err(err).Msg("could not clear resumption key")
		}
		return false, nil
	}
	if err != nil {
		return false, r.fail(err)
	}
	if res.IsEnded {
		if err := r.resume.Forget(ctx, r.testID); err != nil {
			r.log.Warn().Err(err).Msg("could not clear resumption key")
		}
		r.mu.Lock()
		r.state = State{Phase: Completed, AttemptID: attemptID, Total: res.TotalQuestions, Result: res}
		r.mu.Unlock()
		r.log.Info().Int("attempt_id", attemptID).Msg("remembered attempt already ended")
		return true, nil
	}
	r.log.Info().Int("attempt_id", attemptID).Msg("resuming attempt")
	return true, r.enter(ctx, token, attemptID)
}

// enter fetches the question list and moves to the first unanswered question,
// or straight to completion when every question already has an answer.
func (r *Runner) enter(ctx context.Context, token string, attemptID int) error {
	questions, err := r.gw.GetQuestions(ctx, token, attemptID, gateway.AllQuestions)
	if err != nil {
		return r.fail(err)
	}
	submitted := make([]bool, len(questions))
	first := -1
	for i, q := range questions {
		submitted[i] = q.IsAnswered
		if !q.IsAnswered && first < 0 {
			first = i
		}
	}

	r.mu.Lock()
	r.questions = questions
	r.submitted = submitted
	if first >= 0 {
		r.state = State{Phase: InProgress, AttemptID: attemptID, Index: first, Total: len(questions)}
		r.mu.Unlock()
		return nil
	}
	last := len(questions) - 1
	if last < 0 {
		last = 0
	}
	r.state = State{Phase: Completing, AttemptID: attemptID, Index: last, Total: len(questions)}
	r.mu.Unlock()
	return r.complete(ctx, attemptID, last)
}

// OnAnswer adapts Submit to the renderer callback.
func (r *Runner) OnAnswer(ctx context.Context) renderer.OnAnswer {
	return func(questionAnswerID int, a domain.UserAnswer) error {
		return r.submit(ctx, questionAnswerID, a)
	}
}

// RetryCompletion loads the result again after a completion failure. It is
// what Submit does once the attempt has been ended on the backend.
func (r *Runner) RetryCompletion(ctx context.Context) error {
	r.mu.Lock()
	switch r.state.Phase {
	case Submitting, Completing:
		r.mu.Unlock()
		return ErrBusy
	case InProgress:
	default:
		r.mu.Unlock()
		return ErrNotInProgress
	}
	if !r.ended {
		r.mu.Unlock()
		return errors.New("runner: attempt has not been ended yet")
	}
	attemptID, idx := r.state.AttemptID, r.state.Index
	r.state.Phase = Completing
	r.mu.Unlock()
	return r.complete(ctx, attemptID, idx)
}

// Submit sends the answer for the current question.
func (r *Runner) Submit(ctx context.Context, a domain.UserAnswer) error {
	return r.submit(ctx, 0, a)
}

func (r *Runner) submit(ctx context.Context, questionAnswerID int, a domain.UserAnswer) error {
	if a == nil {
		return errors.New("runner: nil answer")
	}
	r.mu.Lock()
	switch r.state.Phase {
	case Submitting, Completing:
		r.mu.Unlock()
		return ErrBusy
	case InProgress:
	default:
		r.mu.Unlock()
		return ErrNotInProgress
	}
	idx := r.state.Index
	if r.ended {
		// The backend no longer accepts answers; every answer is already
		// recorded, so only completion is left to retry.
		attemptID := r.state.AttemptID
		r.state.Phase = Completing
		r.mu.Unlock()
		return r.complete(ctx, attemptID, idx)
	}
	q := r.questions[idx]
	if questionAnswerID != 0 && questionAnswerID != q.ID {
		r.mu.Unlock()
		return ErrQuestionMoved
	}
	if a.Kind() != q.Question.QuestionType {
		r.mu.Unlock()
		return fmt.Errorf("runner: %s answer for a %s question", a.Kind(), q.Question.QuestionType)
	}
	attemptID := r.state.AttemptID
	token := r.token
	r.state.Phase = Submitting
	r.mu.Unlock()

	if err := r.gw.SubmitAnswer(ctx, token, q.ID, a); err != nil {
		r.log.Error().Err(err).Int("attempt_id", attemptID).Int("question_answer_id", q.ID).Msg("submit failed")
		r.mu.Lock()
		r.state.Phase = InProgress
		r.mu.Unlock()
		return err
	}

	r.mu.Lock()
	r.questions[idx].UserAnswer = a
	r.questions[idx].IsAnswered = true
	r.submitted[idx] = true
	next := r.nextUnsubmitted(idx)
	if next >= 0 {
		r.state.Phase = InProgress
		r.state.Index = next
		r.mu.Unlock()
		return nil
	}
	r.state.Phase = Completing
	r.mu.Unlock()
	return r.complete(ctx, attemptID, idx)
}

// nextUnsubmitted looks forward from idx, wrapping around; -1 when every
// question has been submitted. Caller holds mu.
func (r *Runner) nextUnsubmitted(idx int) int {
	n := len(r.submitted)
	for step := 1; step <= n; step++ {
		i := (idx + step) % n
		if !r.submitted[i] {
			return i
		}
	}
	return -1
}

// complete ends the attempt and loads its result. On failure the runner goes
// back to the last question so that submitting again retries completion.
func (r *Runner) complete(ctx context.Context, attemptID, lastIndex int) error {
	r.mu.Lock()
	token := r.token
	ended := r.ended
	summary := r.summary
	r.mu.Unlock()

	if !ended {
		var err error
		summary, err = r.gw.EndTest(ctx, token, attemptID)
		if err != nil {
			return r.revert(attemptID, lastIndex, fmt.Errorf("end attempt: %w", err))
		}
		r.mu.Lock()
		r.ended = true
		r.summary = summary
		r.mu.Unlock()
	}
	res, err := r.gw.GetResult(ctx, token, attemptID)
	if err != nil {
		return r.revert(attemptID, lastIndex, fmt.Errorf("load result: %w", err))
	}
	if err := r.resume.Forget(ctx, r.testID); err != nil {
		r.log.Warn().Err(err).Msg("could not clear resumption key")
	}

	r.mu.Lock()
	r.state = State{
		Phase:     Completed,
		AttemptID: attemptID,
		Index:     lastIndex,
		Total:     len(r.questions),
		Result:    res,
		Summary:   &summary,
	}
	r.mu.Unlock()
	r.log.Info().Int("attempt_id", attemptID).Int("correct", res.CorrectCount).Int("total", res.TotalQuestions).Msg("attempt completed")
	return nil
}

func (r *Runner) revert(attemptID, idx int, err error) error {
	r.log.Error().Err(err).Int("attempt_id", attemptID).Msg("completion failed")
	r.mu.Lock()
	if len(r.questions) == 0 {
		r.state = State{Phase: Failed, AttemptID: attemptID, Err: err}
	} else {
		r.state.Phase = InProgress
		r.state.Index = idx
		if !r.ended {
			r.submitted[idx] = false
		}
	}
	r.mu.Unlock()
	return err
}

// Back moves to the previous question while in progress.
func (r *Runner) Back() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Phase != InProgress {
		return ErrNotInProgress
	}
	if r.state.Index == 0 {
		return errors.New("runner: already at the first question")
	}
	r.state.Index--
	return nil
}

func (r *Runner) fail(err error) error {
	r.log.Error().Err(err).Msg("attempt failed")
	r.mu.Lock()
	r.state = State{Phase: Failed, AttemptID: r.state.AttemptID, Err: err}
	r.mu.Unlock()
	return err
}
