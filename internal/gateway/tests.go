package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/shopspring/decimal"
)

// questionPageLimit is large enough that an attempt's questions always fit
// in one page.
const questionPageLimit = 1000

// AnsweredFilter selects which rows of an attempt's question list to return.
type AnsweredFilter int

const (
	AllQuestions AnsweredFilter = iota
	AnsweredOnly
	UnansweredOnly
)

func (f AnsweredFilter) queryValue() string {
	switch f {
	case AnsweredOnly:
		return "true"
	case UnansweredOnly:
		return "false"
	default:
		return "null"
	}
}

// ListTests returns the tests available to the user.
func (c *Client) ListTests(ctx context.Context, token string) ([]dto.TestSummaryDTO, error) {
	var out []dto.TestSummaryDTO
	err := c.do(ctx, request{op: "list tests", method: http.MethodGet, path: "/courses/tests/", token: token, out: &out})
	return out, err
}

// StartTest opens a new attempt and returns its id.
func (c *Client) StartTest(ctx context.Context, token string, testID int) (int, error) {
	const op = "start test"
	var out dto.StartTestResponse
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   "/courses/tests/start/",
		token:  token,
		body:   dto.StartTestRequest{TestID: testID},
		out:    &out,
	})
	if err != nil {
		return 0, err
	}
	if out.UserTestID <= 0 {
		return 0, malformed(op, "missing user_test_id")
	}
	return out.UserTestID, nil
}

// GetQuestions returns the attempt's question list ordered by question order.
func (c *Client) GetQuestions(ctx context.Context, token string, attemptID int, filter AnsweredFilter) ([]domain.AttemptQuestion, error) {
	const op = "get questions"
	q := url.Values{}
	q.Set("user_test_id", strconv.Itoa(attemptID))
	q.Set("is_answered", filter.queryValue())
	q.Set("limit", strconv.Itoa(questionPageLimit))

	var page dto.QuestionPageDTO
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		path:   "/courses/tests/user/answer/",
		query:  q,
		token:  token,
		out:    &page,
	})
	if err != nil {
		return nil, err
	}
	questions, err := dto.ToAttemptQuestions(page.Results)
	if err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	return questions, nil
}

// SubmitAnswer records the answer for one question-answer row. Resubmitting
// overwrites the previous answer on the backend.
func (c *Client) SubmitAnswer(ctx context.Context, token string, questionAnswerID int, answer domain.UserAnswer) error {
	const op = "submit answer"
	payload, err := dto.EncodeUserAnswer(answer)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.do(ctx, request{
		op:     op,
		method: http.MethodPatch,
		path:   "/courses/tests/answer/",
		token:  token,
		body:   dto.SubmitAnswerRequest{QuestionAnswerID: questionAnswerID, UserAnswer: payload},
	})
}

func (c *Client) EndTest(ctx context.Context, token string, attemptID int) (domain.EndSummary, error) {
	var out dto.EndTestResponse
	err := c.do(ctx, request{
		op:     "end test",
		method: http.MethodPost,
		path:   "/courses/tests/end/",
		token:  token,
		body:   dto.EndTestRequest{UserTestID: attemptID},
		out:    &out,
	})
	if err != nil {
		return domain.EndSummary{}, err
	}
	return out.ToDomain(), nil
}

func (c *Client) GetResult(ctx context.Context, token string, attemptID int) (*domain.TestResult, error) {
	const op = "get result"
	var out dto.TestResultDTO
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		path:   fmt.Sprintf("/courses/tests/results/%d/", attemptID),
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, malformed(op, "missing id")
	}
	res, err := out.ToDomain()
	if err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	return res, nil
}

// OverrideScore sets the score of one answered question. Only curators and
// admins are allowed to do this; the backend enforces it.
func (c *Client) OverrideScore(ctx context.Context, token string, questionAnswerID int, score decimal.Decimal) error {
	if score.IsNegative() {
		return errors.New("override score: negative score")
	}
	return c.do(ctx, request{
		op:     "override score",
		method: http.MethodPatch,
		path:   fmt.Sprintf("/courses/tests/answer/%d/score", questionAnswerID),
		token:  token,
		body:   dto.ScoreOverrideRequest{ScoreForAnswer: score},
	})
}
