package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lshigami/edugress/internal/dto"
)

func (c *Client) BuyQuiz(ctx context.Context, token string, quizID int) error {
	return c.do(ctx, request{
		op:     "buy quiz",
		method: http.MethodPost,
		path:   "/main/quiz/buy/",
		token:  token,
		body:   dto.BuyQuizRequest{QuizID: quizID},
	})
}

func (c *Client) StartQuiz(ctx context.Context, token string, quizID int) (int, error) {
	const op = "start quiz"
	var out dto.StartQuizResponse
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   "/main/quiz/start/",
		token:  token,
		body:   dto.StartQuizRequest{QuizID: quizID},
		out:    &out,
	})
	if err != nil {
		return 0, err
	}
	if out.UserQuizID <= 0 {
		return 0, malformed(op, "missing user_quiz_id")
	}
	return out.UserQuizID, nil
}

func (c *Client) EndQuiz(ctx context.Context, token string, userQuizID int) error {
	return c.do(ctx, request{
		op:     "end quiz",
		method: http.MethodPost,
		path:   "/main/quiz/end/",
		token:  token,
		body:   dto.EndQuizRequest{UserQuizID: userQuizID},
	})
}

func (c *Client) ListMyQuizzes(ctx context.Context, token string) ([]dto.UserQuizDTO, error) {
	var out []dto.UserQuizDTO
	err := c.do(ctx, request{op: "list my quizzes", method: http.MethodGet, path: "/user/quizzes/", token: token, out: &out})
	return out, err
}

func (c *Client) GetQuizResult(ctx context.Context, token string, userQuizID int) (dto.QuizResultDTO, error) {
	var out dto.QuizResultDTO
	err := c.do(ctx, request{
		op:     "get quiz result",
		method: http.MethodGet,
		path:   fmt.Sprintf("/main/quiz/%d/result/", userQuizID),
		token:  token,
		out:    &out,
	})
	return out, err
}
