package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lshigami/edugress/internal/dto"
)

// Progress dashboard endpoints.

func (c *Client) ListExams(ctx context.Context, token string) ([]dto.ExamDTO, error) {
	var out []dto.ExamDTO
	err := c.do(ctx, request{op: "list exams", method: http.MethodGet, path: "/edugress/exams/", token: token, out: &out})
	return out, err
}

func (c *Client) GetStudentProgress(ctx context.Context, token string, examID int) (dto.StudentProgressDTO, error) {
	var out dto.StudentProgressDTO
	err := c.do(ctx, request{
		op:     "get student progress",
		method: http.MethodGet,
		path:   fmt.Sprintf("/edugress/exams/%d/main/student/", examID),
		token:  token,
		out:    &out,
	})
	return out, err
}

func (c *Client) GetRoadmap(ctx context.Context, token string) (dto.RoadmapDTO, error) {
	var out dto.RoadmapDTO
	err := c.do(ctx, request{op: "get roadmap", method: http.MethodGet, path: "/edugress/roadmap/", token: token, out: &out})
	return out, err
}
