package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lshigami/edugress/internal/dto"
)

func (c *Client) ListMyCourses(ctx context.Context, token string) ([]dto.CourseDTO, error) {
	var out []dto.CourseDTO
	err := c.do(ctx, request{op: "list my courses", method: http.MethodGet, path: "/courses/user/", token: token, out: &out})
	return out, err
}

func (c *Client) ListCourses(ctx context.Context, token string) ([]dto.CourseDTO, error) {
	var out []dto.CourseDTO
	err := c.do(ctx, request{op: "list courses", method: http.MethodGet, path: "/courses", token: token, out: &out})
	return out, err
}

func (c *Client) GetCourse(ctx context.Context, token string, courseID int) (dto.CourseDTO, error) {
	var out dto.CourseDTO
	err := c.do(ctx, request{
		op:     "get course",
		method: http.MethodGet,
		path:   fmt.Sprintf("/courses/%d", courseID),
		token:  token,
		out:    &out,
	})
	return out, err
}

func (c *Client) StartLessonContent(ctx context.Context, token string, contentID int) error {
	return c.do(ctx, request{
		op:     "start lesson content",
		method: http.MethodPost,
		path:   "/courses/lessons/content/start/",
		token:  token,
		body:   dto.LessonContentRequest{LessonContentID: contentID},
	})
}

func (c *Client) EndLessonContent(ctx context.Context, token string, contentID int) error {
	return c.do(ctx, request{
		op:     "end lesson content",
		method: http.MethodPost,
		path:   "/courses/lessons/content/end/",
		token:  token,
		body:   dto.LessonContentRequest{LessonContentID: contentID},
	})
}
