package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/edugress/internal/model"
	"github.com/lshigami/edugress/internal/service"
	"github.com/stretchr/testify/assert"
)

type stubAuth struct {
	service.AuthService
	users map[string]*model.User
}

func (s stubAuth) Authenticate(token string) (*model.User, error) {
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, service.ErrInvalidToken
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := stubAuth{users: map[string]*model.User{
		"student": {ID: 1, Role: model.RoleStudent},
		"curator": {ID: 2, Role: model.RoleCurator},
	}}
	r := gin.New()
	api := r.Group("/", RequireUser(auth))
	api.GET("/me", func(ctx *gin.Context) { ctx.String(http.StatusOK, "%d", CurrentUser(ctx).ID) })
	api.GET("/grade", RequireGrader(), func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
	return r
}

func get(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireUser(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Basic student").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Token nobody").Code)

	w := get(r, "/me", "Token student")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Body.String())

	assert.Equal(t, http.StatusOK, get(r, "/me", "Bearer curator").Code)
}

func TestRequireGrader(t *testing.T) {
	r := newRouter()
	assert.Equal(t, http.StatusForbidden, get(r, "/grade", "Token student").Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/grade", "Token curator").Code)
}

func TestFail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: attempt 3", service.ErrNotFound), http.StatusNotFound},
		{service.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("%w: score too high", service.ErrInvalidInput), http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusBadRequest},
		{service.ErrInvalidToken, http.StatusUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		Fail(ctx, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Fail(ctx, errors.New("connection string with password"))
	assert.JSONEq(t, `{"detail":"Internal server error"}`, w.Body.String())
}
