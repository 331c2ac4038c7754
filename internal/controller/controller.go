// Package controller holds what the user and admin controllers share:
// session-key authentication and the mapping of service errors onto HTTP
// responses.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/model"
	"github.com/lshigami/edugress/internal/service"
	"github.com/rs/zerolog/log"
)

const userKey = "edugress.user"

// AuthScheme is the Authorization header prefix clients send.
const AuthScheme = "Token"

// RequireUser rejects requests without a valid session key and stores the
// user in the gin context.
func RequireUser(auth service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, AuthScheme) && !strings.EqualFold(scheme, "Bearer") || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: "Authentication credentials were not provided."})
			return
		}
		user, err := auth.Authenticate(strings.TrimSpace(token))
		if err != nil {
			log.Info().Err(err).Str("path", ctx.FullPath()).Msg("Rejected session key")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: "Invalid token."})
			return
		}
		ctx.Set(userKey, user)
		ctx.Next()
	}
}

// RequireGrader lets only curators and admins through. It must run after
// RequireUser.
func RequireGrader() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !CurrentUser(ctx).CanGrade() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Detail: service.ErrForbidden.Error()})
			return
		}
		ctx.Next()
	}
}

func CurrentUser(ctx *gin.Context) *model.User {
	if v, ok := ctx.Get(userKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return &model.User{}
}

// ParseID reads a positive integer from a path parameter or, failing that,
// a query parameter of the same name.
func ParseID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	if raw == "" {
		raw = ctx.Query(name)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// BindError answers a request whose body failed to bind.
func BindError(ctx *gin.Context, err error) {
	log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind JSON")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "Invalid request body", Details: []string{err.Error()}})
}

// Fail writes err with the status its kind calls for.
func Fail(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	}
	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Request failed")
		detail = "Internal server error"
	}
	ctx.JSON(status, dto.ErrorResponse{Detail: detail})
}
