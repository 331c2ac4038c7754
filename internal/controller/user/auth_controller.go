package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/edugress/internal/controller"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary Sign in
// @Description Exchanges a username and password for a session key.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Username and password"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Wrong credentials"
// @Router /login/ [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.authService.Login(req.Username, req.Password)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security TokenAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} dto.ErrorResponse
// @Router /user/ [get]
func (c *AuthController) Me(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.authService.Profile(controller.CurrentUser(ctx)).User)
}
