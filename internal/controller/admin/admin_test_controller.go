package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/edugress/internal/controller"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/service"
	"github.com/rs/zerolog/log"
)

// AdminTestController serves curator and admin endpoints. Routes are
// expected behind controller.RequireGrader.
type AdminTestController struct {
	adminTestService      service.AdminTestService
	testSubmissionService service.TestSubmissionService
	storeService          service.StoreService
}

func NewAdminTestController(ats service.AdminTestService, tss service.TestSubmissionService, ss service.StoreService) *AdminTestController {
	return &AdminTestController{adminTestService: ats, testSubmissionService: tss, storeService: ss}
}

// CreateTest godoc
// @Summary (Admin) Create a test
// @Description Creates a test with its questions. Options and answers use the same JSON shapes the question list returns.
// @Tags Admin
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param test_data body dto.CreateTestRequest true "Test and questions"
// @Success 201 {object} dto.TestDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid question"
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	test, err := c.adminTestService.CreateTest(req)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Admin CreateTest: Service error")
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, test)
}

// GetTest godoc
// @Summary (Admin) Test with answer keys
// @Tags Admin
// @Produce json
// @Security TokenAuth
// @Param id path int true "Test ID"
// @Success 200 {object} dto.TestDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{id} [get]
func (c *AdminTestController) GetTest(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	test, err := c.adminTestService.GetTest(id)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// OverrideScore godoc
// @Summary (Curator) Set the score of an answer
// @Tags Admin
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Question answer ID"
// @Param body body dto.ScoreOverrideRequest true "New score"
// @Success 200 {object} dto.QuestionAnswerDTO
// @Failure 400 {object} dto.ErrorResponse "Score out of range"
// @Failure 403 {object} dto.ErrorResponse
// @Router /courses/tests/answer/{id}/score [patch]
func (c *AdminTestController) OverrideScore(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ScoreOverrideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	row, err := c.testSubmissionService.OverrideScore(controller.CurrentUser(ctx), id, req.ScoreForAnswer)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, row)
}

// CreateStoreProduct godoc
// @Summary (Admin) Add a store product
// @Tags Admin
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.CreateStoreProductRequest true "Product"
// @Success 201 {object} dto.StoreProductDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/store/products [post]
func (c *AdminTestController) CreateStoreProduct(ctx *gin.Context) {
	var req dto.CreateStoreProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	p, err := c.storeService.CreateProduct(req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, p)
}
