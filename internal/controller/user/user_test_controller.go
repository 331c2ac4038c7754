package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/edugress/internal/controller"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/service"
	"github.com/rs/zerolog/log"
)

const maxPageSize = 1000

type UserTestController struct {
	testService           service.TestService
	userTestService       service.UserTestService
	testSubmissionService service.TestSubmissionService
}

func NewUserTestController(ts service.TestService, uts service.UserTestService, tss service.TestSubmissionService) *UserTestController {
	return &UserTestController{
		testService:           ts,
		userTestService:       uts,
		testSubmissionService: tss,
	}
}

// GetAllTests godoc
// @Summary List tests
// @Tags Tests
// @Produce json
// @Security TokenAuth
// @Success 200 {array} dto.TestSummaryDTO
// @Router /courses/tests/ [get]
func (c *UserTestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.testService.GetAllTests()
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// StartTest godoc
// @Summary Start an attempt
// @Description Creates an attempt with one answer row per question, or returns the caller's unfinished attempt at the same test.
// @Tags Tests
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.StartTestRequest true "Test to start"
// @Success 201 {object} dto.StartTestResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /courses/tests/start/ [post]
func (c *UserTestController) StartTest(ctx *gin.Context) {
	var req dto.StartTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.userTestService.StartTest(controller.CurrentUser(ctx), uint(req.TestID))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetQuestions godoc
// @Summary List an attempt's questions
// @Tags Tests
// @Produce json
// @Security TokenAuth
// @Param user_test_id query int true "Attempt ID"
// @Param is_answered query string false "true, false or null"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.QuestionPageDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /courses/tests/user/answer/ [get]
func (c *UserTestController) GetQuestions(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "user_test_id")
	if !ok {
		return
	}
	var answered *bool
	switch ctx.Query("is_answered") {
	case "true":
		v := true
		answered = &v
	case "false":
		v := false
		answered = &v
	case "", "null":
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "is_answered must be true, false or null"})
		return
	}
	limit := maxPageSize
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "Invalid limit"})
			return
		}
		limit = min(n, maxPageSize)
	}

	page, err := c.userTestService.GetQuestions(controller.CurrentUser(ctx), id, answered, limit)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// SubmitAnswer godoc
// @Summary Submit one answer
// @Description Overwrites the answer to one question of an unfinished attempt and grades it.
// @Tags Tests
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.QuestionAnswerDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed answer or attempt ended"
// @Router /courses/tests/answer/ [patch]
func (c *UserTestController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	user := controller.CurrentUser(ctx)
	row, err := c.testSubmissionService.SubmitAnswer(ctx.Request.Context(), user, uint(req.QuestionAnswerID), req.UserAnswer)
	if err != nil {
		log.Warn().Err(err).Uint("userID", user.ID).Int("questionAnswerID", req.QuestionAnswerID).Msg("SubmitAnswer rejected")
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, row)
}

// EndTest godoc
// @Summary End an attempt
// @Tags Tests
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.EndTestRequest true "Attempt to end"
// @Success 200 {object} dto.EndTestResponse
// @Router /courses/tests/end/ [post]
func (c *UserTestController) EndTest(ctx *gin.Context) {
	var req dto.EndTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	summary, err := c.userTestService.EndTest(controller.CurrentUser(ctx), uint(req.UserTestID))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// GetResult godoc
// @Summary Attempt result
// @Description Returns the attempt with every answer. Correct answers are included once the attempt has ended.
// @Tags Tests
// @Produce json
// @Security TokenAuth
// @Param id path int true "Attempt ID"
// @Success 200 {object} dto.TestResultDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /courses/tests/results/{id}/ [get]
func (c *UserTestController) GetResult(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.userTestService.GetResult(controller.CurrentUser(ctx), id)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}
