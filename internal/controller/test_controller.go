package controller

import (
	"errors"

	"github.com/avash81/mindmeter-iq-app/internal/service"
	"github.com/avash81/mindmeter-iq-app/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	Service *service.SessionService
}

func NewTestController(svc *service.SessionService) *TestController {
	return &TestController{Service: svc}
}

type submitAnswerRequest struct {
	QuestionID       uint `json:"questionId" binding:"required"`
	SelectedIndex    *int `json:"selectedIndex" binding:"required"`
	TimeTakenSeconds int  `json:"timeTakenSeconds"`
}

// @Summary Start a test session
// @Tags test
// @Accept json
// @Produce json
// @Param body body service.StartTestRequest true "session configuration"
// @Success 201 {object} util.Response{data=service.StartTestResponse}
// @Failure 400 {object} util.Response
// @Router /api/test/start [post]
func (c *TestController) Start(ctx *gin.Context) {
	var req service.StartTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Start(ctx.Request.Context(), req)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// @Summary Get the current question
// @Tags test
// @Produce json
// @Param sessionId path string true "session id"
// @Success 200 {object} util.Response{data=service.QuestionView}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/test/{sessionId}/question [get]
func (c *TestController) CurrentQuestion(ctx *gin.Context) {
	view, err := c.Service.CurrentQuestion(ctx.Request.Context(), ctx.Param("sessionId"))
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary Submit an answer
// @Description selectedIndex -1 records a timeout / no answer.
// @Tags test
// @Accept json
// @Produce json
// @Param sessionId path string true "session id"
// @Param body body submitAnswerRequest true "answer"
// @Success 200 {object} util.Response{data=service.SubmitAnswerResponse}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/test/{sessionId}/answer [post]
func (c *TestController) SubmitAnswer(ctx *gin.Context) {
	var req submitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if *req.SelectedIndex < -1 {
		util.BadRequest(ctx, "selectedIndex must be -1 or a valid option index")
		return
	}

	resp, err := c.Service.SubmitAnswer(
		ctx.Request.Context(),
		ctx.Param("sessionId"),
		req.QuestionID,
		*req.SelectedIndex,
		req.TimeTakenSeconds,
	)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary Fetch the result of a completed session
// @Tags test
// @Produce json
// @Param sessionId path string true "session id"
// @Success 200 {object} util.Response{data=model.TestResult}
// @Failure 404 {object} util.Response
// @Router /api/test/{sessionId}/result [get]
func (c *TestController) Result(ctx *gin.Context) {
	res, err := c.Service.Result(ctx.Request.Context(), ctx.Param("sessionId"))
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	util.Success(ctx, res)
}

func (c *TestController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidConfig),
		errors.Is(err, util.ErrInvalidAge),
		errors.Is(err, util.ErrInsufficientQuestions):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrResultNotFound),
		errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrSessionCompleted),
		errors.Is(err, util.ErrQuestionMismatch),
		errors.Is(err, util.ErrDuplicateResult):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
