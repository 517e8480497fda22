package controller

import (
	"errors"
	"strconv"

	"github.com/avash81/mindmeter-iq-app/internal/service"
	"github.com/avash81/mindmeter-iq-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary Create a bank question
// @Tags question-bank
// @Accept json
// @Produce json
// @Param body body service.QuestionRequest true "question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Create(req)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary List bank questions
// @Tags question-bank
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response
// @Router /api/admin/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	qs, total, err := c.Service.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"list":  qs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// @Summary Get a bank question
// @Tags question-bank
// @Produce json
// @Param id path int true "question id"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	q, err := c.Service.Get(uint(id))
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Update a bank question
// @Tags question-bank
// @Accept json
// @Produce json
// @Param id path int true "question id"
// @Param body body service.QuestionRequest true "question"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Update(uint(id), req)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Delete a bank question
// @Tags question-bank
// @Produce json
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

func (c *QuestionController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidQuestion), errors.Is(err, util.ErrInvalidConfig):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx, util.ErrQuestionNotFound.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
