package controller

import (
	"github.com/avash81/mindmeter-iq-app/internal/service"
	"github.com/avash81/mindmeter-iq-app/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Service *service.StatsService
}

func NewStatsController(svc *service.StatsService) *StatsController {
	return &StatsController{Service: svc}
}

// @Summary Platform statistics
// @Description Running aggregates over all completed tests. Returns zeros
// @Description before any test has been completed.
// @Tags stats
// @Produce json
// @Success 200 {object} util.Response{data=model.StatsSnapshot}
// @Router /api/stats [get]
func (c *StatsController) Snapshot(ctx *gin.Context) {
	util.Success(ctx, c.Service.Snapshot(ctx.Request.Context()))
}
