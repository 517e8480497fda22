package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avash81/mindmeter-iq-app/internal/service"
	"github.com/avash81/mindmeter-iq-app/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	Service *service.CertificateService
}

func NewCertificateController(svc *service.CertificateService) *CertificateController {
	return &CertificateController{Service: svc}
}

// @Summary Download an achievement certificate
// @Tags certificate
// @Accept json
// @Produce application/pdf
// @Param body body service.CertificateRequest true "session id and holder name"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/certificate/download [post]
func (c *CertificateController) Download(ctx *gin.Context) {
	var req service.CertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	data, filename, err := c.Service.Render(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	ctx.Data(http.StatusOK, "application/pdf", data)
}
