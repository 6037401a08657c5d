package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/hmngo/Coursea/internal/apperr"
	"github.com/hmngo/Coursea/internal/dto"
)

// RespondError translates a service error into the API error shape. Client
// errors carry the service's message; internal errors are replaced with the
// fallback so raw database text never reaches the caller.
func RespondError(ctx *gin.Context, err error, fallback string) {
	status := apperr.HTTPStatus(err)
	if apperr.IsClient(err) {
		ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(status, dto.ErrorResponse{Message: fallback})
}
