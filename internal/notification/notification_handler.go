package notification

import (
	"net/http"

	"github.com/mathewsajan/truplace/internal/shared/apperror"
	"github.com/mathewsajan/truplace/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetByToken(c *gin.Context) {
	resp, err := h.service.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("notification request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
