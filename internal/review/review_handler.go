package review

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("review.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("review request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Submit(c *gin.Context) {
	userID := c.GetString("user_id")
	userEmail := c.GetString("user_email")

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), userID, userEmail, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListByCompany(c *gin.Context) {
	filters := ListFilters{
		Recommendation: c.Query("recommendation"),
		SortBy:         c.DefaultQuery("sort", SortRecent),
	}
	filters.MinRating, _ = strconv.Atoi(c.Query("rating"))
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	filters.Offset, _ = strconv.Atoi(c.Query("offset"))

	resp, total, err := h.service.ListByCompany(c.Request.Context(), c.Param("id"), filters)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page := 1
	if filters.Limit > 0 {
		page = filters.Offset/filters.Limit + 1
	}
	meta := response.NewPaginationMeta(total, page, filters.Limit)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) MarkHelpful(c *gin.Context) {
	if err := h.service.MarkHelpful(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
