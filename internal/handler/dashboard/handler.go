package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beautybox/salon-api/internal/handler"
	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/service/metrics"
)

type Handler struct {
	service *metrics.Service
}

func NewHandler(service *metrics.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.GetDashboard)
}

// GetDashboard returns the period summary; with no ?start/?end the window is
// the current calendar month.
func (h *Handler) GetDashboard(c *gin.Context) {
	var rng model.DateRange
	if err := c.ShouldBindQuery(&rng); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	summary, err := h.service.ForPeriod(c.Request.Context(), rng)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(summary))
}
