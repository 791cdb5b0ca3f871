package expense

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beautybox/salon-api/internal/handler"
	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/service/expense"
)

type Handler struct {
	service *expense.Service
}

func NewHandler(service *expense.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	expenses := r.Group("/expenses")
	{
		expenses.GET("/fixed", h.ListFixed)
		expenses.POST("/fixed", h.CreateFixed)
		expenses.DELETE("/fixed/:id", h.DeactivateFixed)
		expenses.GET("/variable", h.ListVariable)
		expenses.POST("/variable", h.CreateVariable)
		expenses.DELETE("/variable/:id", h.DeleteVariable)
	}
}

func (h *Handler) ListFixed(c *gin.Context) {
	expenses, err := h.service.ListFixed(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(expenses))
}

func (h *Handler) CreateFixed(c *gin.Context) {
	var req model.CreateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	exp, err := h.service.CreateFixed(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(exp))
}

func (h *Handler) DeactivateFixed(c *gin.Context) {
	id, ok := handler.IDParam(c)
	if !ok {
		return
	}
	if err := h.service.DeactivateFixed(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id, "active": false}))
}

func (h *Handler) ListVariable(c *gin.Context) {
	var rng model.DateRange
	if err := c.ShouldBindQuery(&rng); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	expenses, err := h.service.ListVariable(c.Request.Context(), rng)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(expenses))
}

func (h *Handler) CreateVariable(c *gin.Context) {
	var req model.CreateVariableExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	exp, err := h.service.CreateVariable(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(exp))
}

func (h *Handler) DeleteVariable(c *gin.Context) {
	id, ok := handler.IDParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteVariable(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id, "deleted": true}))
}
