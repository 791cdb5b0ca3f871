package client

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beautybox/salon-api/internal/handler"
	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/service/client"
)

type Handler struct {
	service *client.Service
}

func NewHandler(service *client.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clients := r.Group("/clients")
	{
		clients.GET("", h.ListClients)
		clients.GET("/:id", h.GetClient)
		clients.POST("", h.CreateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}
}

func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(clients))
}

func (h *Handler) GetClient(c *gin.Context) {
	id, ok := handler.IDParam(c)
	if !ok {
		return
	}
	cl, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(cl))
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req model.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	cl, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(cl))
}

// DeleteClient refuses with 409 while appointments still reference the
// client.
func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := handler.IDParam(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id, "deleted": true}))
}
