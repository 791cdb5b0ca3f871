// Package request exposes the booking-request surface: the rate-limited
// public submission endpoint and the admin confirm/reject operations.
package request

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beautybox/salon-api/internal/handler"
	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/service/booking"
	"github.com/beautybox/salon-api/internal/service/notification"
)

type Handler struct {
	booking  *booking.Service
	notifier *notification.Service
}

func NewHandler(bookingSvc *booking.Service, notifier *notification.Service) *Handler {
	return &Handler{booking: bookingSvc, notifier: notifier}
}

// RegisterPublicRoutes mounts the unauthenticated booking form endpoint; the
// caller wraps the group with the rate limiter.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/booking-requests", h.SubmitRequest)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.GET("", h.ListRequests)
		requests.GET("/:id", h.GetRequest)
		requests.POST("/:id/confirm", h.ConfirmRequest)
		requests.POST("/:id/reject", h.RejectRequest)
	}
}

func (h *Handler) SubmitRequest(c *gin.Context) {
	var req model.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.booking.Submit(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

// ListRequests filters by ?status=pendiente|confirmada|rechazada; no status
// returns everything, newest first.
func (h *Handler) ListRequests(c *gin.Context) {
	status := model.RequestStatus(c.Query("status"))
	requests, err := h.booking.List(c.Request.Context(), status)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(requests))
}

func (h *Handler) GetRequest(c *gin.Context) {
	id, ok := handler.IDParam(c)
	if !ok {
		return
	}
	req, err := h.booking.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(req))
}

// ConfirmRequest runs the reconciliation workflow and returns the
// confirmation payload together with the prefilled WhatsApp link the admin
// sends to the client.
func (h *Handler) ConfirmRequest(c *gin.Context) {
	id, ok := handler.IDParam(c)
	if !ok {
		return
	}
	// The comment body is optional.
	var body model.RespondRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
	}

	conf, err := h.booking.Confirm(c.Request.Context(), id, body.Comment)
	if err != nil {
		handler.Error(c, err)
		return
	}

	message := h.notifier.ConfirmationMessage(conf)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"confirmation":  conf,
		"whatsapp_link": notification.WhatsAppLink(conf.ClientPhone, message),
	}))
}

func (h *Handler) RejectRequest(c *gin.Context) {
	id, ok := handler.IDParam(c)
	if !ok {
		return
	}
	var body model.RespondRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
	}

	rej, err := h.booking.Reject(c.Request.Context(), id, body.Comment)
	if err != nil {
		handler.Error(c, err)
		return
	}

	message := h.notifier.RejectionMessage(rej)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"rejection":     rej,
		"whatsapp_link": notification.WhatsAppLink(rej.Phone, message),
	}))
}
