package request_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmentHandler "github.com/beautybox/salon-api/internal/handler/appointment"
	catalogHandler "github.com/beautybox/salon-api/internal/handler/catalog"
	clientHandler "github.com/beautybox/salon-api/internal/handler/client"
	"github.com/beautybox/salon-api/internal/handler/dashboard"
	expenseHandler "github.com/beautybox/salon-api/internal/handler/expense"
	"github.com/beautybox/salon-api/internal/handler/health"
	requestHandler "github.com/beautybox/salon-api/internal/handler/request"
	"github.com/beautybox/salon-api/internal/middleware"
	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/repository/sheet"
	"github.com/beautybox/salon-api/internal/router"
	appointmentService "github.com/beautybox/salon-api/internal/service/appointment"
	bookingService "github.com/beautybox/salon-api/internal/service/booking"
	catalogService "github.com/beautybox/salon-api/internal/service/catalog"
	clientService "github.com/beautybox/salon-api/internal/service/client"
	expenseService "github.com/beautybox/salon-api/internal/service/expense"
	metricsService "github.com/beautybox/salon-api/internal/service/metrics"
	notificationService "github.com/beautybox/salon-api/internal/service/notification"
	"github.com/beautybox/salon-api/internal/sheetstore"
	"github.com/beautybox/salon-api/pkg/logger"
)

func newTestServer(t *testing.T) (*gin.Engine, *sheet.Repositories) {
	t.Helper()
	store := sheetstore.NewMemoryStore()
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	repos := sheet.New(store, time.Minute, log, nil)

	bookingSvc := bookingService.NewService(
		repos.Request, repos.Client, repos.Service, repos.Appointment, nil, log, nil)
	notifier := notificationService.NewService("BeautyBox", notificationService.SMTPConfig{}, log)

	engine := router.New(router.Config{
		Mode:        gin.TestMode,
		CORS:        middleware.DefaultCORSConfig(),
		PublicRPS:   100,
		PublicBurst: 100,
	}, router.Handlers{
		Health:      health.NewHandler(),
		Catalog:     catalogHandler.NewHandler(catalogService.NewService(repos.Category, repos.Service)),
		Client:      clientHandler.NewHandler(clientService.NewService(repos.Client, repos.Appointment)),
		Appointment: appointmentHandler.NewHandler(appointmentService.NewService(repos.Appointment, repos.Service)),
		Expense:     expenseHandler.NewHandler(expenseService.NewService(repos.FixedExpense, repos.VariableExpense)),
		Request:     requestHandler.NewHandler(bookingSvc, notifier),
		Dashboard:   dashboard.NewHandler(metricsService.NewService(repos.Appointment, repos.FixedExpense, repos.VariableExpense)),
	})
	return engine, repos
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSubmitAndConfirmOverHTTP(t *testing.T) {
	engine, repos := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/services", map[string]interface{}{
		"name":             "Laminado de Cejas",
		"category_id":      2,
		"price":            30,
		"duration_minutes": 45,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/public/booking-requests", map[string]interface{}{
		"name":              "Lucía Torres",
		"phone":             "611222333",
		"requested_service": "Laminado de Cejas",
		"time_preference":   "2026-09-05 a las 16:30",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var submitResp struct {
		Status string               `json:"status"`
		Data   model.BookingRequest `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitResp))
	assert.Equal(t, "success", submitResp.Status)
	assert.Equal(t, model.RequestStatusPending, submitResp.Data.Status)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/requests/1/confirm", map[string]interface{}{
		"comment": "te esperamos",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var confirmResp struct {
		Data struct {
			Confirmation bookingService.Confirmation `json:"confirmation"`
			WhatsAppLink string                      `json:"whatsapp_link"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &confirmResp))
	assert.Equal(t, "2026-09-05", confirmResp.Data.Confirmation.Date)
	assert.Contains(t, confirmResp.Data.WhatsAppLink, "https://wa.me/611222333?text=")

	// Confirming twice conflicts.
	w = doJSON(t, engine, http.MethodPost, "/api/v1/requests/1/confirm", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	appointments, err := repos.Appointment.List(context.Background(), model.DateRange{})
	require.NoError(t, err)
	require.Len(t, appointments, 1)
}

func TestSubmitValidation(t *testing.T) {
	engine, _ := newTestServer(t)

	// Phone shorter than the form floor.
	w := doJSON(t, engine, http.MethodPost, "/api/v1/public/booking-requests", map[string]interface{}{
		"name":              "Lucía",
		"phone":             "12345",
		"requested_service": "Manicura",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/public/booking-requests", map[string]interface{}{
		"phone":             "611222333",
		"requested_service": "Manicura",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRejectOverHTTP(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/public/booking-requests", map[string]interface{}{
		"name":              "Sara",
		"phone":             "611222334",
		"requested_service": "Cejas",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/requests/1/reject", map[string]interface{}{
		"comment": "sin hueco",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/requests?status=rechazada", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data []model.BookingRequest `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Data, 1)
	assert.Equal(t, "sin hueco", listResp.Data[0].AdminNotes)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/requests?status=cancelada", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownRequestIs404(t *testing.T) {
	engine, _ := newTestServer(t)
	w := doJSON(t, engine, http.MethodPost, "/api/v1/requests/99/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
