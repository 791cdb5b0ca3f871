package booking

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/repository/sheet"
	"github.com/beautybox/salon-api/internal/sheetstore"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
	"github.com/beautybox/salon-api/pkg/logger"
	"github.com/beautybox/salon-api/pkg/messaging"
)

type captureBroker struct {
	mu       sync.Mutex
	channels []string
	payloads []interface{}
}

func (b *captureBroker) Publish(_ context.Context, channel string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.channels = append(b.channels, channel)
	b.payloads = append(b.payloads, message)
	return nil
}

func (b *captureBroker) Subscribe(context.Context, string) (<-chan []byte, error) { return nil, nil }
func (b *captureBroker) Close() error                                             { return nil }

type fixture struct {
	svc    *Service
	repos  *sheet.Repositories
	broker *captureBroker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := sheetstore.NewMemoryStore()
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	repos := sheet.New(store, 5*time.Minute, log, nil)
	broker := &captureBroker{}
	svc := NewService(repos.Request, repos.Client, repos.Service, repos.Appointment, broker, log, nil)
	return &fixture{svc: svc, repos: repos, broker: broker}
}

func (f *fixture) submit(t *testing.T, requested, preference string) *model.BookingRequest {
	t.Helper()
	req, err := f.svc.Submit(context.Background(), &model.SubmitRequestRequest{
		Name:             "Lucía Torres",
		Phone:            "611 22 23 33",
		Email:            "lucia@example.com",
		RequestedService: requested,
		TimePreference:   preference,
	})
	require.NoError(t, err)
	return req
}

func (f *fixture) addService(t *testing.T, name string, price float64) int64 {
	t.Helper()
	id, err := f.repos.Service.Insert(context.Background(), &model.Service{
		Name: name, CategoryID: 2, Price: price, DurationMinutes: 60,
	})
	require.NoError(t, err)
	return id
}

func TestConfirmEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	svcID := f.addService(t, "Laminado de Cejas", 30)
	req := f.submit(t, "Laminado de Cejas", "2026-09-05 a las 16:30")

	conf, err := f.svc.Confirm(ctx, req.ID, "te esperamos")
	require.NoError(t, err)

	assert.Equal(t, ResolutionExact, conf.ServiceResolution)
	assert.True(t, conf.ScheduleParsed)
	assert.Equal(t, "2026-09-05", conf.Date)
	assert.Equal(t, "16:30", conf.Time)
	assert.Equal(t, svcID, conf.ServiceID)
	assert.True(t, conf.ClientCreated)

	// The appointment carries the resolved price, the web origin and the
	// pending-payment sentinel.
	appt, err := f.repos.Appointment.Get(ctx, conf.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, appt.PriceCharged)
	assert.Equal(t, 0.0, appt.Tip)
	assert.Equal(t, "Web", appt.OriginChannel)
	assert.Equal(t, model.PaymentPending, appt.PaymentMethod)
	assert.Contains(t, appt.Notes, "te esperamos")

	// Request is terminal.
	got, err := f.repos.Request.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusConfirmed, got.Status)
	assert.NotEmpty(t, got.RespondedAt)

	require.Len(t, f.broker.channels, 1)
	assert.Equal(t, "booking.confirmed", f.broker.channels[0])
	msg, ok := f.broker.payloads[0].(messaging.Message)
	require.True(t, ok)
	assert.Equal(t, "booking.confirmed", msg.Type)
	assert.Equal(t, conf, msg.Payload)
}

func TestConfirmReusesExistingClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addService(t, "Manicura", 20)
	existing, err := f.repos.Client.Insert(ctx, &model.Client{
		Name: "Lucía Torres", Phone: "611222333",
	})
	require.NoError(t, err)

	// The form phone carries spaces; dedup must still hit.
	req := f.submit(t, "Manicura", "")
	conf, err := f.svc.Confirm(ctx, req.ID, "")
	require.NoError(t, err)

	assert.Equal(t, existing, conf.ClientID)
	assert.False(t, conf.ClientCreated)

	clients, err := f.repos.Client.List(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestConfirmExactBeatsToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addService(t, "Cejas con henna", 25)
	exact := f.addService(t, "Laminado de Cejas", 30)
	req := f.submit(t, "laminado de cejas", "")

	conf, err := f.svc.Confirm(ctx, req.ID, "")
	require.NoError(t, err)
	assert.Equal(t, exact, conf.ServiceID)
	assert.Equal(t, ResolutionExact, conf.ServiceResolution)
}

func TestConfirmTokenFallbackWhenNoExact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	laminado := f.addService(t, "Laminado de Cejas", 30)
	req := f.submit(t, "Laminado de Cejas especial", "")

	conf, err := f.svc.Confirm(ctx, req.ID, "")
	require.NoError(t, err)
	assert.Equal(t, laminado, conf.ServiceID)
	assert.Equal(t, ResolutionToken, conf.ServiceResolution)
}

func TestConfirmTokenMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addService(t, "Manicura semipermanente", 22)
	lashes := f.addService(t, "Extensiones de pestañas", 60)
	req := f.submit(t, "algo de pestañas por favor", "")

	conf, err := f.svc.Confirm(ctx, req.ID, "")
	require.NoError(t, err)
	assert.Equal(t, lashes, conf.ServiceID)
	assert.Equal(t, ResolutionToken, conf.ServiceResolution)
}

func TestConfirmFallsBackToFirstActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.addService(t, "Manicura", 20)
	f.addService(t, "Pedicura", 25)
	req := f.submit(t, "tatuaje de henna", "")

	conf, err := f.svc.Confirm(ctx, req.ID, "")
	require.NoError(t, err)
	assert.Equal(t, first, conf.ServiceID)
	assert.Equal(t, ResolutionFirstActive, conf.ServiceResolution)
}

func TestConfirmAutoCreatesWithEmptyCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.submit(t, "Microblading", "")
	conf, err := f.svc.Confirm(ctx, req.ID, "")
	require.NoError(t, err)
	assert.Equal(t, ResolutionAutoCreated, conf.ServiceResolution)
	assert.Equal(t, "Microblading", conf.ServiceName)

	created, err := f.repos.Service.Get(ctx, conf.ServiceID)
	require.NoError(t, err)
	assert.Equal(t, model.FallbackCategoryID, created.CategoryID)
	assert.Equal(t, 50.0, created.Price)
	assert.Equal(t, 60, created.DurationMinutes)
	assert.Equal(t, 5.0, created.SupplyCost)
	assert.True(t, created.Active)
}

func TestConfirmScheduleFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addService(t, "Manicura", 20)
	req := f.submit(t, "Manicura", "por la tarde si puede ser")

	conf, err := f.svc.Confirm(ctx, req.ID, "")
	require.NoError(t, err)
	assert.False(t, conf.ScheduleParsed)
	assert.Equal(t, time.Now().Format(model.DateLayout), conf.Date)
	assert.Equal(t, "10:00", conf.Time)
}

func TestConfirmRefusesTerminalRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addService(t, "Manicura", 20)
	req := f.submit(t, "Manicura", "")
	_, err := f.svc.Confirm(ctx, req.ID, "")
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, req.ID, "")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)

	_, err = f.svc.Reject(ctx, req.ID, "")
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestRejectHasNoSideEffects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addService(t, "Manicura", 20)
	req := f.submit(t, "Manicura", "2026-09-05 a las 16:30")

	rej, err := f.svc.Reject(ctx, req.ID, "sin hueco esa semana")
	require.NoError(t, err)
	assert.Equal(t, "sin hueco esa semana", rej.Comment)

	got, err := f.repos.Request.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusRejected, got.Status)
	assert.Equal(t, "sin hueco esa semana", got.AdminNotes)

	// No client or appointment was created.
	clients, err := f.repos.Client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
	appointments, err := f.repos.Appointment.List(ctx, model.DateRange{})
	require.NoError(t, err)
	assert.Empty(t, appointments)

	require.Len(t, f.broker.channels, 1)
	assert.Equal(t, "booking.rejected", f.broker.channels[0])
}

func TestSubmitValidatesOutsideHTTP(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Submit(context.Background(), &model.SubmitRequestRequest{
		Name: "Lucía", Phone: "123", RequestedService: "Manicura",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.List(ctx, "cancelada")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)

	// The empty filter and each known status pass through.
	for _, status := range []model.RequestStatus{"", model.RequestStatusPending, model.RequestStatusConfirmed, model.RequestStatusRejected} {
		_, err := f.svc.List(ctx, status)
		assert.NoError(t, err)
	}
}

func TestConfirmUnknownRequest(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Confirm(context.Background(), 42, "")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
