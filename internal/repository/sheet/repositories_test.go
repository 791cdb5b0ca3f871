package sheet

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/sheetstore"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
	"github.com/beautybox/salon-api/pkg/logger"
)

func newTestRepos(t *testing.T) (*Repositories, sheetstore.TableStore) {
	t.Helper()
	store := sheetstore.NewMemoryStore()
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return New(store, 5*time.Minute, log, nil), store
}

func TestCategoryListSeedsDefaults(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	categories, err := repos.Category.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 4)
	assert.Equal(t, "Pestañas", categories[0].Name)
	assert.Equal(t, "Otros", categories[3].Name)
	assert.Equal(t, model.FallbackCategoryID, categories[3].ID)

	// Seeding happens once; a second read must not duplicate.
	categories, err = repos.Category.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 4)
}

func TestServiceInsertAssignsMonotonicIDs(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	first := &model.Service{Name: "Lifting de pestañas", CategoryID: 1, Price: 35, DurationMinutes: 60}
	id1, err := repos.Service.Insert(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id1)
	assert.True(t, first.Active)

	second := &model.Service{Name: "Manicura", CategoryID: 3, Price: 20, DurationMinutes: 45}
	id2, err := repos.Service.Insert(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2)

	// Deleting a row never frees its id.
	require.NoError(t, repos.Service.SoftDelete(ctx, id2))
	third := &model.Service{Name: "Pedicura", CategoryID: 3, Price: 25, DurationMinutes: 45}
	id3, err := repos.Service.Insert(ctx, third)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id3)
}

func TestServiceListFiltersInactive(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	svc := &model.Service{Name: "Volumen ruso", CategoryID: 1, Price: 60, DurationMinutes: 120}
	id, err := repos.Service.Insert(ctx, svc)
	require.NoError(t, err)
	require.NoError(t, repos.Service.SoftDelete(ctx, id))

	active, err := repos.Service.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repos.Service.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)
	assert.Equal(t, "Pestañas", all[0].CategoryName)

	// Soft delete is idempotent.
	require.NoError(t, repos.Service.SoftDelete(ctx, id))
}

func TestServiceUpdateReactivates(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	svc := &model.Service{Name: "Diseño de cejas", CategoryID: 2, Price: 15, DurationMinutes: 30}
	id, err := repos.Service.Insert(ctx, svc)
	require.NoError(t, err)
	require.NoError(t, repos.Service.SoftDelete(ctx, id))

	svc.ID = id
	svc.Price = 18
	require.NoError(t, repos.Service.Update(ctx, svc))

	got, err := repos.Service.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 18.0, got.Price)
	assert.True(t, got.Active)
}

func TestClientFindExisting(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.Client.Insert(ctx, &model.Client{
		Name: "Laura García", Phone: "612345678", Email: "laura@example.com",
	})
	require.NoError(t, err)

	// Formatting and country code never defeat a phone match.
	id, found, err := repos.Client.FindExisting(ctx, "+34 612-345-678", "")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(1), id)

	// Email falls back when the phone is unknown, case-insensitively.
	id, found, err = repos.Client.FindExisting(ctx, "699999999", "LAURA@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(1), id)

	_, found, err = repos.Client.FindExisting(ctx, "699999999", "nadie@example.com")
	require.NoError(t, err)
	assert.False(t, found)

	// Blank values never match blank cells.
	_, err = repos.Client.Insert(ctx, &model.Client{Name: "Sin contacto"})
	require.NoError(t, err)
	_, found, err = repos.Client.FindExisting(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClientInsertDefaultsFirstVisit(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	c := &model.Client{Name: "Marta"}
	_, err := repos.Client.Insert(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(model.DateLayout), c.FirstVisitDate)
}

func TestAppointmentListJoinsAndSorts(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	clientID, err := repos.Client.Insert(ctx, &model.Client{Name: "Ana", Phone: "600000001"})
	require.NoError(t, err)
	svcID, err := repos.Service.Insert(ctx, &model.Service{Name: "Manicura", CategoryID: 3, Price: 20, DurationMinutes: 45})
	require.NoError(t, err)

	for _, a := range []model.Appointment{
		{Date: "2026-08-01", Time: "10:00", ClientID: clientID, ServiceID: svcID, PriceCharged: 20},
		{Date: "2026-08-03", Time: "12:00", ClientID: clientID, ServiceID: svcID, PriceCharged: 22},
		{Date: "2026-08-03", Time: "09:00", ClientID: clientID, ServiceID: svcID, PriceCharged: 20},
	} {
		appt := a
		_, err := repos.Appointment.Insert(ctx, &appt)
		require.NoError(t, err)
	}

	appointments, err := repos.Appointment.List(ctx, model.DateRange{})
	require.NoError(t, err)
	require.Len(t, appointments, 3)
	// Newest date first, higher id first within a date.
	assert.Equal(t, int64(3), appointments[0].ID)
	assert.Equal(t, int64(2), appointments[1].ID)
	assert.Equal(t, int64(1), appointments[2].ID)
	assert.Equal(t, "Ana", appointments[0].ClientName)
	assert.Equal(t, "Manicura", appointments[0].ServiceName)
	assert.Equal(t, "Uñas", appointments[0].CategoryName)

	ranged, err := repos.Appointment.List(ctx, model.DateRange{Start: "2026-08-02", End: "2026-08-03"})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)
}

func TestAppointmentJoinSurvivesInactiveService(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	clientID, err := repos.Client.Insert(ctx, &model.Client{Name: "Eva", Phone: "600000002"})
	require.NoError(t, err)
	svcID, err := repos.Service.Insert(ctx, &model.Service{Name: "Laminado", CategoryID: 2, Price: 30, DurationMinutes: 60})
	require.NoError(t, err)
	_, err = repos.Appointment.Insert(ctx, &model.Appointment{
		Date: "2026-07-10", Time: "11:00", ClientID: clientID, ServiceID: svcID, PriceCharged: 30,
	})
	require.NoError(t, err)

	require.NoError(t, repos.Service.SoftDelete(ctx, svcID))

	appointments, err := repos.Appointment.List(ctx, model.DateRange{})
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "Laminado", appointments[0].ServiceName)
}

func TestAppointmentCountByClient(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	a, err := repos.Client.Insert(ctx, &model.Client{Name: "Ana", Phone: "600000001"})
	require.NoError(t, err)
	b, err := repos.Client.Insert(ctx, &model.Client{Name: "Bea", Phone: "600000002"})
	require.NoError(t, err)
	svcID, err := repos.Service.Insert(ctx, &model.Service{Name: "Manicura", CategoryID: 3, Price: 20, DurationMinutes: 45})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := repos.Appointment.Insert(ctx, &model.Appointment{
			Date: "2026-08-01", Time: "10:00", ClientID: a, ServiceID: svcID, PriceCharged: 20,
		})
		require.NoError(t, err)
	}

	count, err := repos.Appointment.CountByClient(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	count, err = repos.Appointment.CountByClient(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestFixedExpenseSoftDelete(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	exp := &model.FixedExpense{Concept: "Alquiler", Amount: 800, Frequency: model.FrequencyMonthly}
	id, err := repos.FixedExpense.Insert(ctx, exp)
	require.NoError(t, err)

	active, err := repos.FixedExpense.List(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, repos.FixedExpense.SoftDelete(ctx, id))
	active, err = repos.FixedExpense.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestVariableExpenseRangeAndDelete(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	for _, e := range []model.VariableExpense{
		{Date: "2026-08-01", Concept: "Acetona", Amount: 12},
		{Date: "2026-08-20", Concept: "Algodón", Amount: 6},
	} {
		exp := e
		_, err := repos.VariableExpense.Insert(ctx, &exp)
		require.NoError(t, err)
	}

	ranged, err := repos.VariableExpense.List(ctx, model.DateRange{Start: "2026-08-10", End: "2026-08-31"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "Algodón", ranged[0].Concept)

	require.NoError(t, repos.VariableExpense.Delete(ctx, ranged[0].ID))
	all, err := repos.VariableExpense.List(ctx, model.DateRange{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	err = repos.VariableExpense.Delete(ctx, 99)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestRequestLifecycle(t *testing.T) {
	repos, store := newTestRepos(t)
	ctx := context.Background()

	req := &model.BookingRequest{
		Name: "Lucía", Phone: "611222333", RequestedService: "Manicura",
		RequestedAt: "2026-08-30T10:00:00Z",
	}
	id, err := repos.Request.Insert(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusPending, req.Status)

	later := &model.BookingRequest{
		Name: "Sara", Phone: "611222334", RequestedService: "Cejas",
		RequestedAt: "2026-08-31T09:00:00Z",
	}
	_, err = repos.Request.Insert(ctx, later)
	require.NoError(t, err)

	pending, err := repos.Request.List(ctx, model.RequestStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "Sara", pending[0].Name)

	err = repos.Request.MarkResponded(ctx, id, model.RequestStatusConfirmed, "2026-08-31T12:00:00Z", "confirmada por teléfono")
	require.NoError(t, err)

	got, err := repos.Request.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusConfirmed, got.Status)
	assert.Equal(t, "2026-08-31T12:00:00Z", got.RespondedAt)
	assert.Equal(t, "confirmada por teléfono", got.AdminNotes)
	// The original request timestamp is never rewritten.
	assert.Equal(t, "2026-08-30T10:00:00Z", got.RequestedAt)

	rows, err := store.ReadAll(ctx, "solicitudes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestWriteInvalidatesCache(t *testing.T) {
	repos, store := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.Client.List(ctx)
	require.NoError(t, err)

	// Write behind the repository; the cached read must not survive the next
	// repository write.
	require.NoError(t, store.Append(ctx, "clientes", []string{"41", "Fuera de banda", "", "", "", "", "", ""}))
	_, err = repos.Client.Insert(ctx, &model.Client{Name: "Nueva"})
	require.NoError(t, err)

	clients, err := repos.Client.List(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}
