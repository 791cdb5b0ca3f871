package client

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/repository/sheet"
	"github.com/beautybox/salon-api/internal/sheetstore"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
	"github.com/beautybox/salon-api/pkg/logger"
)

func newService(t *testing.T) (*Service, *sheet.Repositories) {
	t.Helper()
	store := sheetstore.NewMemoryStore()
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	repos := sheet.New(store, 5*time.Minute, log, nil)
	return NewService(repos.Client, repos.Appointment), repos
}

func TestDeleteRefusedWhileReferenced(t *testing.T) {
	svc, repos := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateClientRequest{Name: "Ana", Phone: "600000001"})
	require.NoError(t, err)
	serviceID, err := repos.Service.Insert(ctx, &model.Service{Name: "Manicura", CategoryID: 3, Price: 20, DurationMinutes: 45})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := repos.Appointment.Insert(ctx, &model.Appointment{
			Date: "2026-08-01", Time: "10:00", ClientID: created.ID, ServiceID: serviceID, PriceCharged: 20,
		})
		require.NoError(t, err)
	}

	err = svc.Delete(ctx, created.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "2 appointments")

	// Once the appointments are gone the delete goes through.
	appointments, err := repos.Appointment.List(ctx, model.DateRange{})
	require.NoError(t, err)
	for _, a := range appointments {
		require.NoError(t, repos.Appointment.Delete(ctx, a.ID))
	}
	require.NoError(t, svc.Delete(ctx, created.ID))

	clients, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}
