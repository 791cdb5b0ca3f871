package sheet

import (
	"context"
	"fmt"
	"sort"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/sheetstore"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
)

type appointmentRepository struct {
	BaseRepository
}

// List returns appointments in the requested range, newest first (date
// descending, then id descending), with client, service and category names
// joined in. Dangling references leave the joined names empty rather than
// failing the listing.
func (r *appointmentRepository) List(ctx context.Context, dateRange model.DateRange) ([]model.Appointment, error) {
	rows, err := r.rows(ctx, citasTable)
	if err != nil {
		return nil, err
	}
	clientNames, serviceNames, categoryNames, err := r.joinNames(ctx)
	if err != nil {
		return nil, err
	}

	appointments := make([]model.Appointment, 0, len(rows))
	for _, row := range rows {
		appt := appointmentFromRow(row)
		if !inDateRange(appt.Date, dateRange) {
			continue
		}
		appt.ClientName = clientNames[appt.ClientID]
		appt.ServiceName = serviceNames[appt.ServiceID]
		appt.CategoryName = categoryNames[appt.ServiceID]
		appointments = append(appointments, appt)
	}

	sort.Slice(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date > appointments[j].Date
		}
		return appointments[i].ID > appointments[j].ID
	})
	return appointments, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	appointments, err := r.List(ctx, model.DateRange{})
	if err != nil {
		return nil, err
	}
	for i := range appointments {
		if appointments[i].ID == id {
			return &appointments[i], nil
		}
	}
	return nil, apperrors.NotFound("appointment", nil)
}

func (r *appointmentRepository) Insert(ctx context.Context, appointment *model.Appointment) (int64, error) {
	rows, err := r.rows(ctx, citasTable)
	if err != nil {
		return 0, err
	}
	id := nextID(rows)
	values := []string{
		formatInt(id),
		appointment.Date,
		appointment.Time,
		formatInt(appointment.ClientID),
		formatInt(appointment.ServiceID),
		formatFloat(appointment.PriceCharged),
		formatFloat(appointment.Tip),
		appointment.OriginChannel,
		appointment.PaymentMethod,
		appointment.Notes,
		nowTimestamp(),
	}
	if err := r.store.Append(ctx, citasTable.name, values); err != nil {
		return 0, fmt.Errorf("failed to insert appointment: %w", err)
	}
	r.invalidate()
	appointment.ID = id
	return id, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	rows, err := r.rows(ctx, citasTable)
	if err != nil {
		return err
	}
	rowIdx, ok := rowIndexByID(rows, id)
	if !ok {
		return apperrors.NotFound("appointment", nil)
	}
	if err := r.store.DeleteRow(ctx, citasTable.name, rowIdx); err != nil {
		return fmt.Errorf("failed to delete appointment %d: %w", id, err)
	}
	r.invalidate()
	return nil
}

// CountByClient reports how many appointments reference the client, used to
// guard client deletion.
func (r *appointmentRepository) CountByClient(ctx context.Context, clientID int64) (int, error) {
	rows, err := r.rows(ctx, citasTable)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, row := range rows {
		if parseInt(row["cliente_id"]) == clientID {
			count++
		}
	}
	return count, nil
}

// joinNames builds the lookup maps for the denormalized listing columns. The
// service map includes inactive services so historical appointments keep
// their names.
func (r *appointmentRepository) joinNames(ctx context.Context) (clients, services, categories map[int64]string, err error) {
	clientRows, err := r.rows(ctx, clientesTable)
	if err != nil {
		return nil, nil, nil, err
	}
	serviceRows, err := r.rows(ctx, serviciosTable)
	if err != nil {
		return nil, nil, nil, err
	}
	categoryRows, err := r.rows(ctx, categoriasTable)
	if err != nil {
		return nil, nil, nil, err
	}

	clients = make(map[int64]string, len(clientRows))
	for _, row := range clientRows {
		clients[parseInt(row["id"])] = row["nombre"]
	}

	categoryNames := make(map[int64]string, len(categoryRows))
	for _, row := range categoryRows {
		categoryNames[parseInt(row["id"])] = row["nombre"]
	}

	services = make(map[int64]string, len(serviceRows))
	categories = make(map[int64]string, len(serviceRows))
	for _, row := range serviceRows {
		id := parseInt(row["id"])
		services[id] = row["nombre"]
		categories[id] = categoryNames[parseInt(row["categoria_id"])]
	}
	return clients, services, categories, nil
}

func appointmentFromRow(row sheetstore.Row) model.Appointment {
	return model.Appointment{
		ID:            parseInt(row["id"]),
		Date:          row["fecha"],
		Time:          row["hora"],
		ClientID:      parseInt(row["cliente_id"]),
		ServiceID:     parseInt(row["servicio_id"]),
		PriceCharged:  parseFloat(row["precio_cobrado"]),
		Tip:           parseFloat(row["propina"]),
		OriginChannel: row["canal_origen"],
		PaymentMethod: row["metodo_pago"],
		Notes:         row["notas"],
		CreatedAt:     row["created_at"],
	}
}
