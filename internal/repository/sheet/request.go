package sheet

import (
	"context"
	"fmt"
	"sort"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/sheetstore"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
)

type requestRepository struct {
	BaseRepository
}

// List returns booking requests newest first by request timestamp (id breaks
// ties). An empty status returns everything.
func (r *requestRepository) List(ctx context.Context, status model.RequestStatus) ([]model.BookingRequest, error) {
	rows, err := r.rows(ctx, solicitudesTable)
	if err != nil {
		return nil, err
	}
	requests := make([]model.BookingRequest, 0, len(rows))
	for _, row := range rows {
		req := requestFromRow(row)
		if status != "" && req.Status != status {
			continue
		}
		requests = append(requests, req)
	}
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].RequestedAt != requests[j].RequestedAt {
			return requests[i].RequestedAt > requests[j].RequestedAt
		}
		return requests[i].ID > requests[j].ID
	})
	return requests, nil
}

func (r *requestRepository) Get(ctx context.Context, id int64) (*model.BookingRequest, error) {
	rows, err := r.rows(ctx, solicitudesTable)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if parseInt(row["id"]) == id {
			req := requestFromRow(row)
			return &req, nil
		}
	}
	return nil, apperrors.NotFound("booking request", nil)
}

func (r *requestRepository) Insert(ctx context.Context, request *model.BookingRequest) (int64, error) {
	rows, err := r.rows(ctx, solicitudesTable)
	if err != nil {
		return 0, err
	}
	id := nextID(rows)
	requestedAt := request.RequestedAt
	if requestedAt == "" {
		requestedAt = nowTimestamp()
	}
	values := []string{
		formatInt(id),
		request.Name,
		request.Phone,
		request.Email,
		request.RequestedService,
		request.TimePreference,
		request.Message,
		string(model.RequestStatusPending),
		requestedAt,
		"", // fecha_respuesta
		"", // notas_admin
	}
	if err := r.store.Append(ctx, solicitudesTable.name, values); err != nil {
		return 0, fmt.Errorf("failed to insert booking request: %w", err)
	}
	r.invalidate()
	request.ID = id
	request.Status = model.RequestStatusPending
	request.RequestedAt = requestedAt
	return id, nil
}

// MarkResponded writes the status cell, then the response timestamp and admin
// notes. Two targeted updates so the request's own columns, including the
// original fecha_solicitud, are never rewritten.
func (r *requestRepository) MarkResponded(ctx context.Context, id int64, status model.RequestStatus, respondedAt, adminNotes string) error {
	rows, err := r.rows(ctx, solicitudesTable)
	if err != nil {
		return err
	}
	rowIdx, ok := rowIndexByID(rows, id)
	if !ok {
		return apperrors.NotFound("booking request", nil)
	}

	statusCell := sheetstore.CellRef(8, rowIdx)
	if err := r.store.UpdateRange(ctx, solicitudesTable.name, statusCell, [][]string{{string(status)}}); err != nil {
		return fmt.Errorf("failed to update request %d status: %w", id, err)
	}
	responseRange := sheetstore.RangeRef(10, rowIdx, 11, rowIdx)
	if err := r.store.UpdateRange(ctx, solicitudesTable.name, responseRange, [][]string{{respondedAt, adminNotes}}); err != nil {
		return fmt.Errorf("failed to update request %d response: %w", id, err)
	}
	r.invalidate()
	return nil
}

func requestFromRow(row sheetstore.Row) model.BookingRequest {
	return model.BookingRequest{
		ID:               parseInt(row["id"]),
		Name:             row["nombre"],
		Phone:            row["telefono"],
		Email:            row["email"],
		RequestedService: row["servicio_solicitado"],
		TimePreference:   row["preferencia_horario"],
		Message:          row["mensaje"],
		Status:           model.RequestStatus(row["estado"]),
		RequestedAt:      row["fecha_solicitud"],
		RespondedAt:      row["fecha_respuesta"],
		AdminNotes:       row["notas_admin"],
	}
}
