package sheet

import (
	"context"
	"fmt"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/sheetstore"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
)

type clientRepository struct {
	BaseRepository
}

func (r *clientRepository) List(ctx context.Context) ([]model.Client, error) {
	rows, err := r.rows(ctx, clientesTable)
	if err != nil {
		return nil, err
	}
	clients := make([]model.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, clientFromRow(row))
	}
	return clients, nil
}

func (r *clientRepository) Get(ctx context.Context, id int64) (*model.Client, error) {
	clients, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, apperrors.NotFound("client", nil)
}

func (r *clientRepository) Insert(ctx context.Context, client *model.Client) (int64, error) {
	rows, err := r.rows(ctx, clientesTable)
	if err != nil {
		return 0, err
	}
	id := nextID(rows)
	firstVisit := client.FirstVisitDate
	if firstVisit == "" {
		firstVisit = today()
	}
	values := []string{
		formatInt(id),
		client.Name,
		client.Phone,
		client.Email,
		firstVisit,
		client.AcquisitionChannel,
		client.Notes,
		nowTimestamp(),
	}
	if err := r.store.Append(ctx, clientesTable.name, values); err != nil {
		return 0, fmt.Errorf("failed to insert client: %w", err)
	}
	r.invalidate()
	client.ID = id
	client.FirstVisitDate = firstVisit
	return id, nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	rows, err := r.rows(ctx, clientesTable)
	if err != nil {
		return err
	}
	rowIdx, ok := rowIndexByID(rows, id)
	if !ok {
		return apperrors.NotFound("client", nil)
	}
	if err := r.store.DeleteRow(ctx, clientesTable.name, rowIdx); err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	r.invalidate()
	return nil
}

// FindExisting deduplicates by phone digits first, then by email. Phone
// matching is on normalized digits and tolerates a missing country code;
// email matching is case-insensitive. Blank values never match.
func (r *clientRepository) FindExisting(ctx context.Context, phone, email string) (int64, bool, error) {
	clients, err := r.List(ctx)
	if err != nil {
		return 0, false, err
	}

	if digits := model.NormalizePhone(phone); digits != "" {
		for _, c := range clients {
			if model.PhoneDigitsMatch(digits, model.NormalizePhone(c.Phone)) {
				return c.ID, true, nil
			}
		}
	}
	if normalized := model.NormalizeEmail(email); normalized != "" {
		for _, c := range clients {
			if model.NormalizeEmail(c.Email) == normalized {
				return c.ID, true, nil
			}
		}
	}
	return 0, false, nil
}

func clientFromRow(row sheetstore.Row) model.Client {
	return model.Client{
		ID:                 parseInt(row["id"]),
		Name:               row["nombre"],
		Phone:              row["telefono"],
		Email:              row["email"],
		FirstVisitDate:     row["fecha_primera_visita"],
		AcquisitionChannel: row["canal_adquisicion"],
		Notes:              row["notas"],
		CreatedAt:          row["created_at"],
	}
}
