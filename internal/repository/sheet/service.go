package sheet

import (
	"context"
	"fmt"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/sheetstore"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
)

type serviceRepository struct {
	BaseRepository
}

// List returns services with their category name joined in. Inactive services
// are filtered out unless includeInactive is set; admin listings and
// appointment joins want the full catalog.
func (r *serviceRepository) List(ctx context.Context, includeInactive bool) ([]model.Service, error) {
	rows, err := r.rows(ctx, serviciosTable)
	if err != nil {
		return nil, err
	}
	categoryNames, err := r.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	services := make([]model.Service, 0, len(rows))
	for _, row := range rows {
		svc := serviceFromRow(row)
		if !includeInactive && !svc.Active {
			continue
		}
		svc.CategoryName = categoryNames[svc.CategoryID]
		services = append(services, svc)
	}
	return services, nil
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	services, err := r.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].ID == id {
			return &services[i], nil
		}
	}
	return nil, apperrors.NotFound("service", nil)
}

func (r *serviceRepository) Insert(ctx context.Context, service *model.Service) (int64, error) {
	rows, err := r.rows(ctx, serviciosTable)
	if err != nil {
		return 0, err
	}
	id := nextID(rows)
	values := []string{
		formatInt(id),
		service.Name,
		formatInt(service.CategoryID),
		formatFloat(service.Price),
		formatInt(int64(service.DurationMinutes)),
		formatFloat(service.SupplyCost),
		flagValue(true),
		service.Description,
		nowTimestamp(),
	}
	if err := r.store.Append(ctx, serviciosTable.name, values); err != nil {
		return 0, fmt.Errorf("failed to insert service: %w", err)
	}
	r.invalidate()
	service.ID = id
	service.Active = true
	return id, nil
}

// Update rewrites the editable columns (B through H) in place. The id and
// created_at columns are never touched, and activo is forced back to "1": an
// edit through the UI always re-lists the service.
func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	rows, err := r.rows(ctx, serviciosTable)
	if err != nil {
		return err
	}
	rowIdx, ok := rowIndexByID(rows, service.ID)
	if !ok {
		return apperrors.NotFound("service", nil)
	}
	values := [][]string{{
		service.Name,
		formatInt(service.CategoryID),
		formatFloat(service.Price),
		formatInt(int64(service.DurationMinutes)),
		formatFloat(service.SupplyCost),
		flagValue(true),
		service.Description,
	}}
	rng := sheetstore.RangeRef(2, rowIdx, 8, rowIdx)
	if err := r.store.UpdateRange(ctx, serviciosTable.name, rng, values); err != nil {
		return fmt.Errorf("failed to update service %d: %w", service.ID, err)
	}
	r.invalidate()
	return nil
}

// SoftDelete flips the activo cell off. Deleting an already inactive service
// is a no-op, not an error.
func (r *serviceRepository) SoftDelete(ctx context.Context, id int64) error {
	rows, err := r.rows(ctx, serviciosTable)
	if err != nil {
		return err
	}
	rowIdx, ok := rowIndexByID(rows, id)
	if !ok {
		return apperrors.NotFound("service", nil)
	}
	cell := sheetstore.CellRef(7, rowIdx)
	if err := r.store.UpdateRange(ctx, serviciosTable.name, cell, [][]string{{flagValue(false)}}); err != nil {
		return fmt.Errorf("failed to deactivate service %d: %w", id, err)
	}
	r.invalidate()
	return nil
}

func (r *serviceRepository) categoryNames(ctx context.Context) (map[int64]string, error) {
	rows, err := r.rows(ctx, categoriasTable)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(rows))
	for _, row := range rows {
		names[parseInt(row["id"])] = row["nombre"]
	}
	return names, nil
}

func serviceFromRow(row sheetstore.Row) model.Service {
	return model.Service{
		ID:              parseInt(row["id"]),
		Name:            row["nombre"],
		CategoryID:      parseInt(row["categoria_id"]),
		Price:           parseFloat(row["precio"]),
		DurationMinutes: int(parseInt(row["duracion_minutos"])),
		SupplyCost:      parseFloat(row["costo_insumos"]),
		Active:          activeFlag(row["activo"]),
		Description:     row["descripcion"],
		CreatedAt:       row["created_at"],
	}
}
