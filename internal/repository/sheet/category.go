package sheet

import (
	"context"
	"fmt"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/sheetstore"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
)

type categoryRepository struct {
	BaseRepository
}

// List returns all categories, seeding the defaults the first time the table
// is read empty.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.rows(ctx, categoriasTable)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if err := r.seed(ctx); err != nil {
			return nil, err
		}
		if rows, err = r.rows(ctx, categoriasTable); err != nil {
			return nil, err
		}
	}

	categories := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, categoryFromRow(row))
	}
	return categories, nil
}

func (r *categoryRepository) Get(ctx context.Context, id int64) (*model.Category, error) {
	categories, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, apperrors.NotFound("category", nil)
}

func (r *categoryRepository) Insert(ctx context.Context, category *model.Category) (int64, error) {
	rows, err := r.rows(ctx, categoriasTable)
	if err != nil {
		return 0, err
	}
	id := nextID(rows)
	values := []string{
		formatInt(id),
		category.Name,
		category.Description,
		nowTimestamp(),
	}
	if err := r.store.Append(ctx, categoriasTable.name, values); err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}
	r.invalidate()
	category.ID = id
	return id, nil
}

func (r *categoryRepository) seed(ctx context.Context) error {
	r.log.Info("seeding default categories")
	for _, c := range model.DefaultCategories() {
		values := []string{
			formatInt(c.ID),
			c.Name,
			c.Description,
			nowTimestamp(),
		}
		if err := r.store.Append(ctx, categoriasTable.name, values); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
	}
	r.invalidate()
	return nil
}

func categoryFromRow(row sheetstore.Row) model.Category {
	return model.Category{
		ID:          parseInt(row["id"]),
		Name:        row["nombre"],
		Description: row["descripcion"],
		CreatedAt:   row["created_at"],
	}
}
