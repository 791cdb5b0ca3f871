// Package catalog manages categories and the bookable service list.
package catalog

import (
	"context"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/repository"
)

type Service struct {
	categories repository.CategoryRepository
	services   repository.ServiceRepository
}

func NewService(categories repository.CategoryRepository, services repository.ServiceRepository) *Service {
	return &Service{categories: categories, services: services}
}

func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if _, err := s.categories.Insert(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) ListServices(ctx context.Context, includeInactive bool) ([]model.Service, error) {
	return s.services.List(ctx, includeInactive)
}

func (s *Service) GetService(ctx context.Context, id int64) (*model.Service, error) {
	return s.services.Get(ctx, id)
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	svc := &model.Service{
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		SupplyCost:      req.SupplyCost,
		Description:     req.Description,
	}
	if _, err := s.services.Insert(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc := &model.Service{
		ID:              id,
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		SupplyCost:      req.SupplyCost,
		Description:     req.Description,
		Active:          true,
	}
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeactivateService retires a service without breaking historical
// appointments that reference it.
func (s *Service) DeactivateService(ctx context.Context, id int64) error {
	return s.services.SoftDelete(ctx, id)
}
