// Package expense manages the salon's fixed and variable costs.
package expense

import (
	"context"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/repository"
)

type Service struct {
	fixed    repository.FixedExpenseRepository
	variable repository.VariableExpenseRepository
}

func NewService(fixed repository.FixedExpenseRepository, variable repository.VariableExpenseRepository) *Service {
	return &Service{fixed: fixed, variable: variable}
}

func (s *Service) ListFixed(ctx context.Context) ([]model.FixedExpense, error) {
	return s.fixed.List(ctx)
}

func (s *Service) CreateFixed(ctx context.Context, req *model.CreateFixedExpenseRequest) (*model.FixedExpense, error) {
	exp := &model.FixedExpense{
		Concept:   req.Concept,
		Amount:    req.Amount,
		Frequency: model.ExpenseFrequency(req.Frequency),
		Notes:     req.Notes,
	}
	if _, err := s.fixed.Insert(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// DeactivateFixed stops a recurring cost from counting without losing its
// history.
func (s *Service) DeactivateFixed(ctx context.Context, id int64) error {
	return s.fixed.SoftDelete(ctx, id)
}

func (s *Service) ListVariable(ctx context.Context, dateRange model.DateRange) ([]model.VariableExpense, error) {
	return s.variable.List(ctx, dateRange)
}

func (s *Service) CreateVariable(ctx context.Context, req *model.CreateVariableExpenseRequest) (*model.VariableExpense, error) {
	exp := &model.VariableExpense{
		Date:     req.Date,
		Concept:  req.Concept,
		Amount:   req.Amount,
		Category: req.Category,
		Notes:    req.Notes,
	}
	if _, err := s.variable.Insert(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

func (s *Service) DeleteVariable(ctx context.Context, id int64) error {
	return s.variable.Delete(ctx, id)
}
