// Package client wraps the client repository with the deletion guard.
package client

import (
	"context"
	"fmt"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/repository"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
)

type Service struct {
	clients      repository.ClientRepository
	appointments repository.AppointmentRepository
}

func NewService(clients repository.ClientRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{clients: clients, appointments: appointments}
}

func (s *Service) List(ctx context.Context) ([]model.Client, error) {
	return s.clients.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Client, error) {
	return s.clients.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	client := &model.Client{
		Name:               req.Name,
		Phone:              req.Phone,
		Email:              req.Email,
		AcquisitionChannel: req.AcquisitionChannel,
		Notes:              req.Notes,
	}
	if _, err := s.clients.Insert(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes the client only when nothing references them. A client with
// appointments is refused with a conflict carrying the blocking count, so the
// caller can say "delete the 3 appointments first".
func (s *Service) Delete(ctx context.Context, id int64) error {
	count, err := s.appointments.CountByClient(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count client appointments: %w", err)
	}
	if count > 0 {
		return apperrors.Conflict(
			fmt.Sprintf("client has %d appointments", count), nil)
	}
	return s.clients.Delete(ctx, id)
}
