// Package appointment manages confirmed visits recorded directly by the
// admin, as opposed to ones created through the booking workflow.
package appointment

import (
	"context"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/repository"
)

type Service struct {
	appointments repository.AppointmentRepository
	services     repository.ServiceRepository
}

func NewService(appointments repository.AppointmentRepository, services repository.ServiceRepository) *Service {
	return &Service{appointments: appointments, services: services}
}

func (s *Service) List(ctx context.Context, dateRange model.DateRange) ([]model.Appointment, error) {
	return s.appointments.List(ctx, dateRange)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.appointments.Get(ctx, id)
}

// Create records a visit. A zero price defaults to the service's list price.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	price := req.PriceCharged
	if price == 0 {
		svc, err := s.services.Get(ctx, req.ServiceID)
		if err != nil {
			return nil, err
		}
		price = svc.Price
	}

	appointment := &model.Appointment{
		Date:          req.Date,
		Time:          req.Time,
		ClientID:      req.ClientID,
		ServiceID:     req.ServiceID,
		PriceCharged:  price,
		Tip:           req.Tip,
		OriginChannel: req.OriginChannel,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if _, err := s.appointments.Insert(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.appointments.Delete(ctx, id)
}
