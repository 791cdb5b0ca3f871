package booking

import (
	"context"
	"fmt"

	"github.com/beautybox/salon-api/internal/model"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
)

// Submit records a pending request from the public booking form. Validation
// runs here too so non-HTTP callers get the same rules as the gin binding. No
// reconciliation happens; the admin confirms or rejects later.
func (s *Service) Submit(ctx context.Context, req *model.SubmitRequestRequest) (*model.BookingRequest, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	request := &model.BookingRequest{
		Name:             req.Name,
		Phone:            req.Phone,
		Email:            req.Email,
		RequestedService: req.RequestedService,
		TimePreference:   req.TimePreference,
		Message:          req.Message,
	}
	if _, err := s.requests.Insert(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to submit booking request: %w", err)
	}
	s.log.Info("booking request submitted", "request_id", request.ID, "service", request.RequestedService)
	return request, nil
}

// List returns requests for the admin inbox, optionally filtered by status.
func (s *Service) List(ctx context.Context, status model.RequestStatus) ([]model.BookingRequest, error) {
	if err := s.validate.Var(string(status), "omitempty,oneof=pendiente confirmada rechazada"); err != nil {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid status filter %q", status), err)
	}
	return s.requests.List(ctx, status)
}

// Get returns one request.
func (s *Service) Get(ctx context.Context, id int64) (*model.BookingRequest, error) {
	return s.requests.Get(ctx, id)
}
