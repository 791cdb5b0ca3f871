// Package booking implements the reconciliation workflow that turns a public
// booking request into a client, a service and a confirmed appointment.
package booking

import (
	"context"
	"fmt"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/repository"
	apperrors "github.com/beautybox/salon-api/pkg/errors"
	"github.com/beautybox/salon-api/pkg/logger"
	"github.com/beautybox/salon-api/pkg/messaging"
	"github.com/beautybox/salon-api/pkg/metrics"
	"github.com/beautybox/salon-api/pkg/validator"
)

// Confirmation is the structured payload Confirm returns, carrying enough to
// compose the outbound notification plus the tags saying which heuristic
// branches fired.
type Confirmation struct {
	RequestID     int64  `json:"request_id"`
	ClientID      int64  `json:"client_id"`
	ClientName    string `json:"client_name"`
	ClientPhone   string `json:"client_phone"`
	ClientCreated bool   `json:"client_created"`
	ServiceID     int64  `json:"service_id"`
	ServiceName   string `json:"service_name"`
	AppointmentID int64  `json:"appointment_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Comment       string `json:"comment,omitempty"`

	ServiceResolution ResolutionOutcome `json:"service_resolution"`
	ScheduleParsed    bool              `json:"schedule_parsed"`
}

type Rejection struct {
	RequestID int64  `json:"request_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Comment   string `json:"comment,omitempty"`
}

type Service struct {
	requests     repository.RequestRepository
	clients      repository.ClientRepository
	services     repository.ServiceRepository
	appointments repository.AppointmentRepository
	broker       messaging.Broker
	log          *logger.Logger
	m            *metrics.Metrics
	validate     *validator.Validator
}

// NewService wires the workflow. broker and m may be nil; eventing and
// counters are then skipped.
func NewService(
	requests repository.RequestRepository,
	clients repository.ClientRepository,
	services repository.ServiceRepository,
	appointments repository.AppointmentRepository,
	broker messaging.Broker,
	log *logger.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		requests:     requests,
		clients:      clients,
		services:     services,
		appointments: appointments,
		broker:       broker,
		log:          log,
		m:            m,
		validate:     validator.New(),
	}
}

// Confirm runs the reconciliation sequence: resolve client, parse schedule,
// resolve service, insert the appointment, then mark the request confirmed.
// The steps are not atomic; the request status update runs strictly last so
// an interruption leaves an orphan client or appointment and the request
// still pending, never a confirmed request without its appointment.
func (s *Service) Confirm(ctx context.Context, requestID int64, comment string) (*Confirmation, error) {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != model.RequestStatusPending {
		return nil, apperrors.Conflict(
			fmt.Sprintf("request already %s", req.Status), nil)
	}

	clientID, created, err := s.resolveClient(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}

	schedule := ParseSchedule(req.TimePreference)

	svc, outcome, err := s.resolveService(ctx, req.RequestedService)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service: %w", err)
	}
	if s.m != nil {
		s.m.ServiceResolutions.WithLabelValues(string(outcome)).Inc()
	}

	notes := fmt.Sprintf("Solicitud #%d", req.ID)
	if comment != "" {
		notes += ": " + comment
	}
	appointment := &model.Appointment{
		Date:          schedule.Date,
		Time:          schedule.Time,
		ClientID:      clientID,
		ServiceID:     svc.ID,
		PriceCharged:  svc.Price,
		Tip:           0,
		OriginChannel: "Web",
		PaymentMethod: model.PaymentPending,
		Notes:         notes,
	}
	appointmentID, err := s.appointments.Insert(ctx, appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to insert appointment: %w", err)
	}

	if err := s.requests.MarkResponded(ctx, req.ID, model.RequestStatusConfirmed, nowTimestamp(), comment); err != nil {
		return nil, fmt.Errorf("failed to mark request confirmed: %w", err)
	}
	if s.m != nil {
		s.m.RequestsConfirmed.Inc()
	}

	confirmation := &Confirmation{
		RequestID:         req.ID,
		ClientID:          clientID,
		ClientName:        req.Name,
		ClientPhone:       req.Phone,
		ClientCreated:     created,
		ServiceID:         svc.ID,
		ServiceName:       svc.Name,
		AppointmentID:     appointmentID,
		Date:              schedule.Date,
		Time:              schedule.Time,
		Comment:           comment,
		ServiceResolution: outcome,
		ScheduleParsed:    schedule.Parsed,
	}
	s.log.Info("booking request confirmed",
		"request_id", req.ID,
		"appointment_id", appointmentID,
		"service_resolution", string(outcome))
	s.publish(ctx, messaging.ChannelBookingConfirmed, confirmation)
	return confirmation, nil
}

// Reject marks the request rejected with the admin's comment. No client,
// service or appointment side effects.
func (s *Service) Reject(ctx context.Context, requestID int64, comment string) (*Rejection, error) {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != model.RequestStatusPending {
		return nil, apperrors.Conflict(
			fmt.Sprintf("request already %s", req.Status), nil)
	}

	if err := s.requests.MarkResponded(ctx, req.ID, model.RequestStatusRejected, nowTimestamp(), comment); err != nil {
		return nil, fmt.Errorf("failed to mark request rejected: %w", err)
	}
	if s.m != nil {
		s.m.RequestsRejected.Inc()
	}

	rejection := &Rejection{
		RequestID: req.ID,
		Name:      req.Name,
		Phone:     req.Phone,
		Comment:   comment,
	}
	s.log.Info("booking request rejected", "request_id", req.ID)
	s.publish(ctx, messaging.ChannelBookingRejected, rejection)
	return rejection, nil
}

// resolveClient deduplicates on phone then email; a miss inserts a new client
// marked as acquired through the web form.
func (s *Service) resolveClient(ctx context.Context, req *model.BookingRequest) (int64, bool, error) {
	if id, found, err := s.clients.FindExisting(ctx, req.Phone, req.Email); err != nil {
		return 0, false, err
	} else if found {
		return id, false, nil
	}

	client := &model.Client{
		Name:               req.Name,
		Phone:              req.Phone,
		Email:              req.Email,
		AcquisitionChannel: "Web",
		Notes:              fmt.Sprintf("Creado desde solicitud #%d", req.ID),
	}
	id, err := s.clients.Insert(ctx, client)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *Service) publish(ctx context.Context, channel string, payload interface{}) {
	if s.broker == nil {
		return
	}
	msg := messaging.Message{Type: channel, Payload: payload}
	if err := s.broker.Publish(ctx, channel, msg); err != nil {
		// Eventing is best effort and never fails the workflow.
		s.log.Error(err, "failed to publish booking event", "channel", channel)
	}
}
