package model

// RequestStatus keeps the Spanish values the solicitudes sheet has always
// stored. The only transitions are pendiente→confirmada and
// pendiente→rechazada; both are terminal.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pendiente"
	RequestStatusConfirmed RequestStatus = "confirmada"
	RequestStatusRejected  RequestStatus = "rechazada"
)

// BookingRequest is an unconfirmed inquiry from the public booking form,
// distinct from a confirmed Appointment.
type BookingRequest struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	Phone            string        `json:"phone"`
	Email            string        `json:"email,omitempty"`
	RequestedService string        `json:"requested_service"`
	TimePreference   string        `json:"time_preference,omitempty"`
	Message          string        `json:"message,omitempty"`
	Status           RequestStatus `json:"status"`
	RequestedAt      string        `json:"requested_at,omitempty"`
	RespondedAt      string        `json:"responded_at,omitempty"`
	AdminNotes       string        `json:"admin_notes,omitempty"`
}

// SubmitRequestRequest is the public booking form payload. The phone length
// floor matches the form's own validation.
type SubmitRequestRequest struct {
	Name             string `json:"name" binding:"required" validate:"required"`
	Phone            string `json:"phone" binding:"required,min=9" validate:"required,min=9"`
	Email            string `json:"email" binding:"omitempty,email" validate:"omitempty,email"`
	RequestedService string `json:"requested_service" binding:"required" validate:"required"`
	TimePreference   string `json:"time_preference"`
	Message          string `json:"message"`
}

type RespondRequestRequest struct {
	Comment string `json:"comment"`
}
