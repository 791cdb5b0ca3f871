package model

// Appointment is a confirmed visit. Date and Time are kept in the sheet's own
// formats ("2006-01-02" and "15:04").
type Appointment struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	ClientID      int64   `json:"client_id"`
	ServiceID     int64   `json:"service_id"`
	PriceCharged  float64 `json:"price_charged"`
	Tip           float64 `json:"tip"`
	OriginChannel string  `json:"origin_channel,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`

	// Joined on reads; empty when the referenced row is missing.
	ClientName   string `json:"client_name,omitempty"`
	ServiceName  string `json:"service_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// PaymentPending is the sentinel payment method for appointments created from
// booking requests, meaning payment has not been collected yet.
const PaymentPending = "Pendiente"

// DateLayout and TimeLayout are the formats the spreadsheet stores.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type CreateAppointmentRequest struct {
	Date          string  `json:"date" binding:"required"`
	Time          string  `json:"time" binding:"required"`
	ClientID      int64   `json:"client_id" binding:"required"`
	ServiceID     int64   `json:"service_id" binding:"required"`
	PriceCharged  float64 `json:"price_charged" binding:"gte=0"`
	Tip           float64 `json:"tip" binding:"gte=0"`
	OriginChannel string  `json:"origin_channel"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}

// DateRange is an inclusive [Start, End] filter over the sheet date column.
type DateRange struct {
	Start string `form:"start" json:"start"`
	End   string `form:"end" json:"end"`
}

// IsZero reports whether no range was supplied.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}
