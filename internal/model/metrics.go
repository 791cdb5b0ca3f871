package model

// PeriodMetrics is the dashboard summary for a reporting period. Every field
// is 0 on an empty period, never NaN.
type PeriodMetrics struct {
	Start                 string         `json:"start"`
	End                   string         `json:"end"`
	TotalRevenue          float64        `json:"total_revenue"`
	AppointmentCount      int            `json:"appointment_count"`
	AverageTicket         float64        `json:"average_ticket"`
	UniqueClients         int            `json:"unique_clients"`
	TotalFixedExpenses    float64        `json:"total_fixed_expenses"`
	TotalVariableExpenses float64        `json:"total_variable_expenses"`
	RevenueByDay          []DailyRevenue `json:"revenue_by_day,omitempty"`
}

// DailyRevenue is one point of the dashboard revenue chart.
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}
