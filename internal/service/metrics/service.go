// Package metrics aggregates the dashboard figures for a reporting period.
// All aggregations are pure functions over already-filtered sets; empty sets
// yield zeros, never NaN.
package metrics

import (
	"context"
	"sort"
	"time"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/repository"
)

type Service struct {
	appointments repository.AppointmentRepository
	fixed        repository.FixedExpenseRepository
	variable     repository.VariableExpenseRepository
}

func NewService(appointments repository.AppointmentRepository, fixed repository.FixedExpenseRepository, variable repository.VariableExpenseRepository) *Service {
	return &Service{
		appointments: appointments,
		fixed:        fixed,
		variable:     variable,
	}
}

// ForPeriod computes the dashboard summary for the inclusive range. A zero
// range defaults to the current calendar month.
func (s *Service) ForPeriod(ctx context.Context, rng model.DateRange) (*model.PeriodMetrics, error) {
	if rng.IsZero() {
		rng = CurrentMonth()
	}

	appointments, err := s.appointments.List(ctx, rng)
	if err != nil {
		return nil, err
	}
	fixed, err := s.fixed.List(ctx)
	if err != nil {
		return nil, err
	}
	variable, err := s.variable.List(ctx, rng)
	if err != nil {
		return nil, err
	}

	m := &model.PeriodMetrics{
		Start:                 rng.Start,
		End:                   rng.End,
		TotalRevenue:          TotalRevenue(appointments),
		AppointmentCount:      len(appointments),
		AverageTicket:         AverageTicket(appointments),
		UniqueClients:         UniqueClients(appointments),
		TotalFixedExpenses:    TotalFixedExpenses(fixed),
		TotalVariableExpenses: TotalVariableExpenses(variable),
		RevenueByDay:          RevenueByDay(appointments),
	}
	return m, nil
}

// CurrentMonth is the default dashboard window: the first of the month
// through today.
func CurrentMonth() model.DateRange {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return model.DateRange{
		Start: first.Format(model.DateLayout),
		End:   now.Format(model.DateLayout),
	}
}

// TotalRevenue sums price charged plus tip.
func TotalRevenue(appointments []model.Appointment) float64 {
	var total float64
	for _, a := range appointments {
		total += a.PriceCharged + a.Tip
	}
	return total
}

// AverageTicket is the mean price charged per appointment, 0 on an empty
// set. Tips are excluded: they count toward revenue but not the ticket.
func AverageTicket(appointments []model.Appointment) float64 {
	if len(appointments) == 0 {
		return 0
	}
	var charged float64
	for _, a := range appointments {
		charged += a.PriceCharged
	}
	return charged / float64(len(appointments))
}

// UniqueClients counts distinct client ids.
func UniqueClients(appointments []model.Appointment) int {
	seen := make(map[int64]struct{}, len(appointments))
	for _, a := range appointments {
		seen[a.ClientID] = struct{}{}
	}
	return len(seen)
}

func TotalFixedExpenses(expenses []model.FixedExpense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

func TotalVariableExpenses(expenses []model.VariableExpense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// RevenueByDay groups price charged by appointment date, ascending, for
// the dashboard chart. Tips are excluded. Nil on an empty set.
func RevenueByDay(appointments []model.Appointment) []model.DailyRevenue {
	if len(appointments) == 0 {
		return nil
	}
	byDay := make(map[string]float64)
	for _, a := range appointments {
		byDay[a.Date] += a.PriceCharged
	}
	days := make([]model.DailyRevenue, 0, len(byDay))
	for date, revenue := range byDay {
		days = append(days, model.DailyRevenue{Date: date, Revenue: revenue})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
