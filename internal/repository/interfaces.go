package repository

import (
	"context"

	"github.com/beautybox/salon-api/internal/model"
)

// All repository interfaces in one file
type (
	// CategoryRepository wraps the categorias table. The table is seeded with
	// the four default categories the first time it is read empty.
	CategoryRepository interface {
		List(ctx context.Context) ([]model.Category, error)
		Get(ctx context.Context, id int64) (*model.Category, error)
		Insert(ctx context.Context, category *model.Category) (int64, error)
	}

	// ServiceRepository wraps the servicios table. Services are soft-deleted
	// via the activo flag and never physically removed.
	ServiceRepository interface {
		List(ctx context.Context, includeInactive bool) ([]model.Service, error)
		Get(ctx context.Context, id int64) (*model.Service, error)
		Insert(ctx context.Context, service *model.Service) (int64, error)
		Update(ctx context.Context, service *model.Service) error
		SoftDelete(ctx context.Context, id int64) error
	}

	// ClientRepository wraps the clientes table.
	ClientRepository interface {
		List(ctx context.Context) ([]model.Client, error)
		Get(ctx context.Context, id int64) (*model.Client, error)
		Insert(ctx context.Context, client *model.Client) (int64, error)
		Delete(ctx context.Context, id int64) error
		// FindExisting looks a client up by normalized phone digits first,
		// then by lowercased email, returning the first match.
		FindExisting(ctx context.Context, phone, email string) (int64, bool, error)
	}

	// AppointmentRepository wraps the citas table. Listings are newest-first
	// and carry denormalized client/service/category names.
	AppointmentRepository interface {
		List(ctx context.Context, dateRange model.DateRange) ([]model.Appointment, error)
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		Insert(ctx context.Context, appointment *model.Appointment) (int64, error)
		Delete(ctx context.Context, id int64) error
		CountByClient(ctx context.Context, clientID int64) (int, error)
	}

	// FixedExpenseRepository wraps the gastos_fijos table.
	FixedExpenseRepository interface {
		List(ctx context.Context) ([]model.FixedExpense, error)
		Insert(ctx context.Context, expense *model.FixedExpense) (int64, error)
		SoftDelete(ctx context.Context, id int64) error
	}

	// VariableExpenseRepository wraps the gastos_variables table.
	VariableExpenseRepository interface {
		List(ctx context.Context, dateRange model.DateRange) ([]model.VariableExpense, error)
		Insert(ctx context.Context, expense *model.VariableExpense) (int64, error)
		Delete(ctx context.Context, id int64) error
	}

	// RequestRepository wraps the solicitudes table. Listings are newest-first
	// by request date.
	RequestRepository interface {
		List(ctx context.Context, status model.RequestStatus) ([]model.BookingRequest, error)
		Get(ctx context.Context, id int64) (*model.BookingRequest, error)
		Insert(ctx context.Context, request *model.BookingRequest) (int64, error)
		// MarkResponded writes the response columns only (status, responded
		// timestamp, admin notes); the rest of the row is never rewritten.
		MarkResponded(ctx context.Context, id int64, status model.RequestStatus, respondedAt, adminNotes string) error
	}
)
