package sheet

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/beautybox/salon-api/internal/repository"
	"github.com/beautybox/salon-api/internal/sheetstore"
	"github.com/beautybox/salon-api/pkg/logger"
	"github.com/beautybox/salon-api/pkg/metrics"
)

// Repositories bundles every entity repository over one store and one shared
// read cache.
type Repositories struct {
	Category        repository.CategoryRepository
	Service         repository.ServiceRepository
	Client          repository.ClientRepository
	Appointment     repository.AppointmentRepository
	FixedExpense    repository.FixedExpenseRepository
	VariableExpense repository.VariableExpenseRepository
	Request         repository.RequestRepository
}

// New builds the repository set. cacheTTL bounds how stale a memoized read can
// be; writes always flush the whole cache.
func New(store sheetstore.TableStore, cacheTTL time.Duration, log *logger.Logger, m *metrics.Metrics) *Repositories {
	cache := gocache.New(cacheTTL, 2*cacheTTL)
	base := newBaseRepository(store, cache, log, m)
	return &Repositories{
		Category:        &categoryRepository{base},
		Service:         &serviceRepository{base},
		Client:          &clientRepository{base},
		Appointment:     &appointmentRepository{base},
		FixedExpense:    &fixedExpenseRepository{base},
		VariableExpense: &variableExpenseRepository{base},
		Request:         &requestRepository{base},
	}
}
