// Package sheet implements the entity repositories on the tabular store
// contract. Every repository shares one read cache; any write flushes it so
// the next read reflects the write.
package sheet

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/sheetstore"
	"github.com/beautybox/salon-api/pkg/logger"
	"github.com/beautybox/salon-api/pkg/metrics"
)

type tableSpec struct {
	name   string
	header []string
}

// The sheet schemas. Header order is load-bearing: appends are positional and
// partial updates address columns by letter.
var (
	categoriasTable = tableSpec{"categorias", []string{
		"id", "nombre", "descripcion", "created_at"}}
	serviciosTable = tableSpec{"servicios", []string{
		"id", "nombre", "categoria_id", "precio", "duracion_minutos",
		"costo_insumos", "activo", "descripcion", "created_at"}}
	clientesTable = tableSpec{"clientes", []string{
		"id", "nombre", "telefono", "email", "fecha_primera_visita",
		"canal_adquisicion", "notas", "created_at"}}
	citasTable = tableSpec{"citas", []string{
		"id", "fecha", "hora", "cliente_id", "servicio_id", "precio_cobrado",
		"propina", "canal_origen", "metodo_pago", "notas", "created_at"}}
	gastosFijosTable = tableSpec{"gastos_fijos", []string{
		"id", "concepto", "monto", "frecuencia", "activo", "notas", "created_at"}}
	gastosVariablesTable = tableSpec{"gastos_variables", []string{
		"id", "fecha", "concepto", "monto", "categoria", "notas", "created_at"}}
	solicitudesTable = tableSpec{"solicitudes", []string{
		"id", "nombre", "telefono", "email", "servicio_solicitado",
		"preferencia_horario", "mensaje", "estado", "fecha_solicitud",
		"fecha_respuesta", "notas_admin"}}
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	store sheetstore.TableStore
	cache *gocache.Cache
	log   *logger.Logger
	m     *metrics.Metrics
}

func newBaseRepository(store sheetstore.TableStore, cache *gocache.Cache, log *logger.Logger, m *metrics.Metrics) BaseRepository {
	return BaseRepository{store: store, cache: cache, log: log, m: m}
}

// rows ensures the table exists and returns its data rows, memoized under the
// configured TTL.
func (r *BaseRepository) rows(ctx context.Context, t tableSpec) ([]sheetstore.Row, error) {
	if cached, found := r.cache.Get(t.name); found {
		if r.m != nil {
			r.m.CacheHits.WithLabelValues(t.name).Inc()
		}
		return cached.([]sheetstore.Row), nil
	}
	if r.m != nil {
		r.m.CacheMisses.WithLabelValues(t.name).Inc()
	}

	if err := r.store.GetOrCreateTable(ctx, t.name, t.header); err != nil {
		return nil, fmt.Errorf("failed to ensure table %s: %w", t.name, err)
	}
	rows, err := r.store.ReadAll(ctx, t.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", t.name, err)
	}
	r.cache.Set(t.name, rows, gocache.DefaultExpiration)
	return rows, nil
}

// invalidate drops every memoized read. Called after every write so reads
// following a write always hit the store.
func (r *BaseRepository) invalidate() {
	r.cache.Flush()
}

// nextID derives the next row id: max of existing ids plus one, starting at 1.
// Ids are never reused after deletion.
func nextID(rows []sheetstore.Row) int64 {
	var max int64
	for _, row := range rows {
		if id := parseInt(row["id"]); id > max {
			max = id
		}
	}
	return max + 1
}

// rowIndexByID maps an entity id to its physical sheet row (header is row 1,
// so data row n sits at index n+1).
func rowIndexByID(rows []sheetstore.Row, id int64) (int, bool) {
	for i, row := range rows {
		if parseInt(row["id"]) == id {
			return i + 2, true
		}
	}
	return 0, false
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func activeFlag(s string) bool {
	return s == "1"
}

func flagValue(active bool) string {
	if active {
		return "1"
	}
	return "0"
}

func nowTimestamp() string {
	return time.Now().Format(time.RFC3339)
}

func today() string {
	return time.Now().Format(model.DateLayout)
}

// inDateRange applies the inclusive [start, end] filter. Rows whose date does
// not parse are dropped from filtered listings rather than failing the read.
func inDateRange(date string, rng model.DateRange) bool {
	if rng.IsZero() {
		return true
	}
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return false
	}
	if rng.Start != "" {
		if start, err := time.Parse(model.DateLayout, rng.Start); err == nil && d.Before(start) {
			return false
		}
	}
	if rng.End != "" {
		if end, err := time.Parse(model.DateLayout, rng.End); err == nil && d.After(end) {
			return false
		}
	}
	return true
}
