package sheetstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.GetOrCreateTable(ctx, "clientes", []string{"id", "nombre"}))

	rows, err := store.ReadAll(ctx, "clientes")
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, store.Append(ctx, "clientes", []string{"1", "Ana"}))
	require.NoError(t, store.Append(ctx, "clientes", []string{"2", "Luz"}))

	rows, err = store.ReadAll(ctx, "clientes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana", rows[0]["nombre"])
	assert.Equal(t, "2", rows[1]["id"])
}

func TestMemoryStoreCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.GetOrCreateTable(ctx, "servicios", []string{"id", "nombre"}))
	require.NoError(t, store.Append(ctx, "servicios", []string{"1", "Manicura"}))

	// Recreating with a different header must not migrate or wipe anything.
	require.NoError(t, store.GetOrCreateTable(ctx, "servicios", []string{"id", "otro"}))

	rows, err := store.ReadAll(ctx, "servicios")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Manicura", rows[0]["nombre"])
}

func TestMemoryStoreUnknownTable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.ReadAll(ctx, "nope")
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.ErrorIs(t, store.Append(ctx, "nope", []string{"x"}), ErrTableNotFound)
}

func TestMemoryStoreUpdateRange(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	header := []string{"id", "nombre", "precio", "activo"}
	require.NoError(t, store.GetOrCreateTable(ctx, "servicios", header))
	require.NoError(t, store.Append(ctx, "servicios", []string{"1", "Manicura", "25", "1"}))
	require.NoError(t, store.Append(ctx, "servicios", []string{"2", "Laminado", "45", "1"}))

	// Data row 2 is physical row 3; patch nombre..precio only.
	require.NoError(t, store.UpdateRange(ctx, "servicios", "B3:C3", [][]string{{"Laminado de Cejas", "50"}}))
	// Single-cell soft delete flip on row 2.
	require.NoError(t, store.UpdateRange(ctx, "servicios", "D3", [][]string{{"0"}}))

	rows, err := store.ReadAll(ctx, "servicios")
	require.NoError(t, err)
	assert.Equal(t, "Manicura", rows[0]["nombre"])
	assert.Equal(t, "Laminado de Cejas", rows[1]["nombre"])
	assert.Equal(t, "50", rows[1]["precio"])
	assert.Equal(t, "0", rows[1]["activo"])
}

func TestMemoryStoreUpdateRangeOutOfBounds(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.GetOrCreateTable(ctx, "t", []string{"id"}))

	err := store.UpdateRange(ctx, "t", "A5", [][]string{{"x"}})
	assert.ErrorIs(t, err, ErrRowOutOfRange)
}

func TestMemoryStoreDeleteRow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.GetOrCreateTable(ctx, "clientes", []string{"id", "nombre"}))
	require.NoError(t, store.Append(ctx, "clientes", []string{"1", "Ana"}))
	require.NoError(t, store.Append(ctx, "clientes", []string{"2", "Luz"}))

	// First data row lives at physical index 2.
	require.NoError(t, store.DeleteRow(ctx, "clientes", 2))

	rows, err := store.ReadAll(ctx, "clientes")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Luz", rows[0]["nombre"])

	// The header row is never deletable.
	assert.ErrorIs(t, store.DeleteRow(ctx, "clientes", 1), ErrRowOutOfRange)
	assert.ErrorIs(t, store.DeleteRow(ctx, "clientes", 9), ErrRowOutOfRange)
}

func TestMemoryStoreShortRowsPadded(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.GetOrCreateTable(ctx, "solicitudes", []string{"id", "nombre", "estado"}))
	require.NoError(t, store.Append(ctx, "solicitudes", []string{"1", "Ana"}))

	rows, err := store.ReadAll(ctx, "solicitudes")
	require.NoError(t, err)
	assert.Equal(t, "", rows[0]["estado"])
}
