package sheetstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-process TableStore used by tests and local
// development. It mirrors the sheet backends cell for cell, including the
// header-as-row-1 addressing.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]*memTable
}

type memTable struct {
	header []string
	rows   [][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]*memTable)}
}

func (s *MemoryStore) GetOrCreateTable(_ context.Context, name string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[name]; ok {
		return nil
	}
	h := make([]string, len(header))
	copy(h, header)
	s.tables[name] = &memTable{header: h}
	return nil
}

func (s *MemoryStore) ReadAll(_ context.Context, name string) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[name]
	if !ok {
		return nil, ErrTableNotFound
	}
	out := make([]Row, 0, len(t.rows))
	for _, cells := range t.rows {
		row := make(Row, len(t.header))
		for i, col := range t.header {
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, name string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return ErrTableNotFound
	}
	cells := make([]string, len(values))
	copy(cells, values)
	t.rows = append(t.rows, cells)
	return nil
}

func (s *MemoryStore) UpdateRange(_ context.Context, name string, a1Range string, values [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return ErrTableNotFound
	}
	block, err := parseA1Range(a1Range)
	if err != nil {
		return err
	}
	for r := block.startRow; r <= block.endRow; r++ {
		vr := r - block.startRow
		if vr >= len(values) {
			break
		}
		if r == 1 {
			// Header row writes are allowed but never issued by repositories.
			copyInto(&t.header, block.startCol, values[vr])
			continue
		}
		dataIdx := r - 2
		if dataIdx < 0 || dataIdx >= len(t.rows) {
			return ErrRowOutOfRange
		}
		copyInto(&t.rows[dataIdx], block.startCol, values[vr])
	}
	return nil
}

func (s *MemoryStore) DeleteRow(_ context.Context, name string, rowIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return ErrTableNotFound
	}
	dataIdx := rowIndex - 2
	if dataIdx < 0 || dataIdx >= len(t.rows) {
		return ErrRowOutOfRange
	}
	t.rows = append(t.rows[:dataIdx], t.rows[dataIdx+1:]...)
	return nil
}

// copyInto writes cells starting at the 1-based column, growing the row as
// needed.
func copyInto(row *[]string, startCol int, cells []string) {
	need := startCol - 1 + len(cells)
	for len(*row) < need {
		*row = append(*row, "")
	}
	for i, c := range cells {
		(*row)[startCol-1+i] = c
	}
}
