package sheetstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresStore implements TableStore on Postgres for deployments that have
// outgrown the shared spreadsheet. Each logical table is a two-column SQL
// table of positional rows, so the sheet addressing model (header as row 1,
// A1 ranges) carries over unchanged.
type PostgresStore struct {
	db *sqlx.DB
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func sqlTableName(name string) string {
	return pq.QuoteIdentifier("sheet_" + name)
}

func (s *PostgresStore) GetOrCreateTable(ctx context.Context, name string, header []string) error {
	createStmt := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (pos BIGSERIAL PRIMARY KEY, cells JSONB NOT NULL)`,
		sqlTableName(name),
	)
	if _, err := s.db.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	var count int
	countStmt := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, sqlTableName(name))
	if err := s.db.GetContext(ctx, &count, countStmt); err != nil {
		return fmt.Errorf("failed to inspect table %s: %w", name, err)
	}
	if count > 0 {
		return nil
	}

	return s.insertRow(ctx, name, header)
}

func (s *PostgresStore) ReadAll(ctx context.Context, name string) ([]Row, error) {
	cells, err := s.readCells(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, nil
	}

	header := cells[0]
	rows := make([]Row, 0, len(cells)-1)
	for _, raw := range cells[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *PostgresStore) Append(ctx context.Context, name string, values []string) error {
	return s.insertRow(ctx, name, values)
}

func (s *PostgresStore) UpdateRange(ctx context.Context, name string, a1Range string, values [][]string) error {
	block, err := parseA1Range(a1Range)
	if err != nil {
		return err
	}

	positions, cells, err := s.readPositioned(ctx, name)
	if err != nil {
		return err
	}

	for r := block.startRow; r <= block.endRow; r++ {
		vr := r - block.startRow
		if vr >= len(values) {
			break
		}
		idx := r - 1
		if idx < 0 || idx >= len(cells) {
			return ErrRowOutOfRange
		}
		patched := cells[idx]
		copyInto(&patched, block.startCol, values[vr])

		encoded, err := json.Marshal(patched)
		if err != nil {
			return fmt.Errorf("failed to encode row: %w", err)
		}
		updateStmt := fmt.Sprintf(`UPDATE %s SET cells = $1 WHERE pos = $2`, sqlTableName(name))
		if _, err := s.db.ExecContext(ctx, updateStmt, encoded, positions[idx]); err != nil {
			return fmt.Errorf("failed to update row in %s: %w", name, err)
		}
	}
	return nil
}

func (s *PostgresStore) DeleteRow(ctx context.Context, name string, rowIndex int) error {
	if rowIndex < 2 {
		return ErrRowOutOfRange
	}
	positions, _, err := s.readPositioned(ctx, name)
	if err != nil {
		return err
	}
	idx := rowIndex - 1
	if idx >= len(positions) {
		return ErrRowOutOfRange
	}
	deleteStmt := fmt.Sprintf(`DELETE FROM %s WHERE pos = $1`, sqlTableName(name))
	if _, err := s.db.ExecContext(ctx, deleteStmt, positions[idx]); err != nil {
		return fmt.Errorf("failed to delete row from %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) insertRow(ctx context.Context, name string, values []string) error {
	encoded, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}
	insertStmt := fmt.Sprintf(`INSERT INTO %s (cells) VALUES ($1)`, sqlTableName(name))
	if _, err := s.db.ExecContext(ctx, insertStmt, encoded); err != nil {
		return fmt.Errorf("failed to append to %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) readCells(ctx context.Context, name string) ([][]string, error) {
	_, cells, err := s.readPositioned(ctx, name)
	return cells, err
}

// readPositioned loads every row in physical order along with its pos key,
// which UpdateRange and DeleteRow need to address rows the way a sheet does.
func (s *PostgresStore) readPositioned(ctx context.Context, name string) ([]int64, [][]string, error) {
	type record struct {
		Pos   int64  `db:"pos"`
		Cells []byte `db:"cells"`
	}
	var records []record
	selectStmt := fmt.Sprintf(`SELECT pos, cells FROM %s ORDER BY pos`, sqlTableName(name))
	if err := s.db.SelectContext(ctx, &records, selectStmt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}

	positions := make([]int64, 0, len(records))
	cells := make([][]string, 0, len(records))
	for _, rec := range records {
		var row []string
		if err := json.Unmarshal(rec.Cells, &row); err != nil {
			return nil, nil, fmt.Errorf("failed to decode row in %s: %w", name, err)
		}
		positions = append(positions, rec.Pos)
		cells = append(cells, row)
	}
	return positions, cells, nil
}
