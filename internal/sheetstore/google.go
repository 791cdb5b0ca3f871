package sheetstore

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/beautybox/salon-api/pkg/logger"
)

// GoogleConfig configures the Google Sheets backend. Authentication uses a
// service account, the same mechanism the salon's spreadsheet is shared with.
type GoogleConfig struct {
	SpreadsheetID      string
	ServiceAccountPath string
	// NewTableRows/Cols size freshly created sheets.
	NewTableRows int64
	NewTableCols int64
}

func (c GoogleConfig) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet id is required")
	}
	if c.ServiceAccountPath == "" {
		return fmt.Errorf("service account key path is required")
	}
	return nil
}

// GoogleStore implements TableStore on a single Google spreadsheet, one sheet
// per table.
type GoogleStore struct {
	service *sheets.Service
	config  GoogleConfig
	logger  *logger.Logger

	mu       sync.Mutex
	sheetIDs map[string]int64
}

func NewGoogleStore(ctx context.Context, config GoogleConfig, log *logger.Logger) (*GoogleStore, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.NewTableRows == 0 {
		config.NewTableRows = 1000
	}
	if config.NewTableCols == 0 {
		config.NewTableCols = 20
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleStore{
		service:  service,
		config:   config,
		logger:   log,
		sheetIDs: make(map[string]int64),
	}, nil
}

// createSheetsService builds the Sheets API client from the service account
// key.
func createSheetsService(ctx context.Context, config GoogleConfig) (*sheets.Service, error) {
	jsonKey, err := os.ReadFile(config.ServiceAccountPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

func (s *GoogleStore) GetOrCreateTable(ctx context.Context, name string, header []string) error {
	if _, err := s.sheetID(ctx, name); err == nil {
		return nil
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: name,
					GridProperties: &sheets.GridProperties{
						RowCount:    s.config.NewTableRows,
						ColumnCount: s.config.NewTableCols,
					},
				},
			},
		}},
	}
	resp, err := s.service.Spreadsheets.BatchUpdate(s.config.SpreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil {
		s.mu.Lock()
		s.sheetIDs[name] = resp.Replies[0].AddSheet.Properties.SheetId
		s.mu.Unlock()
	}

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{headerCells}}
	_, err = s.service.Spreadsheets.Values.Update(
		s.config.SpreadsheetID, fmt.Sprintf("%s!A1", name), vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write header for %s: %w", name, err)
	}

	s.logger.Info("created sheet", "table", name)
	return nil
}

func (s *GoogleStore) ReadAll(ctx context.Context, name string) ([]Row, error) {
	resp, err := s.service.Spreadsheets.Values.Get(
		s.config.SpreadsheetID, name).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, v := range resp.Values[0] {
		header[i] = fmt.Sprint(v)
	}

	rows := make([]Row, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(raw) {
				row[col] = fmt.Sprint(raw[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *GoogleStore) Append(ctx context.Context, name string, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}
	_, err := s.service.Spreadsheets.Values.Append(
		s.config.SpreadsheetID, name, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", name, err)
	}
	return nil
}

func (s *GoogleStore) UpdateRange(ctx context.Context, name string, a1Range string, values [][]string) error {
	cells := make([][]interface{}, len(values))
	for i, row := range values {
		cells[i] = make([]interface{}, len(row))
		for j, v := range row {
			cells[i][j] = v
		}
	}
	vr := &sheets.ValueRange{Values: cells}
	_, err := s.service.Spreadsheets.Values.Update(
		s.config.SpreadsheetID, fmt.Sprintf("%s!%s", name, a1Range), vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update %s!%s: %w", name, a1Range, err)
	}
	return nil
}

func (s *GoogleStore) DeleteRow(ctx context.Context, name string, rowIndex int) error {
	if rowIndex < 2 {
		return ErrRowOutOfRange
	}
	sheetID, err := s.sheetID(ctx, name)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex - 1),
					EndIndex:   int64(rowIndex),
				},
			},
		}},
	}
	if _, err := s.service.Spreadsheets.BatchUpdate(s.config.SpreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete row %d from %s: %w", rowIndex, name, err)
	}
	return nil
}

// sheetID resolves a table name to its numeric sheet id, caching lookups.
func (s *GoogleStore) sheetID(ctx context.Context, name string) (int64, error) {
	s.mu.Lock()
	if id, ok := s.sheetIDs[name]; ok {
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	spreadsheet, err := s.service.Spreadsheets.Get(s.config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to access spreadsheet %s: %w", s.config.SpreadsheetID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range spreadsheet.Sheets {
		if sh.Properties != nil {
			s.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	if id, ok := s.sheetIDs[name]; ok {
		return id, nil
	}
	return 0, ErrTableNotFound
}
