package sheets

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/justt1n/driffle-tool/internal/config"
)

// Store is the spreadsheet boundary: rule rows in, result notes out. All API
// access is serialized by an internal mutex; the Google Sheets backend does
// not tolerate concurrent reads and writes on the same spreadsheet.
type Store struct {
	mu            sync.Mutex
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	firstRow      int
}

func NewStore(ctx context.Context, cfg config.Sheets) (*Store, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("sheets.NewService: %w", err)
	}

	return &Store{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		firstRow:      cfg.FirstRow,
	}, nil
}

func (s *Store) getValues(ctx context.Context, readRange string) ([][]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("values.Get %s: %w", readRange, err)
	}

	return resp.Values, nil
}

func (s *Store) batchUpdate(ctx context.Context, data []*sheets.ValueRange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.service.Spreadsheets.Values.
		BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: "RAW",
			Data:             data,
		}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("values.BatchUpdate: %w", err)
	}

	return nil
}
