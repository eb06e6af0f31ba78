// Package spreadsheet reads product sheets for the importer.
package spreadsheet

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleConfig locates a Google Sheet readable with an API key.
type GoogleConfig struct {
	SpreadsheetID string
	SheetName     string
	APIKey        string

	// Endpoint overrides the API base URL (tests, proxies).
	Endpoint string
}

// GoogleSheet reads one sheet through the Sheets values API.
type GoogleSheet struct {
	cfg GoogleConfig
}

// NewGoogleSheet validates cfg. The API key must come from configuration,
// never from source code.
func NewGoogleSheet(cfg GoogleConfig) (*GoogleSheet, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("sheets API key is required")
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "inventory"
	}
	return &GoogleSheet{cfg: cfg}, nil
}

// Name implements importer.Source.
func (g *GoogleSheet) Name() string {
	return fmt.Sprintf("google-sheet:%s/%s", g.cfg.SpreadsheetID, g.cfg.SheetName)
}

// Fetch implements importer.Source.
func (g *GoogleSheet) Fetch(ctx context.Context) ([][]string, error) {
	opts := []option.ClientOption{option.WithAPIKey(g.cfg.APIKey)}
	if g.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.cfg.Endpoint))
	}

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	resp, err := srv.Spreadsheets.Values.Get(g.cfg.SpreadsheetID, g.cfg.SheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get sheet values: %w", err)
	}
	return cellsToStrings(resp.Values), nil
}

// cellsToStrings renders API cells as text. The values API returns
// formatted strings by default; other types are printed as-is.
func cellsToStrings(values [][]any) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch c := v.(type) {
			case nil:
			case string:
				cells[j] = c
			default:
				cells[j] = fmt.Sprint(c)
			}
		}
		out[i] = cells
	}
	return out
}
