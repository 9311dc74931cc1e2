package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/grovecli/grove/internal/api"
)

const defaultSheetsBaseURL = "https://sheets.googleapis.com/v4"

// Sheets wraps the Google Sheets API
type Sheets struct {
	client  *api.Client
	baseURL string
}

// NewSheets creates a Sheets service
func NewSheets(client *api.Client) *Sheets {
	return &Sheets{client: client, baseURL: defaultSheetsBaseURL}
}

// ValueRange is a rectangle of cell values
type ValueRange struct {
	Range  string     `json:"range"`
	Values [][]string `json:"-"`
}

// rawValueRange matches the wire shape, where cells are untyped.
type rawValueRange struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

// GetValues reads a cell range (A1 notation) from a spreadsheet.
func (s *Sheets) GetValues(ctx context.Context, spreadsheetID, cellRange string) (*ValueRange, error) {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		s.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(cellRange))

	var raw rawValueRange
	if err := s.client.GetJSON(ctx, endpoint, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", cellRange, err)
	}

	vr := &ValueRange{Range: raw.Range}
	for _, row := range raw.Values {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprint(cell)
		}
		vr.Values = append(vr.Values, cells)
	}
	return vr, nil
}

// AppendValues appends rows after the last row of the given range.
func (s *Sheets) AppendValues(ctx context.Context, spreadsheetID, cellRange string, rows [][]string) error {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s:append?valueInputOption=USER_ENTERED",
		s.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(cellRange))

	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	req := map[string]any{"values": values}
	if err := s.client.PostJSON(ctx, endpoint, req, nil); err != nil {
		return fmt.Errorf("failed to append to range %s: %w", cellRange, err)
	}
	return nil
}
