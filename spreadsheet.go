package gsheet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// SpreadsheetOptions narrows a Spreadsheet request.
type SpreadsheetOptions struct {
	// Ranges limits the returned sheets/data to the given A1 ranges.
	Ranges []string

	// IncludeGridData includes cell data in the response.
	IncludeGridData bool
}

// Spreadsheet retrieves a spreadsheet's metadata (and, optionally, data).
func (c *Client) Spreadsheet(ctx context.Context, spreadsheetID string, opts *SpreadsheetOptions) (*sheets.Spreadsheet, error) {
	query := url.Values{}

	if opts != nil {
		for _, area := range opts.Ranges {
			if err := checkRange(area); err != nil {
				return nil, err
			}

			query.Add("ranges", area)
		}

		if opts.IncludeGridData {
			query.Set("includeGridData", "true")
		}
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(spreadsheetID))

	spreadsheet := sheets.Spreadsheet{}
	if err := c.do(ctx, http.MethodGet, endpoint, query, nil, &spreadsheet); err != nil {
		return nil, err
	}

	return &spreadsheet, nil
}

// Sheet finds a sheet by title within a previously retrieved spreadsheet.
// Matching ignores case and surrounding whitespace.
func Sheet(spreadsheet *sheets.Spreadsheet, title string) (*sheets.Sheet, error) {
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && strings.EqualFold(strings.TrimSpace(sheet.Properties.Title), strings.TrimSpace(title)) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("no sheet with title '%s'", title)
}

// SpreadsheetIDFromURL extracts the spreadsheet ID from a docs.google.com
// spreadsheet URL.
func SpreadsheetIDFromURL(uri string) (string, error) {
	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(uri)
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}
