package gsheet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"google.golang.org/api/sheets/v4"
)

// ValueOptions adjust how cell values are rendered in read responses.
type ValueOptions struct {
	// MajorDimension is "ROWS" (default) or "COLUMNS".
	MajorDimension string

	// ValueRenderOption is "FORMATTED_VALUE" (default), "UNFORMATTED_VALUE"
	// or "FORMULA".
	ValueRenderOption string

	// DateTimeRenderOption is "SERIAL_NUMBER" (default) or "FORMATTED_STRING".
	DateTimeRenderOption string
}

func (opts *ValueOptions) query() url.Values {
	query := url.Values{}

	if opts == nil {
		return query
	}

	if opts.MajorDimension != "" {
		query.Set("majorDimension", opts.MajorDimension)
	}

	if opts.ValueRenderOption != "" {
		query.Set("valueRenderOption", opts.ValueRenderOption)
	}

	if opts.DateTimeRenderOption != "" {
		query.Set("dateTimeRenderOption", opts.DateTimeRenderOption)
	}

	return query
}

// UpdateOptions adjust how written values are interpreted.
type UpdateOptions struct {
	// ValueInputOption is "USER_ENTERED" (default) or "RAW".
	ValueInputOption string

	// IncludeValuesInResponse echoes the updated values back.
	IncludeValuesInResponse bool
}

func (opts *UpdateOptions) valueInputOption() string {
	if opts == nil || opts.ValueInputOption == "" {
		return "USER_ENTERED"
	}

	return opts.ValueInputOption
}

func (opts *UpdateOptions) includeValuesInResponse() bool {
	return opts != nil && opts.IncludeValuesInResponse
}

// Values retrieves the values in a range of a spreadsheet.
func (c *Client) Values(ctx context.Context, spreadsheetID, area string, opts *ValueOptions) (*sheets.ValueRange, error) {
	if err := checkRange(area); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s", c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(area))

	values := sheets.ValueRange{}
	if err := c.do(ctx, http.MethodGet, endpoint, opts.query(), nil, &values); err != nil {
		return nil, err
	}

	return &values, nil
}

// BatchValues retrieves the values in one or more ranges of a spreadsheet.
func (c *Client) BatchValues(ctx context.Context, spreadsheetID string, areas []string, opts *ValueOptions) (*sheets.BatchGetValuesResponse, error) {
	query := opts.query()

	for _, area := range areas {
		if err := checkRange(area); err != nil {
			return nil, err
		}

		query.Add("ranges", area)
	}

	endpoint := fmt.Sprintf("%s/%s/values:batchGet", c.baseURL, url.PathEscape(spreadsheetID))

	values := sheets.BatchGetValuesResponse{}
	if err := c.do(ctx, http.MethodGet, endpoint, query, nil, &values); err != nil {
		return nil, err
	}

	return &values, nil
}

// UpdateValues writes values to a range of a spreadsheet.
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, area string, values [][]any, opts *UpdateOptions) (*sheets.UpdateValuesResponse, error) {
	if err := checkRange(area); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("valueInputOption", opts.valueInputOption())
	if opts.includeValuesInResponse() {
		query.Set("includeValuesInResponse", "true")
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s", c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(area))

	body := sheets.ValueRange{
		Range:  area,
		Values: values,
	}

	updated := sheets.UpdateValuesResponse{}
	if err := c.do(ctx, http.MethodPut, endpoint, query, &body, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// BatchUpdateValues writes values to one or more ranges of a spreadsheet in
// a single request.
func (c *Client) BatchUpdateValues(ctx context.Context, spreadsheetID string, data []*sheets.ValueRange, opts *UpdateOptions) (*sheets.BatchUpdateValuesResponse, error) {
	for _, values := range data {
		if err := checkRange(values.Range); err != nil {
			return nil, err
		}
	}

	endpoint := fmt.Sprintf("%s/%s/values:batchUpdate", c.baseURL, url.PathEscape(spreadsheetID))

	body := sheets.BatchUpdateValuesRequest{
		ValueInputOption:        opts.valueInputOption(),
		IncludeValuesInResponse: opts.includeValuesInResponse(),
		Data:                    data,
	}

	updated := sheets.BatchUpdateValuesResponse{}
	if err := c.do(ctx, http.MethodPost, endpoint, nil, &body, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// AppendValues appends rows of values after the last row of a table.
func (c *Client) AppendValues(ctx context.Context, spreadsheetID, area string, values [][]any, opts *UpdateOptions) (*sheets.AppendValuesResponse, error) {
	if err := checkRange(area); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("valueInputOption", opts.valueInputOption())

	endpoint := fmt.Sprintf("%s/%s/values/%s:append", c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(area))

	body := sheets.ValueRange{
		Range:  area,
		Values: values,
	}

	appended := sheets.AppendValuesResponse{}
	if err := c.do(ctx, http.MethodPost, endpoint, query, &body, &appended); err != nil {
		return nil, err
	}

	return &appended, nil
}

// ClearValues clears the values (but not formatting) of one or more ranges.
func (c *Client) ClearValues(ctx context.Context, spreadsheetID string, areas ...string) (*sheets.BatchClearValuesResponse, error) {
	for _, area := range areas {
		if err := checkRange(area); err != nil {
			return nil, err
		}
	}

	endpoint := fmt.Sprintf("%s/%s/values:batchClear", c.baseURL, url.PathEscape(spreadsheetID))

	body := sheets.BatchClearValuesRequest{
		Ranges: areas,
	}

	cleared := sheets.BatchClearValuesResponse{}
	if err := c.do(ctx, http.MethodPost, endpoint, nil, &body, &cleared); err != nil {
		return nil, err
	}

	return &cleared, nil
}
