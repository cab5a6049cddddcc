package gsheet

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/gsheet-api/gsheet-go/a1"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}),
		BaseURL:     server.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error creating client (%v)", err)
	}

	return client
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		config Config
		ok     bool
	}{
		{Config{Credentials: "testdata/credentials.json"}, true},
		{Config{TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "qwerty"})}, true},
		{Config{Credentials: "   "}, false},
		{Config{}, false},
	}

	for _, test := range tests {
		if err := test.config.Validate(); (err == nil) != test.ok {
			t.Errorf("%+v: incorrect validation result (%v)", test.config, err)
		}
	}
}

func TestRequestAuthorization(t *testing.T) {
	var authorization string

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	if _, err := client.Spreadsheet(t.Context(), "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", nil); err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	if authorization != "Bearer test-token" {
		t.Errorf("incorrect Authorization header - expected:%v, got:%v", "Bearer test-token", authorization)
	}
}

func TestAPIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"code": 404, "message": "Requested entity was not found.", "status": "NOT_FOUND"}}`))
	})

	_, err := client.Spreadsheet(t.Context(), "missing", nil)
	if err == nil {
		t.Fatalf("expected error, got none")
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("incorrect error type - expected *googleapi.Error, got:%T", err)
	}

	if gerr.Code != http.StatusNotFound {
		t.Errorf("incorrect error code - expected:%v, got:%v", http.StatusNotFound, gerr.Code)
	}
}

func TestInvalidRangeFailsLocally(t *testing.T) {
	requests := 0

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	})

	_, err := client.Values(t.Context(), "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", "B3:A1", nil)
	if err == nil {
		t.Fatalf("expected error, got none")
	}

	var rerr *a1.InvalidRangeError
	if !errors.As(err, &rerr) {
		t.Fatalf("incorrect error type - expected *a1.InvalidRangeError, got:%T", err)
	}

	if requests != 0 {
		t.Errorf("expected no API requests for an invalid range, got:%v", requests)
	}
}

func TestGridRange(t *testing.T) {
	rng, err := a1.ParseRange("B2:D10")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	g, err := GridRange(rng, 12345)
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	if g.SheetId != 12345 {
		t.Errorf("incorrect sheet ID - expected:%v, got:%v", 12345, g.SheetId)
	}

	if g.StartRowIndex != 1 || g.EndRowIndex != 10 {
		t.Errorf("incorrect row indices - expected:[%v,%v), got:[%v,%v)", 1, 10, g.StartRowIndex, g.EndRowIndex)
	}

	if g.StartColumnIndex != 1 || g.EndColumnIndex != 4 {
		t.Errorf("incorrect column indices - expected:[%v,%v), got:[%v,%v)", 1, 4, g.StartColumnIndex, g.EndColumnIndex)
	}
}

func TestGridRangeForceSendsZeroStarts(t *testing.T) {
	rng, err := a1.ParseRange("A1:C3")
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	g, err := GridRange(rng, 0)
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	encoded, err := g.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	fields := map[string]any{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	for _, field := range []string{"startRowIndex", "startColumnIndex"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("expected %v to be serialised", field)
		}
	}
}

func TestSpreadsheetIDFromURL(t *testing.T) {
	tests := []struct {
		uri string
		id  string
	}{
		{"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
		{"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
	}

	for _, test := range tests {
		id, err := SpreadsheetIDFromURL(test.uri)
		if err != nil {
			t.Errorf("%v: unexpected error (%v)", test.uri, err)
			continue
		}

		if id != test.id {
			t.Errorf("%v: incorrect spreadsheet ID - expected:%v, got:%v", test.uri, test.id, id)
		}
	}

	invalid := []string{
		"",
		"https://docs.google.com/spreadsheets/d/",
		"https://example.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
	}

	for _, uri := range invalid {
		if _, err := SpreadsheetIDFromURL(uri); err == nil {
			t.Errorf("%v: expected error, got none", uri)
		}
	}
}
