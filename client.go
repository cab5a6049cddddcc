package gsheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/gsheet-api/gsheet-go/a1"
	"github.com/gsheet-api/gsheet-go/credentials"
)

const (
	// DefaultBaseURL is the Google Sheets API v4 endpoint.
	DefaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

	// ScopeSpreadsheets grants read/write access to spreadsheets.
	ScopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"

	// ScopeSpreadsheetsReadOnly grants read-only access to spreadsheets.
	ScopeSpreadsheetsReadOnly = "https://www.googleapis.com/auth/spreadsheets.readonly"
)

// Config is the configuration for a Client. Exactly one credential source is
// required: a key file path, an already loaded key, or an external token
// source.
type Config struct {
	// Credentials is the path to a service account key file.
	Credentials string

	// Key is an already loaded service account key. Takes precedence over
	// Credentials.
	Key *credentials.ServiceAccountKey

	// TokenSource supplies bearer tokens directly, bypassing the service
	// account flow entirely. Takes precedence over Key and Credentials.
	TokenSource oauth2.TokenSource

	// Scope is the OAuth scope requested for minted tokens. Defaults to
	// ScopeSpreadsheets.
	Scope string

	// BaseURL overrides DefaultBaseURL (e.g. for testing).
	BaseURL string

	// HTTPClient is used for API requests and token exchanges.
	HTTPClient *http.Client

	// RefreshMargin, ExchangeTimeout and RetryAuthErrors are passed through
	// to the token cache (see the credentials package).
	RefreshMargin   time.Duration
	ExchangeTimeout time.Duration
	RetryAuthErrors bool

	// Debug logs outgoing requests.
	Debug bool
}

func (cfg *Config) Validate() error {
	if cfg.TokenSource == nil && cfg.Key == nil && strings.TrimSpace(cfg.Credentials) == "" {
		return fmt.Errorf("either Credentials, Key or TokenSource is required")
	}

	return nil
}

// Client is an authenticated Google Sheets API client. It is safe for
// concurrent use.
type Client struct {
	tokens  oauth2.TokenSource
	client  *http.Client
	baseURL string
	debug   bool
}

// New creates a client from the configuration, loading the service account
// key file if one is configured.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scope := cfg.Scope
	if scope == "" {
		scope = ScopeSpreadsheets
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	tokens := cfg.TokenSource
	if tokens == nil {
		key := cfg.Key
		if key == nil {
			k, err := credentials.Load(cfg.Credentials)
			if err != nil {
				return nil, err
			}

			key = k
		}

		tokens = credentials.NewTokenSource(key, scope, credentials.Options{
			HTTPClient:      client,
			RefreshMargin:   cfg.RefreshMargin,
			ExchangeTimeout: cfg.ExchangeTimeout,
			RetryAuthErrors: cfg.RetryAuthErrors,
		})
	}

	return &Client{
		tokens:  tokens,
		client:  client,
		baseURL: baseURL,
		debug:   cfg.Debug,
	}, nil
}

// TokenSource exposes the client's token source so that callers can drive
// other Google API clients (e.g. the generated sheets.Service) with the same
// credential.
func (c *Client) TokenSource() oauth2.TokenSource {
	return c.tokens
}

// GridRange converts a parsed A1 range into the generated API's GridRange
// for the given sheet ID, preserving unbounded axes as absent end indices.
func GridRange(r a1.Range, sheetID int64) (*sheets.GridRange, error) {
	g, err := r.GridRange()
	if err != nil {
		return nil, err
	}

	out := sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    g.StartRowIndex,
		StartColumnIndex: g.StartColumnIndex,

		// zero-valued start indices are meaningful
		ForceSendFields: []string{"StartRowIndex", "StartColumnIndex"},
	}

	if g.EndRowIndex != nil {
		out.EndRowIndex = *g.EndRowIndex
	}

	if g.EndColumnIndex != nil {
		out.EndColumnIndex = *g.EndColumnIndex
	}

	return &out, nil
}

// contextTokenSource is implemented by token sources that accept a
// cancellation context (credentials.TokenSource does).
type contextTokenSource interface {
	TokenContext(ctx context.Context) (*oauth2.Token, error)
}

func (c *Client) token(ctx context.Context) (*oauth2.Token, error) {
	if ts, ok := c.tokens.(contextTokenSource); ok {
		return ts.TokenContext(ctx)
	}

	return c.tokens.Token()
}

// do sends an authenticated request and decodes the JSON response into
// reply. Non-2xx responses are returned as *googleapi.Error.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, reply any) error {
	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("authorising request (%w)", err)
	}

	uri := endpoint
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}

		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, uri, reader)
	if err != nil {
		return err
	}

	token.SetAuthHeader(request)
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	if c.debug {
		log.Printf("%-5s %s %s", "DEBUG", method, uri)
	}

	response, err := c.client.Do(request)
	if err != nil {
		return err
	}

	defer response.Body.Close()

	if err := googleapi.CheckResponse(response); err != nil {
		return err
	}

	if reply == nil {
		return nil
	}

	return json.NewDecoder(response.Body).Decode(reply)
}

// checkRange validates A1 range text before it is sent to the API so that
// malformed ranges fail locally with an a1.InvalidRangeError.
func checkRange(area string) error {
	_, err := a1.ParseRange(area)

	return err
}
