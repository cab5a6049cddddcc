package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/context/ctxhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jws"
)

const (
	grantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// Lifetime claimed for the signed assertion. The authorization server may
	// grant less - the token expiry returned by Mint always reflects the
	// server's expires_in, never this value.
	assertionLifetime = time.Hour
)

// Minter exchanges a service account key for short-lived access tokens. Each
// Mint builds a fresh RS256 signed assertion and performs a single POST to
// the key's token endpoint - it never retries or caches (TokenSource layers
// the caching on top).
type Minter struct {
	key    *ServiceAccountKey
	client *http.Client
	now    func() time.Time
}

// NewMinter creates a minter for the given key. A nil client defaults to
// http.DefaultClient.
func NewMinter(key *ServiceAccountKey, client *http.Client) *Minter {
	if client == nil {
		client = http.DefaultClient
	}

	return &Minter{
		key:    key,
		client: client,
		now:    time.Now,
	}
}

// Mint signs a bearer assertion for the scope and exchanges it for an access
// token. Rejections from the server are returned as *AuthError with the
// server's error payload, transport failures as retryable *NetworkError and
// unusable key material as *SigningError.
func (m *Minter) Mint(ctx context.Context, scope string) (*oauth2.Token, error) {
	issued := m.now()

	claims := &jws.ClaimSet{
		Iss:   m.key.ClientEmail,
		Scope: scope,
		Aud:   m.key.TokenURI,
		Iat:   issued.Unix(),
		Exp:   issued.Add(assertionLifetime).Unix(),
	}

	header := &jws.Header{
		Algorithm: "RS256",
		Typ:       "JWT",
		KeyID:     m.key.PrivateKeyID,
	}

	assertion, err := jws.Encode(header, claims, m.key.key)
	if err != nil {
		return nil, &SigningError{Err: err}
	}

	form := url.Values{
		"grant_type": {grantType},
		"assertion":  {assertion},
	}

	response, err := ctxhttp.Post(ctx, m.client, m.key.TokenURI, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	received := m.now()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &AuthError{
			StatusCode: response.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	reply := struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}{}

	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("token response (%w)", err)
	}

	if reply.AccessToken == "" {
		return nil, &AuthError{
			StatusCode: response.StatusCode,
			Body:       "token response missing access_token",
		}
	}

	return &oauth2.Token{
		AccessToken: reply.AccessToken,
		TokenType:   reply.TokenType,
		Expiry:      received.Add(time.Duration(reply.ExpiresIn) * time.Second),
	}, nil
}
