package credentials

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultRefreshMargin is how long before expiry a cached token is
	// treated as stale, covering the window where a token expires between
	// the cache check and the request that uses it.
	DefaultRefreshMargin = 10 * time.Second

	// DefaultExchangeTimeout bounds a single token exchange so that a hung
	// token endpoint cannot stall process exit.
	DefaultExchangeTimeout = 30 * time.Second
)

// Options configures a TokenSource. The zero value uses http.DefaultClient
// and the default margin and timeout.
type Options struct {
	// HTTPClient is used for the token exchange.
	HTTPClient *http.Client

	// RefreshMargin overrides DefaultRefreshMargin.
	RefreshMargin time.Duration

	// ExchangeTimeout overrides DefaultExchangeTimeout. Negative disables
	// the deadline (the exchange is still cancellable via ctx).
	ExchangeTimeout time.Duration

	// RetryAuthErrors keeps the source usable after the server rejects an
	// assertion. By default a 4xx rejection invalidates the source and every
	// call fails fast with the same error until Reset.
	RetryAuthErrors bool
}

// TokenSource mints and caches access tokens for a single service account
// and scope. It implements oauth2.TokenSource and is safe for concurrent
// use: however many callers ask for a token at once, at most one exchange
// is in flight, and every caller blocked on it receives that exchange's
// token or failure.
type TokenSource struct {
	minter  *Minter
	scope   string
	margin  time.Duration
	timeout time.Duration
	retry   bool

	group singleflight.Group

	mu      sync.Mutex
	token   *oauth2.Token
	invalid error
	now     func() time.Time
}

// NewTokenSource creates a caching token source for the key and scope.
func NewTokenSource(key *ServiceAccountKey, scope string, opts Options) *TokenSource {
	margin := opts.RefreshMargin
	if margin <= 0 {
		margin = DefaultRefreshMargin
	}

	timeout := opts.ExchangeTimeout
	if timeout == 0 {
		timeout = DefaultExchangeTimeout
	}

	return &TokenSource{
		minter:  NewMinter(key, opts.HTTPClient),
		scope:   scope,
		margin:  margin,
		timeout: timeout,
		retry:   opts.RetryAuthErrors,
		now:     time.Now,
	}
}

// Token returns a valid access token, refreshing it first if the cached one
// is within the refresh margin of expiry. It implements oauth2.TokenSource.
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	return ts.TokenContext(context.Background())
}

// TokenContext is Token with cancellation: a caller that gives up stops
// waiting, while the in-flight exchange still completes for the others.
func (ts *TokenSource) TokenContext(ctx context.Context) (*oauth2.Token, error) {
	ts.mu.Lock()
	if err := ts.invalid; err != nil {
		ts.mu.Unlock()
		return nil, err
	}

	if token := ts.token; token != nil && ts.now().Before(token.Expiry.Add(-ts.margin)) {
		ts.mu.Unlock()
		return token, nil
	}
	ts.mu.Unlock()

	ch := ts.group.DoChan("refresh", ts.refresh)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()

	case result := <-ch:
		if result.Err != nil {
			return nil, result.Err
		}

		return result.Val.(*oauth2.Token), nil
	}
}

// refresh runs at most once concurrently (singleflight). A caller that joins
// just after a flight completed re-checks the cache before spending another
// network call.
func (ts *TokenSource) refresh() (any, error) {
	ts.mu.Lock()
	if err := ts.invalid; err != nil {
		ts.mu.Unlock()
		return nil, err
	}

	if token := ts.token; token != nil && ts.now().Before(token.Expiry.Add(-ts.margin)) {
		ts.mu.Unlock()
		return token, nil
	}

	// a failed refresh must never fall back to the stale token
	ts.token = nil
	ts.mu.Unlock()

	ctx := context.Background()
	if ts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ts.timeout)
		defer cancel()
	}

	token, err := ts.minter.Mint(ctx, ts.scope)
	if err != nil {
		var rejected *AuthError
		if !ts.retry && errors.As(err, &rejected) && rejected.Permanent() {
			ts.mu.Lock()
			ts.invalid = err
			ts.mu.Unlock()
		}

		return nil, err
	}

	ts.mu.Lock()
	ts.token = token
	ts.mu.Unlock()

	return token, nil
}

// Reset clears the cached token and any invalidated state so that the next
// Token call mints afresh.
func (ts *TokenSource) Reset() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.token = nil
	ts.invalid = nil
}
