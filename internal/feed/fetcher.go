// =============================================================================
// Graduate Roster - Feed Fetcher
// =============================================================================
//
// This module downloads the graduates CSV feed. It is the only I/O step of
// the pipeline.
//
// ERRORS:
//   - ConfigurationError: no feed URL configured. Returned before any
//     network call.
//   - TransportError: the request failed or the server answered with a
//     non-2xx status.
//
//   The fetcher never retries; the caller owns retry policy.
//
// =============================================================================

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("feed configuration error")

	// ErrTransport is matched by every *TransportError.
	ErrTransport = errors.New("feed transport error")
)

// ConfigurationError reports a missing or unusable feed setting.
type ConfigurationError struct {
	// Setting is the name of the offending configuration value.
	Setting string

	// Message is a human-readable explanation.
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Setting, e.Message)
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// TransportError reports a failed download.
type TransportError struct {
	// URL is the feed location that was requested.
	URL string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch graduates CSV (%d)", e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch graduates CSV: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrTransport) match.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// =============================================================================
// FETCHER
// =============================================================================

// URLSetting is the name under which the feed URL is configured.
const URLSetting = "PUBLIC_GRADUATES_CSV_URL"

// Options configures a Fetcher.
type Options struct {
	// URL is the feed location.
	URL string

	// Timeout bounds a single fetch. Zero means no timeout beyond ctx.
	Timeout time.Duration

	// UserAgent is sent with the request when set.
	UserAgent string

	// Client is the HTTP client to use. Defaults to http.DefaultClient.
	Client *http.Client
}

// Fetcher downloads the feed text.
type Fetcher struct {
	opts Options
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts Options) *Fetcher {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	return &Fetcher{opts: opts}
}

// Fetch downloads the feed and returns its body as text.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	if f.opts.URL == "" {
		return "", &ConfigurationError{
			Setting: URLSetting,
			Message: "is not set. Add it to your .env file or to feed.url in the config file.",
		}
	}

	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.opts.URL, nil)
	if err != nil {
		return "", &ConfigurationError{Setting: URLSetting, Message: err.Error()}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	resp, err := f.opts.Client.Do(req)
	if err != nil {
		return "", &TransportError{URL: f.opts.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &TransportError{URL: f.opts.URL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{URL: f.opts.URL, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return string(body), nil
}
