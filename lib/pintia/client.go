// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package pintia

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hbue-acm/ptaxml/lib/clock"
	"github.com/hbue-acm/ptaxml/lib/netutil"
)

const (
	// DefaultBaseURL is the root of the PTA JSON API.
	DefaultBaseURL = "https://pintia.cn/api"

	// DefaultTimeout bounds each HTTP attempt.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxRetries is how many times a transient failure is
	// retried before the call fails.
	DefaultMaxRetries = 3

	// DefaultRetryBackoff is the wait before the first retry. Each
	// further retry doubles it.
	DefaultRetryBackoff = 500 * time.Millisecond

	// DefaultDebugDumpPath receives the body of the last fatal response.
	DefaultDebugDumpPath = "pta_error_dump.html"

	// DefaultUserAgent is a desktop Chrome user agent. PTA serves the
	// admin API only to browser sessions.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	referer = "https://pintia.cn/"
	accept  = "application/json, text/plain, */*"

	snippetLength = 100
)

// Config holds configuration for creating a PTA API Client.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// DefaultBaseURL. Must use http or https.
	BaseURL string

	// Transport performs the HTTP exchanges. Defaults to
	// http.DefaultTransport. lib/capture supplies recording and
	// replaying transports here.
	Transport http.RoundTripper

	// Timeout bounds each attempt. Defaults to DefaultTimeout.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	// Zero selects DefaultMaxRetries; a negative value disables
	// retrying.
	MaxRetries int

	// RetryBackoff is the wait before the first retry. Defaults to
	// DefaultRetryBackoff.
	RetryBackoff time.Duration

	// DebugDumpPath receives the raw body of a fatal response,
	// overwriting any earlier dump. Defaults to DefaultDebugDumpPath.
	DebugDumpPath string

	// UserAgent overrides DefaultUserAgent.
	UserAgent string

	// Clock provides time operations. Defaults to clock.Real().
	// Inject clock.Fake() in tests so backoff does not wait.
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed PTA API client with session cookies, retry, and
// structured error handling. It is not safe for concurrent use.
type Client struct {
	baseURL       *url.URL
	httpClient    *http.Client
	maxRetries    int
	retryBackoff  time.Duration
	debugDumpPath string
	userAgent     string
	clock         clock.Clock
	logger        *slog.Logger
}

// NewClient creates a PTA API client from the given configuration.
// Returns an error if the base URL is unusable.
func NewClient(config Config) (*Client, error) {
	rawBaseURL := config.BaseURL
	if rawBaseURL == "" {
		rawBaseURL = DefaultBaseURL
	}
	baseURL, err := url.Parse(strings.TrimRight(rawBaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("pintia: parsing base URL: %w", err)
	}
	if baseURL.Scheme != "https" && baseURL.Scheme != "http" {
		return nil, fmt.Errorf("pintia: base URL must be http or https (got %q)", rawBaseURL)
	}
	if baseURL.Host == "" {
		return nil, fmt.Errorf("pintia: base URL has no host (got %q)", rawBaseURL)
	}

	transport := config.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxRetries := config.MaxRetries
	switch {
	case maxRetries == 0:
		maxRetries = DefaultMaxRetries
	case maxRetries < 0:
		maxRetries = 0
	}
	retryBackoff := config.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = DefaultRetryBackoff
	}
	debugDumpPath := config.DebugDumpPath
	if debugDumpPath == "" {
		debugDumpPath = DefaultDebugDumpPath
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// cookiejar.New only fails on a bad PublicSuffixList option.
	jar, _ := cookiejar.New(nil)

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   timeout,
		},
		maxRetries:    maxRetries,
		retryBackoff:  retryBackoff,
		debugDumpPath: debugDumpPath,
		userAgent:     userAgent,
		clock:         clk,
		logger:        logger,
	}, nil
}

// SetCookies installs session cookies for every later request. Cookies
// set by PTA responses are kept as well. An empty map logs a warning and
// changes nothing.
func (client *Client) SetCookies(cookies map[string]string) {
	if len(cookies) == 0 {
		client.logger.Warn("no session cookies supplied; PTA will likely answer 401")
		return
	}
	jarCookies := make([]*http.Cookie, 0, len(cookies))
	for name, value := range cookies {
		jarCookies = append(jarCookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	client.httpClient.Jar.SetCookies(client.baseURL, jarCookies)
	client.logger.Debug("session cookies installed", "count", len(jarCookies))
}

// get fetches path (relative to the base URL) with the given query and
// decodes the JSON body into result.
func (client *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	requestURL := client.endpoint(path, query)
	body, err := client.fetch(ctx, requestURL)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &APIError{
			StatusCode:  http.StatusOK,
			URL:         requestURL,
			ContentType: "application/json",
			Message:     "decoding response",
			Err:         err,
		}
	}
	return nil
}

func (client *Client) endpoint(path string, query url.Values) string {
	endpoint := client.baseURL.String() + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// fetch performs a GET with retry and returns the body of a 200 JSON
// response. Transient failures (5xx gateway statuses, transport errors)
// are retried; anything else is final.
func (client *Client) fetch(ctx context.Context, requestURL string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			backoff := client.retryBackoff << (attempt - 1)
			select {
			case <-client.clock.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		retriesLeft := attempt < client.maxRetries

		response, err := client.doRaw(ctx, requestURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if retriesLeft {
				client.logger.Warn("request failed, retrying",
					"url", requestURL,
					"attempt", attempt+1,
					"error", err,
				)
				continue
			}
			return nil, &APIError{URL: requestURL, Message: "request failed", Err: err}
		}

		body, readErr := netutil.ReadResponse(response.Body)
		response.Body.Close()
		if readErr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if retriesLeft {
				client.logger.Warn("reading response failed, retrying",
					"url", requestURL,
					"attempt", attempt+1,
					"error", readErr,
				)
				continue
			}
			return nil, &APIError{StatusCode: response.StatusCode, URL: requestURL, Message: "reading response body", Err: readErr}
		}

		contentType := response.Header.Get("Content-Type")
		client.logger.Debug("upstream response",
			"url", requestURL,
			"status", response.StatusCode,
			"content_type", contentType,
			"bytes", len(body),
		)

		if isTransientStatus(response.StatusCode) && retriesLeft {
			client.logger.Warn("transient upstream status, retrying",
				"url", requestURL,
				"status", response.StatusCode,
				"attempt", attempt+1,
			)
			continue
		}

		if response.StatusCode != http.StatusOK || !netutil.IsJSONContentType(contentType) {
			return nil, client.reject(requestURL, response.StatusCode, contentType, body)
		}
		return body, nil
	}
}

// doRaw issues one GET attempt with the browser headers.
func (client *Client) doRaw(ctx context.Context, requestURL string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	request.Header.Set("User-Agent", client.userAgent)
	request.Header.Set("Referer", referer)
	request.Header.Set("Accept", accept)
	return client.httpClient.Do(request)
}

// reject dumps a fatal response body for inspection and converts the
// response into a typed error.
func (client *Client) reject(requestURL string, statusCode int, contentType string, body []byte) error {
	dumpPath := client.dump(body)
	client.logger.Error("upstream rejected request",
		"url", requestURL,
		"status", statusCode,
		"content_type", contentType,
		"dump", dumpPath,
	)

	if statusCode == http.StatusUnauthorized {
		return &AuthError{URL: requestURL, DumpPath: dumpPath}
	}
	apiError := &APIError{
		StatusCode:  statusCode,
		URL:         requestURL,
		ContentType: contentType,
		DumpPath:    dumpPath,
	}
	if !netutil.IsJSONContentType(contentType) {
		apiError.Message = "expected JSON but received " + describeContentType(contentType)
		apiError.Snippet = netutil.Snippet(body, snippetLength)
	} else {
		apiError.Message = "request failed"
	}
	return apiError
}

// dump writes body to the debug dump path and returns the absolute path,
// or "" when the dump could not be written.
func (client *Client) dump(body []byte) string {
	dumpPath, err := filepath.Abs(client.debugDumpPath)
	if err != nil {
		dumpPath = client.debugDumpPath
	}
	if err := os.WriteFile(dumpPath, body, 0o644); err != nil {
		client.logger.Warn("writing debug dump failed", "path", dumpPath, "error", err)
		return ""
	}
	return dumpPath
}

func isTransientStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func describeContentType(contentType string) string {
	if contentType == "" {
		return "a response with no content type"
	}
	return contentType
}
