// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package pintia

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hbue-acm/ptaxml/lib/clock"
	"github.com/hbue-acm/ptaxml/lib/testutil"
)

// newTestClient creates a Client pointed at the fake upstream with a
// fake clock and a dump path inside the test's temp directory.
func newTestClient(t *testing.T, upstream *testutil.FakeUpstream) (*Client, *clock.FakeClock, string) {
	t.Helper()
	fake := clock.Fake(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	dumpPath := filepath.Join(t.TempDir(), "dump.html")
	client, err := NewClient(Config{
		BaseURL:       upstream.BaseURL(),
		DebugDumpPath: dumpPath,
		Clock:         fake,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, fake, dumpPath
}

func TestNewClient_BaseURLValidation(t *testing.T) {
	for _, baseURL := range []string{"ftp://pintia.cn/api", "pintia.cn/api", "https://"} {
		if _, err := NewClient(Config{BaseURL: baseURL}); err == nil {
			t.Errorf("NewClient(%q) succeeded, want error", baseURL)
		}
	}
	client, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient with defaults: %v", err)
	}
	if got := client.baseURL.String(); got != DefaultBaseURL {
		t.Errorf("default base URL = %q", got)
	}
	if client.maxRetries != DefaultMaxRetries || client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("defaults not applied: retries %d timeout %v", client.maxRetries, client.httpClient.Timeout)
	}
}

func TestClient_BrowserHeadersAndCookies(t *testing.T) {
	upstream := testutil.NewFakeUpstream(t)
	upstream.HandleJSON("/problem-sets/42/exams", nil, map[string]any{})
	client, _, _ := newTestClient(t, upstream)
	client.SetCookies(map[string]string{"PTASession": "abc123"})

	if err := client.ProbeExams(context.Background(), "42"); err != nil {
		t.Fatalf("ProbeExams: %v", err)
	}

	requests := upstream.Requests()
	if len(requests) != 1 {
		t.Fatalf("got %d requests, want 1", len(requests))
	}
	header := requests[0].Header
	if got := header.Get("User-Agent"); got != DefaultUserAgent {
		t.Errorf("User-Agent = %q", got)
	}
	if got := header.Get("Referer"); got != "https://pintia.cn/" {
		t.Errorf("Referer = %q", got)
	}
	if got := header.Get("Accept"); got != "application/json, text/plain, */*" {
		t.Errorf("Accept = %q", got)
	}
	if got := header.Get("Cookie"); got != "PTASession=abc123" {
		t.Errorf("Cookie = %q", got)
	}
}

func TestClient_EmptyCookiesChangeNothing(t *testing.T) {
	upstream := testutil.NewFakeUpstream(t)
	upstream.HandleJSON("/problem-sets/1/exams", nil, map[string]any{})
	client, _, _ := newTestClient(t, upstream)
	client.SetCookies(map[string]string{"a": "1"})
	client.SetCookies(nil)

	if err := client.ProbeExams(context.Background(), "1"); err != nil {
		t.Fatalf("ProbeExams: %v", err)
	}
	if got := upstream.Requests()[0].Header.Get("Cookie"); got != "a=1" {
		t.Errorf("Cookie = %q, want the earlier cookies intact", got)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	upstream := testutil.NewFakeUpstream(t)
	upstream.Handle("/problem-sets/7/exams", nil,
		testutil.HTML(http.StatusBadGateway, "<html>bad gateway</html>"),
		testutil.HTML(http.StatusServiceUnavailable, "<html>busy</html>"),
		testutil.JSON(http.StatusOK, map[string]any{}),
	)
	client, fake, dumpPath := newTestClient(t, upstream)

	if err := client.ProbeExams(context.Background(), "7"); err != nil {
		t.Fatalf("ProbeExams: %v", err)
	}
	sleeps := fake.Sleeps()
	if len(sleeps) != 2 || sleeps[0] != 500*time.Millisecond || sleeps[1] != time.Second {
		t.Fatalf("backoff = %v, want [500ms 1s]", sleeps)
	}
	if _, err := os.Stat(dumpPath); !os.IsNotExist(err) {
		t.Fatalf("dump written for a request that eventually succeeded: %v", err)
	}
}

func TestClient_RetryExhausted(t *testing.T) {
	upstream := testutil.NewFakeUpstream(t)
	upstream.Handle("/problem-sets/7/exams", nil, testutil.HTML(http.StatusGatewayTimeout, "<html>timeout</html>"))
	client, fake, dumpPath := newTestClient(t, upstream)

	err := client.ProbeExams(context.Background(), "7")
	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiError.StatusCode != http.StatusGatewayTimeout {
		t.Errorf("StatusCode = %d", apiError.StatusCode)
	}
	if got := len(upstream.Requests()); got != 4 {
		t.Errorf("made %d attempts, want 4", got)
	}
	if total := fake.TotalSlept(); total != 3500*time.Millisecond {
		t.Errorf("total backoff = %v, want 3.5s", total)
	}
	data, readErr := os.ReadFile(dumpPath)
	if readErr != nil {
		t.Fatalf("reading dump: %v", readErr)
	}
	if string(data) != "<html>timeout</html>" {
		t.Errorf("dump = %q", data)
	}
	if apiError.DumpPath != dumpPath {
		t.Errorf("DumpPath = %q, want %q", apiError.DumpPath, dumpPath)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	upstream := testutil.NewFakeUpstream(t)
	upstream.Handle("/problem-sets/admin", nil, testutil.HTML(http.StatusUnauthorized, "<html>\n<title>login</title></html>"))
	client, fake, dumpPath := newTestClient(t, upstream)

	_, err := client.ListProblemSets(context.Background())
	if !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if IsAPI(err) {
		t.Error("auth error also classified as API error")
	}
	if got := len(fake.Sleeps()); got != 0 {
		t.Errorf("401 was retried %d times", got)
	}
	data, _ := os.ReadFile(dumpPath)
	if !strings.Contains(string(data), "<title>login</title>") {
		t.Errorf("dump = %q", data)
	}
}

func TestClient_HTMLInsteadOfJSON(t *testing.T) {
	page := "<!DOCTYPE html>\n<html>\n" + strings.Repeat("x", 200)
	upstream := testutil.NewFakeUpstream(t)
	upstream.Handle("/problem-sets/9", nil, testutil.HTML(http.StatusOK, page))
	client, _, _ := newTestClient(t, upstream)

	_, err := client.ProblemSet(context.Background(), "9")
	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if len([]rune(apiError.Snippet)) != 100 {
		t.Errorf("snippet length = %d, want 100", len([]rune(apiError.Snippet)))
	}
	if strings.Contains(apiError.Snippet, "\n") {
		t.Errorf("snippet contains a newline: %q", apiError.Snippet)
	}
	if !strings.HasPrefix(apiError.Snippet, "<!DOCTYPE html> <html> ") {
		t.Errorf("snippet = %q", apiError.Snippet)
	}
	if !strings.Contains(err.Error(), "expected JSON") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestClient_NonOKJSON(t *testing.T) {
	upstream := testutil.NewFakeUpstream(t)
	client, _, _ := newTestClient(t, upstream)

	// Unrouted paths answer 404 with a JSON body.
	err := client.ProbeExams(context.Background(), "404")
	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiError.StatusCode != http.StatusNotFound || apiError.Snippet != "" {
		t.Errorf("got %+v", apiError)
	}
	if got := err.Error(); got != "pintia: HTTP 404: request failed" {
		t.Errorf("Error() = %q", got)
	}
}

func TestClient_DecodeFailure(t *testing.T) {
	upstream := testutil.NewFakeUpstream(t)
	upstream.Handle("/problem-sets/3", nil, testutil.Response{Status: http.StatusOK, ContentType: "application/json", Body: `{"problemSet": [`})
	client, _, _ := newTestClient(t, upstream)

	_, err := client.ProblemSet(context.Background(), "3")
	var apiError *APIError
	if !errors.As(err, &apiError) || apiError.Err == nil {
		t.Fatalf("expected decoding *APIError, got %v", err)
	}
}

type failingTransport struct {
	calls int
}

func (transport *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	transport.calls++
	return nil, errors.New("connection reset by peer")
}

func TestClient_TransportFailureRetried(t *testing.T) {
	transport := &failingTransport{}
	fake := clock.Fake(time.Unix(0, 0))
	client, err := NewClient(Config{
		BaseURL:       "https://pintia.example/api",
		Transport:     transport,
		MaxRetries:    2,
		RetryBackoff:  100 * time.Millisecond,
		DebugDumpPath: filepath.Join(t.TempDir(), "dump.html"),
		Clock:         fake,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	err = client.ProbeExams(context.Background(), "1")
	if !IsAPI(err) {
		t.Fatalf("expected API error, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection reset by peer") {
		t.Errorf("cause missing from %q", err.Error())
	}
	if transport.calls != 3 {
		t.Errorf("transport called %d times, want 3", transport.calls)
	}
	if total := fake.TotalSlept(); total != 300*time.Millisecond {
		t.Errorf("total backoff = %v, want 300ms", total)
	}
}

func TestClient_RetryDisabled(t *testing.T) {
	transport := &failingTransport{}
	client, err := NewClient(Config{
		Transport:  transport,
		MaxRetries: -1,
		Clock:      clock.Fake(time.Unix(0, 0)),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := client.ProbeExams(context.Background(), "1"); err == nil {
		t.Fatal("expected error")
	}
	if transport.calls != 1 {
		t.Errorf("transport called %d times, want 1", transport.calls)
	}
}

func TestClient_CanceledContext(t *testing.T) {
	transport := &failingTransport{}
	client, err := NewClient(Config{Transport: transport, Clock: clock.Fake(time.Unix(0, 0))})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = client.ProbeExams(ctx, "1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
