// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/hbue-acm/ptaxml/lib/netutil"
)

// Recorder is an http.RoundTripper that passes requests to a base
// transport and keeps a copy of every response. Transport errors are
// returned unrecorded.
type Recorder struct {
	base http.RoundTripper

	mu        sync.Mutex
	exchanges []Exchange
}

// NewRecorder wraps base, or http.DefaultTransport when base is nil.
func NewRecorder(base http.RoundTripper) *Recorder {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Recorder{base: base}
}

// RoundTrip implements http.RoundTripper. The response body is read in
// full and replaced with an in-memory copy.
func (recorder *Recorder) RoundTrip(request *http.Request) (*http.Response, error) {
	response, err := recorder.base.RoundTrip(request)
	if err != nil {
		return nil, err
	}
	body, err := netutil.ReadResponse(response.Body)
	response.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("capture: reading response body: %w", err)
	}
	response.Body = io.NopCloser(bytes.NewReader(body))
	response.ContentLength = int64(len(body))

	recorder.mu.Lock()
	recorder.exchanges = append(recorder.exchanges, Exchange{
		Method:      request.Method,
		Target:      request.URL.RequestURI(),
		Status:      response.StatusCode,
		ContentType: response.Header.Get("Content-Type"),
		Body:        body,
	})
	recorder.mu.Unlock()
	return response, nil
}

// Archive returns the exchanges recorded so far.
func (recorder *Recorder) Archive() *Archive {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	exchanges := make([]Exchange, len(recorder.exchanges))
	copy(exchanges, recorder.exchanges)
	return &Archive{Version: ArchiveVersion, Exchanges: exchanges}
}

// Save writes the exchanges recorded so far to path.
func (recorder *Recorder) Save(path string, tag CompressionTag) error {
	return Save(path, recorder.Archive(), tag)
}
