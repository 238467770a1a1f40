// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
)

// Replayer is an http.RoundTripper that serves responses from an
// archive instead of the network.
type Replayer struct {
	mu     sync.Mutex
	queues map[string][]Exchange
}

// NewReplayer returns a Replayer serving archive's exchanges.
func NewReplayer(archive *Archive) *Replayer {
	queues := make(map[string][]Exchange)
	for _, exchange := range archive.Exchanges {
		key := replayKey(exchange.Method, exchange.Target)
		queues[key] = append(queues[key], exchange)
	}
	return &Replayer{queues: queues}
}

// RoundTrip implements http.RoundTripper.
func (replayer *Replayer) RoundTrip(request *http.Request) (*http.Response, error) {
	if err := request.Context().Err(); err != nil {
		return nil, err
	}
	key := replayKey(request.Method, request.URL.RequestURI())

	replayer.mu.Lock()
	queue := replayer.queues[key]
	if len(queue) == 0 {
		replayer.mu.Unlock()
		return nil, fmt.Errorf("capture: no recorded response for %s", key)
	}
	exchange := queue[0]
	replayer.queues[key] = queue[1:]
	replayer.mu.Unlock()

	header := make(http.Header)
	if exchange.ContentType != "" {
		header.Set("Content-Type", exchange.ContentType)
	}
	header.Set("Content-Length", strconv.Itoa(len(exchange.Body)))
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", exchange.Status, http.StatusText(exchange.Status)),
		StatusCode:    exchange.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(exchange.Body)),
		ContentLength: int64(len(exchange.Body)),
		Request:       request,
	}, nil
}

// Remaining returns how many recorded exchanges have not been served.
func (replayer *Replayer) Remaining() int {
	replayer.mu.Lock()
	defer replayer.mu.Unlock()
	total := 0
	for _, queue := range replayer.queues {
		total += len(queue)
	}
	return total
}

func replayKey(method, target string) string {
	return method + " " + target
}
