// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// apiPrefix mirrors the path prefix of the real API root.
const apiPrefix = "/api"

// Response is one canned upstream answer.
type Response struct {
	Status      int
	ContentType string
	Body        string
}

// JSON returns a Response carrying body marshaled as JSON. It panics if
// body cannot be marshaled, which is a bug in the test.
func JSON(status int, body any) Response {
	data, err := json.Marshal(body)
	if err != nil {
		panic("testutil: marshaling canned response: " + err.Error())
	}
	return Response{Status: status, ContentType: "application/json;charset=UTF-8", Body: string(data)}
}

// HTML returns a Response carrying an HTML page, the shape of PTA's
// login redirect target.
func HTML(status int, body string) Response {
	return Response{Status: status, ContentType: "text/html; charset=utf-8", Body: body}
}

// Request is one request received by a FakeUpstream. Path is relative
// to the API root.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

type route struct {
	path      string
	query     url.Values
	responses []Response
	served    int
}

// FakeUpstream is a scripted PTA API on an httptest server.
//
// Routes match on exact path and, when the route was registered with a
// query, on every listed parameter (a subset match). Routes are tried in
// registration order. A route holding several responses serves them in
// order and then keeps repeating the last. Unmatched requests get a 404
// with a JSON body.
type FakeUpstream struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   []*route
	requests []Request
}

// NewFakeUpstream starts a FakeUpstream that is shut down when the test
// completes.
func NewFakeUpstream(t testing.TB) *FakeUpstream {
	t.Helper()
	upstream := &FakeUpstream{}
	upstream.server = httptest.NewServer(http.HandlerFunc(upstream.serve))
	t.Cleanup(upstream.server.Close)
	return upstream
}

// BaseURL returns the API root to configure a client with.
func (upstream *FakeUpstream) BaseURL() string {
	return upstream.server.URL + apiPrefix
}

// Handle registers responses for path. A nil query matches any query.
func (upstream *FakeUpstream) Handle(path string, query url.Values, responses ...Response) {
	if len(responses) == 0 {
		panic("testutil: Handle needs at least one response")
	}
	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	upstream.routes = append(upstream.routes, &route{path: path, query: query, responses: responses})
}

// HandleJSON registers a single 200 JSON response for path.
func (upstream *FakeUpstream) HandleJSON(path string, query url.Values, body any) {
	upstream.Handle(path, query, JSON(http.StatusOK, body))
}

// Requests returns a copy of every request received so far, in arrival
// order.
func (upstream *FakeUpstream) Requests() []Request {
	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	result := make([]Request, len(upstream.requests))
	copy(result, upstream.requests)
	return result
}

// RequestsTo returns the received requests whose path equals path.
func (upstream *FakeUpstream) RequestsTo(path string) []Request {
	var result []Request
	for _, request := range upstream.Requests() {
		if request.Path == path {
			result = append(result, request)
		}
	}
	return result
}

func (upstream *FakeUpstream) serve(writer http.ResponseWriter, request *http.Request) {
	path := strings.TrimPrefix(request.URL.Path, apiPrefix)
	query := request.URL.Query()

	upstream.mu.Lock()
	upstream.requests = append(upstream.requests, Request{
		Method: request.Method,
		Path:   path,
		Query:  query,
		Header: request.Header.Clone(),
	})
	var response *Response
	for _, candidate := range upstream.routes {
		if candidate.path != path || !querySubset(candidate.query, query) {
			continue
		}
		index := min(candidate.served, len(candidate.responses)-1)
		candidate.served++
		response = &candidate.responses[index]
		break
	}
	upstream.mu.Unlock()

	if response == nil {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusNotFound)
		writer.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"no scripted response"}}`))
		return
	}
	if response.ContentType != "" {
		writer.Header().Set("Content-Type", response.ContentType)
	}
	status := response.Status
	if status == 0 {
		status = http.StatusOK
	}
	writer.WriteHeader(status)
	writer.Write([]byte(response.Body))
}

func querySubset(want, got url.Values) bool {
	for key, values := range want {
		if strings.Join(got[key], "\x00") != strings.Join(values, "\x00") {
			return false
		}
	}
	return true
}
