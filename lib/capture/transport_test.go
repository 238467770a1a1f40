// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/hbue-acm/ptaxml/lib/clock"
	"github.com/hbue-acm/ptaxml/lib/pintia"
	"github.com/hbue-acm/ptaxml/lib/testutil"
)

func newClient(t *testing.T, baseURL string, transport http.RoundTripper) *pintia.Client {
	t.Helper()
	client, err := pintia.NewClient(pintia.Config{
		BaseURL:       baseURL,
		Transport:     transport,
		MaxRetries:    -1,
		DebugDumpPath: filepath.Join(t.TempDir(), "dump.html"),
		Clock:         clock.Fake(time.Unix(0, 0)),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestRecordThenReplay(t *testing.T) {
	upstream := testutil.NewFakeUpstream(t)
	upstream.HandleJSON("/problem-sets/admin", nil, map[string]any{
		"problemSets": []map[string]any{{"id": "42", "name": "Spring Selection"}},
	})
	upstream.Handle("/problem-sets/42/submissions", nil,
		testutil.JSON(http.StatusOK, map[string]any{"submissions": []any{}, "hasBefore": false}),
	)
	upstream.Handle("/problem-sets/13/exams", nil, testutil.HTML(http.StatusUnauthorized, "login"))

	recorder := NewRecorder(nil)
	live := newClient(t, upstream.BaseURL(), recorder)
	ctx := context.Background()

	liveSets, err := live.ListProblemSets(ctx)
	if err != nil {
		t.Fatalf("live ListProblemSets: %v", err)
	}
	if _, err := live.Submissions(ctx, "42", ""); err != nil {
		t.Fatalf("live Submissions: %v", err)
	}
	if err := live.ProbeExams(ctx, "13"); !pintia.IsAuth(err) {
		t.Fatalf("live probe: %v", err)
	}

	archivePath := filepath.Join(t.TempDir(), "session.ptaxcap")
	if err := recorder.Save(archivePath, CompressionZstd); err != nil {
		t.Fatalf("Save: %v", err)
	}
	archive, err := Load(archivePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(archive.Exchanges) != 3 {
		t.Fatalf("recorded %d exchanges, want 3", len(archive.Exchanges))
	}

	replayer := NewReplayer(archive)
	offline := newClient(t, upstream.BaseURL(), replayer)
	upstreamRequests := len(upstream.Requests())

	replayedSets, err := offline.ListProblemSets(ctx)
	if err != nil {
		t.Fatalf("replayed ListProblemSets: %v", err)
	}
	if len(replayedSets) != len(liveSets) || replayedSets[0] != liveSets[0] {
		t.Errorf("replayed %+v, live %+v", replayedSets, liveSets)
	}
	if _, err := offline.Submissions(ctx, "42", ""); err != nil {
		t.Fatalf("replayed Submissions: %v", err)
	}
	if err := offline.ProbeExams(ctx, "13"); !pintia.IsAuth(err) {
		t.Fatalf("replayed probe: %v", err)
	}
	if got := len(upstream.Requests()); got != upstreamRequests {
		t.Errorf("replay reached the network: %d new requests", got-upstreamRequests)
	}
	if replayer.Remaining() != 0 {
		t.Errorf("%d exchanges left unserved", replayer.Remaining())
	}

	// The archive is consumed; a repeat request is unrecorded.
	if _, err := offline.Submissions(ctx, "42", ""); !pintia.IsAPI(err) {
		t.Fatalf("expected API error for an exhausted exchange, got %v", err)
	}
}

func TestReplayerServesRepeatsInOrder(t *testing.T) {
	replayer := NewReplayer(&Archive{Version: ArchiveVersion, Exchanges: []Exchange{
		{Method: "GET", Target: "/api/x", Status: 503, ContentType: "text/plain", Body: []byte("busy")},
		{Method: "GET", Target: "/api/x", Status: 200, ContentType: "application/json", Body: []byte("{}")},
	}})

	for _, want := range []int{503, 200} {
		request, err := http.NewRequest(http.MethodGet, "https://pintia.cn/api/x", nil)
		if err != nil {
			t.Fatal(err)
		}
		response, err := replayer.RoundTrip(request)
		if err != nil {
			t.Fatalf("RoundTrip: %v", err)
		}
		response.Body.Close()
		if response.StatusCode != want {
			t.Errorf("status = %d, want %d", response.StatusCode, want)
		}
	}
}
