// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/beevik/etree"

	"github.com/hbue-acm/ptaxml/lib/clock"
	"github.com/hbue-acm/ptaxml/lib/pintia"
	"github.com/hbue-acm/ptaxml/lib/testutil"
)

const fixtureProblemSet = "42"

var fixtureNow = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture wires a Generator to a scripted upstream through a real
// pintia.Client.
type fixture struct {
	upstream  *testutil.FakeUpstream
	clock     *clock.FakeClock
	generator *Generator
	directory string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	upstream := testutil.NewFakeUpstream(t)
	fake := clock.Fake(fixtureNow)
	directory := t.TempDir()
	client, err := pintia.NewClient(pintia.Config{
		BaseURL:       upstream.BaseURL(),
		DebugDumpPath: filepath.Join(directory, "dump.html"),
		Clock:         fake,
		Logger:        discardLogger(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.SetCookies(map[string]string{"PTASession": "fixture"})
	generator, err := NewGenerator(Config{
		Source: client,
		Clock:  fake,
		Logger: discardLogger(),
	})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return &fixture{upstream: upstream, clock: fake, generator: generator, directory: directory}
}

func path(suffix string) string {
	return "/problem-sets/" + fixtureProblemSet + suffix
}

// scriptContest registers a small contest: three problems, two teams,
// and two submission pages with one submission for an unknown problem
// and one submitted before the contest started.
func (f *fixture) scriptContest() {
	f.upstream.HandleJSON(path("/exams"), nil, map[string]any{"exams": []any{}})
	f.upstream.HandleJSON(path(""), nil, map[string]any{
		"problemSet": map[string]any{
			"id":      fixtureProblemSet,
			"name":    "Spring Selection",
			"startAt": "2026-03-01T08:00:00Z",
			"endAt":   "2026-03-01T10:00:00Z",
		},
	})
	f.upstream.HandleJSON(path("/preview/problems"), nil, map[string]any{
		"problemSetProblems": []map[string]any{{"id": "p1"}, {"id": "p2"}, {"id": "p3"}},
	})
	f.upstream.HandleJSON(path("/user-group-members"), url.Values{"page": {"0"}}, map[string]any{
		"total": 2,
		"userGroupMembers": []map[string]any{
			{"userId": "u1", "studentUserId": "s1"},
			{"userId": "u2", "studentUserId": "s2"},
		},
		"examByUserId": map[string]any{
			"u1": map[string]any{"studentUser": map[string]any{"name": "  Alpha  "}},
			"u2": map[string]any{"studentUser": map[string]any{"name": ""}},
		},
		"studentUserById": map[string]any{
			"s2": map[string]any{"name": "Beta"},
		},
	})
	f.upstream.HandleJSON(path("/submissions"), url.Values{"before": {"9002"}}, map[string]any{
		"submissions": []map[string]any{
			{"id": "9001", "problemSetProblemId": "p1", "userId": "u2", "status": "COMPILE_ERROR", "compiler": "JAVA", "submitAt": "2026-03-01T07:59:00Z"},
		},
		"hasBefore": false,
	})
	f.upstream.HandleJSON(path("/submissions"), nil, map[string]any{
		"submissions": []map[string]any{
			{"id": "9003", "problemSetProblemId": "p2", "userId": "u1", "status": "ACCEPTED", "compiler": "GXX", "submitAt": "2026-03-01T08:30:00.5Z"},
			{"id": "9002", "problemSetProblemId": "gone", "userId": "u1", "status": "ACCEPTED", "compiler": "GXX", "submitAt": "2026-03-01T08:31:00Z"},
		},
		"hasBefore": true,
	})
}

func (f *fixture) generate(t *testing.T, name string) (string, error) {
	t.Helper()
	if err := f.generator.SelectProblemSet(context.Background(), fixtureProblemSet); err != nil {
		t.Fatalf("SelectProblemSet: %v", err)
	}
	return f.generator.Generate(context.Background(), filepath.Join(f.directory, name))
}

func readDocument(t *testing.T, outputPath string) *etree.Document {
	t.Helper()
	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	document := etree.NewDocument()
	if err := document.ReadFromBytes(data); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	return document
}

func childText(element *etree.Element, tag string) string {
	child := element.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}
