// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/hbue-acm/ptaxml/cmd/ptaxml/cli"
	"github.com/hbue-acm/ptaxml/lib/testutil"
)

const problemSetID = "1234567890123456789"

// isolate clears the environment variables that would leak host
// configuration into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("PTAXML_CONFIG", "")
	t.Setenv("PTA_COOKIES", "")
}

// writeConfig writes a config pointing at upstream, with every output
// path inside the test's temporary directory.
func writeConfig(t *testing.T, baseURL string, extra string) (configPath, directory string) {
	t.Helper()
	directory = t.TempDir()
	content := fmt.Sprintf(`organization: HBUE
region_id: "1"
output: %s
api:
  base_url: %s
  timeout: 5s
  max_retries: 0
  retry_backoff: 10ms
  debug_dump: %s
%s`, filepath.Join(directory, "contest.xml"), baseURL, filepath.Join(directory, "dump.html"), extra)
	configPath = filepath.Join(directory, "ptaxml.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return configPath, directory
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	err := Root(&stdout).Execute(context.Background(), args)
	return stdout.String(), err
}

func problemSetPath(suffix string) string {
	return "/problem-sets/" + problemSetID + suffix
}

func scriptContest(upstream *testutil.FakeUpstream) {
	upstream.HandleJSON("/problem-sets/admin", nil, map[string]any{
		"problemSets": []map[string]any{
			{"id": problemSetID, "name": "Spring Selection", "startAt": "2026-03-01T08:00:00Z"},
			{"id": 77, "name": ""},
		},
	})
	upstream.HandleJSON(problemSetPath("/exams"), nil, map[string]any{"exams": []any{}})
	upstream.HandleJSON(problemSetPath(""), nil, map[string]any{
		"problemSet": map[string]any{
			"id":      problemSetID,
			"name":    "Spring Selection",
			"startAt": "2026-03-01T08:00:00Z",
			"endAt":   "2026-03-01T10:00:00Z",
		},
	})
	upstream.HandleJSON(problemSetPath("/preview/problems"), nil, map[string]any{
		"problemSetProblems": []map[string]any{{"id": "p1"}, {"id": "p2"}},
	})
	upstream.HandleJSON(problemSetPath("/user-group-members"), nil, map[string]any{
		"total":            1,
		"userGroupMembers": []map[string]any{{"userId": "u1", "studentUserId": "s1"}},
		"examByUserId":     map[string]any{"u1": map[string]any{"studentUser": map[string]any{"name": "Alpha"}}},
	})
	upstream.HandleJSON(problemSetPath("/submissions"), nil, map[string]any{
		"submissions": []map[string]any{
			{"id": "9002", "problemSetProblemId": "p2", "userId": "u1", "status": "ACCEPTED", "compiler": "GXX", "submitAt": "2026-03-01T08:30:00Z"},
			{"id": "9001", "problemSetProblemId": "p1", "userId": "u1", "status": "WRONG_ANSWER", "compiler": "PYTHON3", "submitAt": "2026-03-01T08:10:00Z"},
		},
		"hasBefore": false,
	})
}

func exitCodeOf(t *testing.T, err error) int {
	t.Helper()
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("error %v is not an ExitError", err)
	}
	return exitError.ExitCode()
}

func TestListJSON(t *testing.T) {
	isolate(t)
	upstream := testutil.NewFakeUpstream(t)
	scriptContest(upstream)
	configPath, _ := writeConfig(t, upstream.BaseURL(), "")

	stdout, err := execute(t, "list", "--config", configPath, "--cookie", "PTASession=abc", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var entries []problemSetEntry
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("decoding %q: %v", stdout, err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID != problemSetID || entries[0].Name != "Spring Selection" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].ID != "77" || entries[1].Name == "" {
		t.Errorf("entries[1] = %+v, want numeric id and placeholder name", entries[1])
	}

	requests := upstream.RequestsTo("/problem-sets/admin")
	if len(requests) != 1 {
		t.Fatalf("got %d listing requests", len(requests))
	}
	if cookie := requests[0].Header.Get("Cookie"); !strings.Contains(cookie, "PTASession=abc") {
		t.Errorf("Cookie header = %q", cookie)
	}
}

func TestListTable(t *testing.T) {
	isolate(t)
	upstream := testutil.NewFakeUpstream(t)
	scriptContest(upstream)
	configPath, _ := writeConfig(t, upstream.BaseURL(), "")
	t.Setenv("PTA_COOKIES", "PTASession=from-env")

	stdout, err := execute(t, "list", "--config", configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), stdout)
	}
	for _, want := range []string{"ID", "NAME", "START"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("header %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], problemSetID) || !strings.Contains(lines[1], "Spring Selection") ||
		!strings.Contains(lines[1], "2026-03-01T08:00:00Z") {
		t.Errorf("row = %q", lines[1])
	}
	if cookie := upstream.RequestsTo("/problem-sets/admin")[0].Header.Get("Cookie"); !strings.Contains(cookie, "from-env") {
		t.Errorf("Cookie header = %q, want the PTA_COOKIES value", cookie)
	}
}

func TestRenderProblemSetsEmpty(t *testing.T) {
	var buffer bytes.Buffer
	renderProblemSets(&buffer, nil)
	if !strings.Contains(buffer.String(), "No problem sets") {
		t.Errorf("output = %q", buffer.String())
	}
}

var finalizedTimestamp = regexp.MustCompile(`(?s)<finalized>.*</finalized>`)

func TestGenerateRecordThenReplay(t *testing.T) {
	isolate(t)
	upstream := testutil.NewFakeUpstream(t)
	scriptContest(upstream)
	configPath, directory := writeConfig(t, upstream.BaseURL(), "")
	archivePath := filepath.Join(directory, "session.ptaxcap")

	stdout, err := execute(t, "generate", "--config", configPath, "--cookie", "PTASession=abc",
		"-p", problemSetID, "--record", archivePath, "--compression", "lz4")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	livePath := strings.TrimSpace(stdout)
	if livePath != filepath.Join(directory, "contest.xml") {
		t.Errorf("printed %q, want the configured output", livePath)
	}
	live, err := os.ReadFile(livePath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Contains(live, []byte("<contest>")) || bytes.Count(live, []byte("<run>")) != 2 {
		t.Fatalf("unexpected document:\n%s", live)
	}
	if _, err := os.Stat(archivePath); err != nil {
		t.Fatalf("archive not written: %v", err)
	}

	liveRequests := len(upstream.Requests())
	replayPath := filepath.Join(directory, "replayed.xml")
	stdout, err = execute(t, "generate", "--config", configPath,
		"-p", problemSetID, "--replay", archivePath, "-o", replayPath)
	if err != nil {
		t.Fatalf("replayed generate: %v", err)
	}
	if strings.TrimSpace(stdout) != replayPath {
		t.Errorf("printed %q, want %q", stdout, replayPath)
	}
	if got := len(upstream.Requests()); got != liveRequests {
		t.Errorf("replay sent %d requests upstream", got-liveRequests)
	}

	replayed, err := os.ReadFile(replayPath)
	if err != nil {
		t.Fatalf("reading replayed output: %v", err)
	}
	// Only the finalization stamp depends on the wall clock.
	if !bytes.Equal(finalizedTimestamp.ReplaceAll(live, nil), finalizedTimestamp.ReplaceAll(replayed, nil)) {
		t.Errorf("replayed document differs:\nlive:\n%s\nreplayed:\n%s", live, replayed)
	}
}

func TestGenerateAuthFailure(t *testing.T) {
	isolate(t)
	upstream := testutil.NewFakeUpstream(t)
	upstream.Handle(problemSetPath("/exams"), nil, testutil.HTML(http.StatusUnauthorized, "<html>login</html>"))
	configPath, directory := writeConfig(t, upstream.BaseURL(), "")

	_, err := execute(t, "generate", "--config", configPath, "-p", problemSetID)
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := exitCodeOf(t, err); code != exitAuth {
		t.Errorf("exit code = %d, want %d", code, exitAuth)
	}
	if !strings.Contains(err.Error(), "refresh the cookies") {
		t.Errorf("error = %q", err)
	}
	if _, statErr := os.Stat(filepath.Join(directory, "contest.xml")); !os.IsNotExist(statErr) {
		t.Error("output written despite the auth failure")
	}
	if _, statErr := os.Stat(filepath.Join(directory, "dump.html")); statErr != nil {
		t.Errorf("debug dump missing: %v", statErr)
	}
}

func TestGenerateUsageErrors(t *testing.T) {
	isolate(t)
	upstream := testutil.NewFakeUpstream(t)
	configPath, directory := writeConfig(t, upstream.BaseURL(), "")
	badConfig := filepath.Join(directory, "bad.yaml")
	if err := os.WriteFile(badConfig, []byte("organization: \"\"\napi:\n  timeout: soon\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing problem set", []string{"generate", "--config", configPath}},
		{"positional argument", []string{"generate", "--config", configPath, "-p", problemSetID, "extra"}},
		{"record and replay", []string{"generate", "--config", configPath, "-p", problemSetID, "--record", "a", "--replay", "b"}},
		{"bad compression", []string{"generate", "--config", configPath, "-p", problemSetID, "--compression", "brotli"}},
		{"invalid config", []string{"generate", "--config", badConfig, "-p", problemSetID}},
		{"missing config", []string{"list", "--config", filepath.Join(directory, "missing.yaml")}},
		{"malformed cookie", []string{"list", "--config", configPath, "--cookie", "novalue"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := execute(t, test.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := exitCodeOf(t, err); code != exitUsage {
				t.Errorf("exit code = %d, want %d (%v)", code, exitUsage, err)
			}
		})
	}
	if len(upstream.Requests()) != 0 {
		t.Errorf("usage errors reached upstream: %+v", upstream.Requests())
	}
}

func TestReplayMissingArchive(t *testing.T) {
	isolate(t)
	upstream := testutil.NewFakeUpstream(t)
	configPath, directory := writeConfig(t, upstream.BaseURL(), "")

	_, err := execute(t, "generate", "--config", configPath, "-p", problemSetID,
		"--replay", filepath.Join(directory, "missing.ptaxcap"))
	if err == nil {
		t.Fatal("expected an error for a missing archive")
	}
}

func TestCookiesKeygenSealCheck(t *testing.T) {
	isolate(t)
	directory := t.TempDir()
	identityPath := filepath.Join(directory, "key.txt")

	publicKey, err := execute(t, "cookies", "keygen", "--output", identityPath)
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	publicKey = strings.TrimSpace(publicKey)
	if !strings.HasPrefix(publicKey, "age1") {
		t.Fatalf("keygen printed %q", publicKey)
	}
	info, err := os.Stat(identityPath)
	if err != nil {
		t.Fatalf("identity file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("identity mode = %v, want 0600", info.Mode().Perm())
	}

	if _, err := execute(t, "cookies", "keygen", "--output", identityPath); err == nil {
		t.Error("keygen overwrote an existing identity without --force")
	}

	plainPath := filepath.Join(directory, "cookies.json")
	if err := os.WriteFile(plainPath, []byte(`{
		// from the browser
		"PTASession": "secret-session",
		"JSESSIONID": "secret-jsession",
	}`), 0o600); err != nil {
		t.Fatal(err)
	}
	stdout, err := execute(t, "cookies", "seal", "--recipient", publicKey, plainPath)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	sealedPath := strings.TrimSpace(stdout)
	if sealedPath != plainPath+".age" {
		t.Errorf("sealed path = %q", sealedPath)
	}
	ciphertext, err := os.ReadFile(sealedPath)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(ciphertext, []byte("secret-session")) {
		t.Fatal("sealed file contains a cookie value")
	}

	configPath, _ := writeConfig(t, "https://pintia.cn/api", fmt.Sprintf("cookies:\n  file: %s\n  identity_file: %s\n", sealedPath, identityPath))
	stdout, err = execute(t, "cookies", "check", "--config", configPath, "--cookie", "extra=1")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if stdout != "JSESSIONID\nPTASession\nextra\n" {
		t.Errorf("check printed %q", stdout)
	}
	if strings.Contains(stdout, "secret") {
		t.Error("check printed a cookie value")
	}

	stdout, err = execute(t, "cookies", "check", "--config", configPath, "--json")
	if err != nil {
		t.Fatalf("check --json: %v", err)
	}
	var names []string
	if err := json.Unmarshal([]byte(stdout), &names); err != nil || len(names) != 2 {
		t.Errorf("check --json = %q (%v)", stdout, err)
	}
}

func TestCookiesSealRejectsInvalidInput(t *testing.T) {
	isolate(t)
	directory := t.TempDir()
	publicKey, err := execute(t, "cookies", "keygen", "-o", filepath.Join(directory, "key.txt"))
	if err != nil {
		t.Fatal(err)
	}
	notCookies := filepath.Join(directory, "notes.txt")
	if err := os.WriteFile(notCookies, []byte("just some notes"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "cookies", "seal", "-r", strings.TrimSpace(publicKey), notCookies); err == nil {
		t.Error("sealed a file that is not a cookie object")
	}
	if _, err := execute(t, "cookies", "seal", notCookies); err == nil {
		t.Error("sealed without a recipient")
	}
	if _, err := os.Stat(notCookies + ".age"); !os.IsNotExist(err) {
		t.Error("sealed output written for invalid input")
	}
}

func TestCookiesCheckWithoutCookies(t *testing.T) {
	isolate(t)
	_, err := execute(t, "cookies", "check")
	if err == nil {
		t.Fatal("expected an error when no cookies are configured")
	}
	if code := exitCodeOf(t, err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestVersion(t *testing.T) {
	stdout, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(stdout, "ptaxml ") {
		t.Errorf("version printed %q", stdout)
	}
}
