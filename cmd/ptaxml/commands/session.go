// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hbue-acm/ptaxml/cmd/ptaxml/cli"
	"github.com/hbue-acm/ptaxml/lib/capture"
	"github.com/hbue-acm/ptaxml/lib/config"
	"github.com/hbue-acm/ptaxml/lib/export"
	"github.com/hbue-acm/ptaxml/lib/pintia"
)

// Exit codes beyond the generic 1.
const (
	exitUsage = 2
	exitAuth  = 3
)

// sessionParams are the flags shared by every command that reaches PTA.
type sessionParams struct {
	ConfigPath  string   `json:"-" flag:"config" desc:"config file (default: $PTAXML_CONFIG, else built-in defaults)"`
	Cookies     []string `json:"-" flag:"cookie" desc:"session cookie as name=value; repeatable, overrides every other source"`
	Record      string   `json:"-" flag:"record" desc:"record every upstream exchange to this archive"`
	Replay      string   `json:"-" flag:"replay" desc:"answer upstream requests from this archive instead of the network"`
	Compression string   `json:"-" flag:"compression" default:"zstd" desc:"archive compression for --record: none, lz4, or zstd"`
}

// session is an open PTA client plus the capture state around it.
type session struct {
	config *config.Config
	client *pintia.Client
	logger *slog.Logger

	recorder    *capture.Recorder
	recordPath  string
	compression capture.CompressionTag
}

// loadConfig reads and validates the configuration named by --config,
// falling back to PTAXML_CONFIG and then the defaults.
func (params *sessionParams) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if params.ConfigPath != "" {
		cfg, err = config.LoadFile(params.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, &cli.ExitError{Code: exitUsage, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &cli.ExitError{Code: exitUsage, Err: fmt.Errorf("invalid configuration:\n%w", err)}
	}
	return cfg, nil
}

// openSession builds a PTA client from the configuration and flags. In
// replay mode no request reaches the network and retries are disabled,
// since a replayed failure would fail identically every time.
func (params *sessionParams) openSession(logger *slog.Logger) (*session, error) {
	if params.Record != "" && params.Replay != "" {
		return nil, &cli.ExitError{Code: exitUsage, Err: errors.New("--record and --replay are mutually exclusive")}
	}
	compression, err := capture.ParseCompressionTag(params.Compression)
	if err != nil {
		return nil, &cli.ExitError{Code: exitUsage, Err: fmt.Errorf("--compression: %w", err)}
	}

	cfg, err := params.loadConfig()
	if err != nil {
		return nil, err
	}
	cookies, err := cfg.SessionCookies(params.Cookies)
	if err != nil {
		return nil, &cli.ExitError{Code: exitUsage, Err: err}
	}

	maxRetries := cfg.API.MaxRetries
	if maxRetries == 0 {
		maxRetries = -1
	}
	state := &session{config: cfg, logger: logger, compression: compression}
	clientConfig := pintia.Config{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.TimeoutDuration(),
		MaxRetries:    maxRetries,
		RetryBackoff:  cfg.API.RetryBackoffDuration(),
		DebugDumpPath: cfg.API.DebugDump,
		Logger:        logger,
	}

	switch {
	case params.Replay != "":
		archive, err := capture.Load(params.Replay)
		if err != nil {
			return nil, err
		}
		clientConfig.Transport = capture.NewReplayer(archive)
		clientConfig.MaxRetries = -1
		logger.Info("replaying recorded session", "archive", params.Replay, "exchanges", len(archive.Exchanges))
	case params.Record != "":
		state.recorder = capture.NewRecorder(nil)
		state.recordPath = params.Record
		clientConfig.Transport = state.recorder
	}

	client, err := pintia.NewClient(clientConfig)
	if err != nil {
		return nil, &cli.ExitError{Code: exitUsage, Err: err}
	}
	if params.Replay == "" || len(cookies) > 0 {
		client.SetCookies(cookies)
	}
	state.client = client
	return state, nil
}

// generator wraps the session's client in an exporter.
func (state *session) generator() (*export.Generator, error) {
	return export.NewGenerator(export.Config{
		Source:       state.client,
		Organization: state.config.Organization,
		RegionID:     state.config.RegionID,
		Logger:       state.logger,
	})
}

// close saves the recording, if any. It runs whether or not the command
// succeeded, so a failed run can be replayed while debugging.
func (state *session) close() error {
	if state.recorder == nil {
		return nil
	}
	if err := state.recorder.Save(state.recordPath, state.compression); err != nil {
		return err
	}
	state.logger.Info("recorded session saved",
		"archive", state.recordPath,
		"exchanges", len(state.recorder.Archive().Exchanges),
		"compression", state.compression.String(),
	)
	return nil
}

// classify maps upstream failures to exit codes.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var authError *pintia.AuthError
	if errors.As(err, &authError) {
		message := "PTA rejected the session (HTTP 401): refresh the cookies in PTA_COOKIES, cookies.file, or --cookie"
		if authError.DumpPath != "" {
			message += "\nresponse body saved to " + authError.DumpPath
		}
		return &cli.ExitError{Code: exitAuth, Message: message, Err: err}
	}
	return err
}
