// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hbue-acm/ptaxml/lib/clock"
	"github.com/hbue-acm/ptaxml/lib/contestxml"
	"github.com/hbue-acm/ptaxml/lib/pintia"
)

const (
	// DefaultOrganization names the university every team belongs to.
	DefaultOrganization = "HBUE"

	// DefaultRegionID is the external id of the single region.
	DefaultRegionID = "1"

	// DefaultOutputPath is used when Generate is given an empty path.
	DefaultOutputPath = "contest.xml"
)

// ErrNoProblemSet is returned by Generate when no problem set has been
// selected.
var ErrNoProblemSet = errors.New("export: no problem set selected")

// Source is the upstream data the exporter reads. *pintia.Client
// implements it.
type Source interface {
	ListProblemSets(ctx context.Context) ([]pintia.ProblemSetSummary, error)
	ProbeExams(ctx context.Context, problemSetID string) error
	ProblemSet(ctx context.Context, problemSetID string) (*pintia.ProblemSet, error)
	Problems(ctx context.Context, problemSetID string) ([]pintia.Problem, error)
	Members(ctx context.Context, problemSetID string, page int) (*pintia.MemberPage, error)
	Submissions(ctx context.Context, problemSetID string, before string) (*pintia.SubmissionPage, error)
}

// Config holds configuration for creating a Generator.
type Config struct {
	// Source supplies problem sets, rosters, and submissions. Required.
	Source Source

	// Organization is used as region name, team region, and team
	// university. Defaults to DefaultOrganization.
	Organization string

	// RegionID is the region's external id, repeated on every team.
	// Defaults to DefaultRegionID.
	RegionID string

	// Clock stamps the finalization node and paces submission paging.
	// Defaults to clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Generator exports PTA problem sets as contest XML.
type Generator struct {
	source       Source
	organization string
	regionID     string
	clock        clock.Clock
	logger       *slog.Logger

	problemSetID string
}

// NewGenerator creates a Generator from the given configuration.
func NewGenerator(config Config) (*Generator, error) {
	if config.Source == nil {
		return nil, fmt.Errorf("export: Source is required")
	}
	organization := config.Organization
	if organization == "" {
		organization = DefaultOrganization
	}
	regionID := config.RegionID
	if regionID == "" {
		regionID = DefaultRegionID
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		source:       config.Source,
		organization: organization,
		regionID:     regionID,
		clock:        clk,
		logger:       logger,
	}, nil
}

// ListProblemSets returns the problem sets available for selection.
func (generator *Generator) ListProblemSets(ctx context.Context) ([]pintia.ProblemSetSummary, error) {
	generator.logger.Info("listing problem sets")
	problemSets, err := generator.source.ListProblemSets(ctx)
	if err != nil {
		generator.logger.Error("listing problem sets failed", "error", err)
		return nil, err
	}
	generator.logger.Info("listed problem sets", "count", len(problemSets))
	return problemSets, nil
}

// SelectProblemSet records id as the problem set to export and then
// checks that it is reachable. The probe's error is returned unchanged;
// the id stays selected either way.
func (generator *Generator) SelectProblemSet(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("export: problem set id is empty")
	}
	generator.problemSetID = id
	generator.logger.Info("validating problem set", "problem_set", id)
	return generator.source.ProbeExams(ctx, id)
}

// ProblemSetID returns the selected problem set, or "".
func (generator *Generator) ProblemSetID() string {
	return generator.problemSetID
}

// Generate exports the selected problem set to outputPath (default
// DefaultOutputPath) and returns the path written.
func (generator *Generator) Generate(ctx context.Context, outputPath string) (string, error) {
	if generator.problemSetID == "" {
		return "", ErrNoProblemSet
	}
	if outputPath == "" {
		outputPath = DefaultOutputPath
	}

	state := newRun(generator, generator.logger.With(
		"run_id", uuid.NewString(),
		"problem_set", generator.problemSetID,
	))
	state.logger.Info("generating contest document", "output", outputPath)

	if err := state.build(ctx); err != nil {
		return "", err
	}

	data, err := contestxml.Render(state.document)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := contestxml.WriteFile(outputPath, data); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	state.logger.Info("contest document written",
		"output", outputPath,
		"problems", state.document.Count("problem"),
		"teams", state.document.Count("team"),
		"runs", state.document.Count("run"),
		"bytes", len(data),
	)
	return outputPath, nil
}
