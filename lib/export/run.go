// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hbue-acm/ptaxml/lib/contest"
	"github.com/hbue-acm/ptaxml/lib/contestxml"
)

const (
	defaultContestName     = "PTA Contest"
	defaultContestID       = "0"
	penaltyMinutes         = 20
	scoreboardFreezeLength = "1:00:00"
)

// run is the state of one Generate call. Nothing in it outlives the
// call.
type run struct {
	*Generator
	logger *slog.Logger

	document     *contestxml.Document
	contestStart time.Time
	problems     map[string]problemLabel
	roster       *roster
}

func newRun(generator *Generator, logger *slog.Logger) *run {
	return &run{
		Generator: generator,
		logger:    logger,
		document:  contestxml.New(),
		problems:  make(map[string]problemLabel),
		roster:    newRoster(),
	}
}

func (state *run) build(ctx context.Context) error {
	if err := state.addInfo(ctx); err != nil {
		return err
	}
	state.addStaticDefinitions()
	if err := state.addProblems(ctx); err != nil {
		return err
	}
	if err := state.addTeams(ctx); err != nil {
		return err
	}
	if err := state.addRuns(ctx); err != nil {
		return err
	}
	state.addFinalized()
	return nil
}

func (state *run) addInfo(ctx context.Context) error {
	problemSet, err := state.source.ProblemSet(ctx, state.problemSetID)
	if err != nil {
		return fmt.Errorf("export: fetching problem set: %w", err)
	}

	start, err := contest.ParseTimestamp(problemSet.StartAt)
	if err != nil {
		return fmt.Errorf("export: problem set start time: %w", err)
	}
	end, endErr := contest.ParseTimestamp(problemSet.EndAt)
	if endErr != nil {
		state.logger.Warn("ignoring unparseable end time", "end_at", problemSet.EndAt, "error", endErr)
	}
	state.contestStart = start

	duration := contest.ResolveDuration(int64(problemSet.Duration), start, end, endErr == nil)

	name := problemSet.Name
	if name == "" {
		name = defaultContestName
	}
	contestID := problemSet.ID.String()
	if contestID == "" {
		contestID = defaultContestID
	}

	state.document.AddInfo(contestxml.Info{
		Title:                  name,
		ShortTitle:             name,
		ContestID:              contestID,
		StartTime:              contest.FormatUnix(start, 1),
		Length:                 contest.FormatLength(duration),
		Penalty:                penaltyMinutes,
		Started:                false,
		ScoreboardFreezeLength: scoreboardFreezeLength,
	})
	state.logger.Info("contest metadata",
		"name", name,
		"start", start.Format(time.RFC3339),
		"duration_seconds", duration,
	)
	return nil
}

func (state *run) addStaticDefinitions() {
	state.document.AddRegion(contestxml.Region{ExternalID: state.regionID, Name: state.organization})
	for _, judgement := range contest.Judgements() {
		state.document.AddJudgement(judgement)
	}
	for _, language := range contest.Languages() {
		state.document.AddLanguage(language)
	}
}

func (state *run) addFinalized() {
	state.document.AddFinalized(contestxml.Finalized{
		LastGold:   1,
		LastSilver: 1,
		LastBronze: 1,
		Time:       state.document.Length(),
		Timestamp:  contest.FormatUnixShortest(state.clock.Now()),
	})
}
