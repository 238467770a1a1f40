// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"context"
	"fmt"
	"time"

	"github.com/hbue-acm/ptaxml/lib/contest"
	"github.com/hbue-acm/ptaxml/lib/contestxml"
	"github.com/hbue-acm/ptaxml/lib/pintia"
)

const (
	// pauseEvery and pauseDuration pace the submission walk.
	pauseEvery    = 100
	pauseDuration = 300 * time.Millisecond
)

func (state *run) addRuns(ctx context.Context) error {
	var (
		before   string
		examined int
		runs     int
		dropped  int
	)
	for {
		page, err := state.source.Submissions(ctx, state.problemSetID, before)
		if err != nil {
			return fmt.Errorf("export: fetching submissions: %w", err)
		}
		if len(page.Submissions) == 0 {
			break
		}

		for _, submission := range page.Submissions {
			if state.addRun(submission, runs+1) {
				runs++
			} else {
				dropped++
			}
			examined++
			if examined%pauseEvery == 0 {
				state.logger.Debug("pausing between submission batches", "examined", examined)
				select {
				case <-state.clock.After(pauseDuration):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}

		if !page.HasBefore {
			break
		}
		next := page.Submissions[len(page.Submissions)-1].ID.String()
		if next == "" || next == before {
			state.logger.Warn("submission cursor did not advance, stopping", "cursor", before)
			break
		}
		before = next
		state.logger.Debug("next submission page", "before", before)
	}
	state.logger.Info("runs added", "runs", runs, "dropped", dropped)
	return nil
}

// addRun emits a <run> for submission with the given id. It returns
// false, emitting nothing, when the submission's problem is not part of
// the document or its submit time cannot be read.
func (state *run) addRun(submission pintia.Submission, id int) bool {
	label, ok := state.problems[submission.ProblemSetProblemID.String()]
	if !ok {
		return false
	}
	submitted, err := contest.ParseTimestamp(submission.SubmitAt)
	if err != nil || submission.SubmitAt == "" {
		state.logger.Warn("dropping submission with unreadable submit time",
			"submission", submission.ID.String(),
			"submit_at", submission.SubmitAt,
		)
		return false
	}

	status := contest.Status(submission.Status)
	if !status.IsKnown() {
		state.logger.Debug("unrecognized status reported as wrong answer",
			"submission", submission.ID.String(),
			"status", submission.Status,
		)
	}
	state.document.AddRun(contestxml.Run{
		ID:        id,
		Language:  contest.LanguageForCompiler(submission.Compiler),
		Problem:   label.xmlID,
		Team:      submission.UserID.String(),
		Time:      contest.RelativeSeconds(state.contestStart, submitted),
		Timestamp: contest.FormatUnix(submitted, 2),
		Solved:    status.Solved(),
		Penalty:   status.Penalty(),
		Result:    status.Acronym(),
	})
	return true
}
