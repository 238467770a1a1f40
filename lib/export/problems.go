// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hbue-acm/ptaxml/lib/contest"
	"github.com/hbue-acm/ptaxml/lib/contestxml"
)

// problemLabel is the document identity of a PTA problem.
type problemLabel struct {
	xmlID  string
	letter string
}

func (state *run) addProblems(ctx context.Context) error {
	problems, err := state.source.Problems(ctx, state.problemSetID)
	if err != nil {
		return fmt.Errorf("export: fetching problems: %w", err)
	}

	for _, problem := range problems {
		id := problem.ID.String()
		if id == "" {
			state.logger.Warn("skipping problem without id", "title", problem.Title)
			continue
		}
		if existing, ok := state.problems[id]; ok {
			state.logger.Warn("duplicate problem id keeps its first label", "problem", id, "letter", existing.letter)
			continue
		}
		index := len(state.problems)
		label := problemLabel{xmlID: strconv.Itoa(index + 1), letter: contest.Letter(index)}
		state.problems[id] = label
		state.document.AddProblem(contestxml.Problem{
			ID:     label.xmlID,
			Letter: label.letter,
			Name:   "Problem " + label.letter,
		})
	}
	state.logger.Info("problems labeled", "count", len(state.problems))
	return nil
}
