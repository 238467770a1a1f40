// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package pintia

import (
	"context"
	"net/url"
	"strconv"
)

// ProblemLimit is the page size of the single problems request. PTA
// caps a problem set well below it.
const ProblemLimit = 500

// Problems returns the programming problems of a problem set in display
// order.
func (client *Client) Problems(ctx context.Context, problemSetID string) ([]Problem, error) {
	query := url.Values{
		"problem_type": {"PROGRAMMING"},
		"page":         {"0"},
		"limit":        {strconv.Itoa(ProblemLimit)},
	}
	var response struct {
		Problems []Problem `json:"problemSetProblems"`
	}
	if err := client.get(ctx, problemSetPath(problemSetID)+"/preview/problems", query, &response); err != nil {
		return nil, err
	}
	return response.Problems, nil
}
