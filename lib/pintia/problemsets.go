// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package pintia

import (
	"context"
	"net/url"
	"strconv"
)

const (
	// ProblemSetPageSize is the page size of the admin listing.
	ProblemSetPageSize = 50

	// UntitledProblemSet names listing entries that have no name.
	UntitledProblemSet = "Untitled problem set"

	problemSetSort   = `{"type":"UPDATE_AT","asc":false}`
	problemSetFilter = `{"ownerId":"0"}`
)

// ListProblemSets returns every problem set visible to the session,
// most recently updated first. Pages are fetched until one comes back
// empty or short.
func (client *Client) ListProblemSets(ctx context.Context) ([]ProblemSetSummary, error) {
	var all []ProblemSetSummary
	for page := 0; ; page++ {
		query := url.Values{
			"sort_by": {problemSetSort},
			"page":    {strconv.Itoa(page)},
			"limit":   {strconv.Itoa(ProblemSetPageSize)},
			"filter":  {problemSetFilter},
		}
		var response struct {
			ProblemSets []ProblemSetSummary `json:"problemSets"`
		}
		if err := client.get(ctx, "/problem-sets/admin", query, &response); err != nil {
			return nil, err
		}
		for _, problemSet := range response.ProblemSets {
			if problemSet.Name == "" {
				problemSet.Name = UntitledProblemSet
			}
			all = append(all, problemSet)
		}
		if len(response.ProblemSets) < ProblemSetPageSize {
			return all, nil
		}
	}
}

// ProbeExams checks that the problem set exists and is readable by the
// session by fetching its exam listing. The listing itself is discarded.
func (client *Client) ProbeExams(ctx context.Context, problemSetID string) error {
	return client.get(ctx, problemSetPath(problemSetID)+"/exams", nil, nil)
}

// ProblemSet fetches the detail record of a problem set. A response
// without a problemSet object yields the zero ProblemSet.
func (client *Client) ProblemSet(ctx context.Context, problemSetID string) (*ProblemSet, error) {
	var response struct {
		ProblemSet ProblemSet `json:"problemSet"`
	}
	if err := client.get(ctx, problemSetPath(problemSetID), nil, &response); err != nil {
		return nil, err
	}
	return &response.ProblemSet, nil
}

func problemSetPath(problemSetID string) string {
	return "/problem-sets/" + url.PathEscape(problemSetID)
}
