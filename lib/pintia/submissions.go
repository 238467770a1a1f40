// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package pintia

import (
	"context"
	"net/url"
	"strconv"
)

// SubmissionPageSize is the page size of the submission history.
const SubmissionPageSize = 100

// Submissions fetches one page of submission history, newest first.
// An empty before cursor starts from the newest submission; otherwise
// the page holds submissions older than the one with that ID.
func (client *Client) Submissions(ctx context.Context, problemSetID string, before string) (*SubmissionPage, error) {
	query := url.Values{"limit": {strconv.Itoa(SubmissionPageSize)}}
	if before != "" {
		query.Set("before", before)
	}
	var response SubmissionPage
	if err := client.get(ctx, problemSetPath(problemSetID)+"/submissions", query, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
