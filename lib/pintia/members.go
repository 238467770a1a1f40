// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package pintia

import (
	"context"
	"net/url"
	"strconv"
)

// MemberPageSize is the page size of the roster listing.
const MemberPageSize = 20

// Members fetches one zero-based page of the problem-set roster, all
// exam states included, most recently started first.
func (client *Client) Members(ctx context.Context, problemSetID string, page int) (*MemberPage, error) {
	query := url.Values{
		"exam_status": {"UNKNOWN"},
		"page":        {strconv.Itoa(page)},
		"limit":       {strconv.Itoa(MemberPageSize)},
		"order_by":    {"startAt"},
		"asc":         {"false"},
	}
	var response MemberPage
	if err := client.get(ctx, problemSetPath(problemSetID)+"/user-group-members", query, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
