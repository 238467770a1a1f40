// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package pintia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a PTA entity identifier. PTA IDs are 64-bit snowflakes that the
// API usually quotes; ID accepts quoted strings and bare numbers alike
// and always holds the decimal text. JSON null decodes to "".
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*id = ID(text)
		return nil
	default:
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			return fmt.Errorf("pintia: id must be a string or number, got %s", data)
		}
		if integer, err := strconv.ParseInt(number.String(), 10, 64); err == nil {
			*id = ID(strconv.FormatInt(integer, 10))
			return nil
		}
		*id = ID(number.String())
		return nil
	}
}

// String returns the decimal text of the ID.
func (id ID) String() string { return string(id) }

// ProblemSetSummary is one entry of the admin problem-set listing.
type ProblemSetSummary struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	StartAt string `json:"startAt"`
}

// ProblemSet is the detail record of a problem set (an exam or
// contest). Timestamps are ISO-8601 text as sent by PTA. Duration is in
// seconds; zero means unset.
type ProblemSet struct {
	ID       ID      `json:"id"`
	Name     string  `json:"name"`
	StartAt  string  `json:"startAt"`
	EndAt    string  `json:"endAt"`
	Duration float64 `json:"duration"`
}

// Problem is one programming problem of a problem set.
type Problem struct {
	ID    ID     `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
}

// StudentUser is the roster identity of a participant.
type StudentUser struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Exam is a participant's exam record. Only the embedded student user
// is of interest.
type Exam struct {
	StudentUser StudentUser `json:"studentUser"`
}

// Member is one roster entry. UserID is the participant's account,
// StudentUserID the roster identity it is bound to.
type Member struct {
	UserID        ID `json:"userId"`
	StudentUserID ID `json:"studentUserId"`
}

// MemberPage is one page of the problem-set roster. The two maps carry
// display names for members of this page (and sometimes others).
type MemberPage struct {
	Total           int                    `json:"total"`
	Members         []Member               `json:"userGroupMembers"`
	ExamByUserID    map[string]Exam        `json:"examByUserId"`
	StudentUserByID map[string]StudentUser `json:"studentUserById"`
}

// Submission is one judged submission.
type Submission struct {
	ID                  ID     `json:"id"`
	ProblemSetProblemID ID     `json:"problemSetProblemId"`
	UserID              ID     `json:"userId"`
	Status              string `json:"status"`
	Compiler            string `json:"compiler"`
	SubmitAt            string `json:"submitAt"`
}

// SubmissionPage is one page of submission history, newest first.
// HasBefore reports whether older submissions exist.
type SubmissionPage struct {
	Submissions []Submission `json:"submissions"`
	HasBefore   bool         `json:"hasBefore"`
}
