// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/hbue-acm/ptaxml/lib/contestxml"
	"github.com/hbue-acm/ptaxml/lib/pintia"
)

// roster accumulates the name maps of every roster page fetched so far.
// Later pages add keys and overwrite earlier entries for the same key.
type roster struct {
	examByUserID    map[string]pintia.Exam
	studentUserByID map[string]pintia.StudentUser
}

func newRoster() *roster {
	return &roster{
		examByUserID:    make(map[string]pintia.Exam),
		studentUserByID: make(map[string]pintia.StudentUser),
	}
}

func (accumulator *roster) merge(page *pintia.MemberPage) {
	maps.Copy(accumulator.examByUserID, page.ExamByUserID)
	maps.Copy(accumulator.studentUserByID, page.StudentUserByID)
}

// name resolves a member's display name: the exam record's student
// name, then the student record's name, each trimmed and used only when
// non-empty. The second result is false when neither has a name.
func (accumulator *roster) name(member pintia.Member) (string, bool) {
	if exam, ok := accumulator.examByUserID[member.UserID.String()]; ok {
		if name := strings.TrimSpace(exam.StudentUser.Name); name != "" {
			return name, true
		}
	}
	if student, ok := accumulator.studentUserByID[member.StudentUserID.String()]; ok {
		if name := strings.TrimSpace(student.Name); name != "" {
			return name, true
		}
	}
	return "", false
}

func (state *run) addTeams(ctx context.Context) error {
	teams := 0
	for page := 0; ; page++ {
		members, err := state.source.Members(ctx, state.problemSetID, page)
		if err != nil {
			return fmt.Errorf("export: fetching roster page %d: %w", page, err)
		}
		if page == 0 {
			if members.Total == 0 {
				state.logger.Warn("problem set has no participants")
				return nil
			}
			state.logger.Info("fetching roster", "total", members.Total)
		}

		state.roster.merge(members)

		if len(members.Members) == 0 {
			state.logger.Warn("roster page is empty", "page", page)
			break
		}
		for _, member := range members.Members {
			if state.addTeam(member) {
				teams++
			}
		}
		state.logger.Debug("roster page processed", "page", page, "members", len(members.Members))

		if len(members.Members) < pintia.MemberPageSize {
			break
		}
	}
	state.logger.Info("teams added", "count", teams)
	return nil
}

func (state *run) addTeam(member pintia.Member) bool {
	userID := member.UserID.String()
	if userID == "" {
		state.logger.Warn("skipping roster member without user id", "student_user", member.StudentUserID.String())
		return false
	}
	name, ok := state.roster.name(member)
	if !ok {
		name = "Team_" + userID
		state.logger.Warn("no display name for member, using placeholder", "user", userID, "name", name)
	}
	state.document.AddTeam(contestxml.Team{
		ID:         userID,
		ExternalID: state.regionID,
		Region:     state.organization,
		Name:       name,
		University: state.organization,
	})
	return true
}
