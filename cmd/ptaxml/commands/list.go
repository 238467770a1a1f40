// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/hbue-acm/ptaxml/cmd/ptaxml/cli"
	"github.com/hbue-acm/ptaxml/lib/pintia"
)

type listParams struct {
	sessionParams
	cli.JSONOutput
}

// problemSetEntry is the --json shape of one listed problem set.
type problemSetEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StartAt string `json:"start_at,omitempty"`
}

func listCommand(stdout io.Writer) *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List the problem sets visible to the session",
		Description: `List every problem set the session can administer, most recently
updated first. Use an ID from this list with "ptaxml generate".`,
		Usage: "ptaxml list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) (err error) {
			if len(args) > 0 {
				return &cli.ExitError{Code: exitUsage, Err: fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))}
			}
			state, err := params.openSession(logger)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, state.close()) }()

			generator, err := state.generator()
			if err != nil {
				return err
			}
			problemSets, err := generator.ListProblemSets(ctx)
			if err != nil {
				return classify(err)
			}

			entries := make([]problemSetEntry, 0, len(problemSets))
			for _, problemSet := range problemSets {
				entries = append(entries, problemSetEntry{
					ID:      problemSet.ID.String(),
					Name:    problemSet.Name,
					StartAt: problemSet.StartAt,
				})
			}
			if done, err := params.EmitJSON(stdout, entries); done {
				return err
			}
			renderProblemSets(stdout, problemSets)
			return nil
		},
	}
}

// renderProblemSets writes an aligned ID / NAME / START table.
func renderProblemSets(w io.Writer, problemSets []pintia.ProblemSetSummary) {
	if len(problemSets) == 0 {
		fmt.Fprintln(w, "No problem sets are visible to this session.")
		return
	}

	idWidth, nameWidth := lipgloss.Width("ID"), lipgloss.Width("NAME")
	for _, problemSet := range problemSets {
		idWidth = max(idWidth, lipgloss.Width(problemSet.ID.String()))
		nameWidth = max(nameWidth, lipgloss.Width(problemSet.Name))
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	idStyle := lipgloss.NewStyle().Width(idWidth + 2).Foreground(lipgloss.Color("243"))
	nameStyle := lipgloss.NewStyle().Width(nameWidth + 2)

	fmt.Fprintln(w, headerStyle.Render(
		lipgloss.NewStyle().Width(idWidth+2).Render("ID")+
			lipgloss.NewStyle().Width(nameWidth+2).Render("NAME")+
			"START"))
	for _, problemSet := range problemSets {
		start := problemSet.StartAt
		if start == "" {
			start = "-"
		}
		fmt.Fprintln(w, idStyle.Render(problemSet.ID.String())+nameStyle.Render(problemSet.Name)+start)
	}
}
