// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hbue-acm/ptaxml/cmd/ptaxml/cli"
	"github.com/hbue-acm/ptaxml/lib/version"
)

// Root builds the complete ptaxml command tree. Command results are
// written to stdout; logs go to stderr.
func Root(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name: "ptaxml",
		Description: `ptaxml: export PTA (pintia.cn) problem sets as contest XML.

Reads problems, the participant roster, and every submission of one
problem set through the PTA admin API and writes an event-feed style
<contest> document for scoreboard resolvers.`,
		Subcommands: []*cli.Command{
			listCommand(stdout),
			generateCommand(stdout),
			cookiesCommand(stdout),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					fmt.Fprintf(stdout, "ptaxml %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "See which problem sets the session can export",
				Command:     "ptaxml list --cookie PTASession=...",
			},
			{
				Description: "Export one problem set",
				Command:     "ptaxml generate --problem-set 1234567890123456789 --output contest.xml",
			},
			{
				Description: "Record the upstream traffic, then rebuild the same document offline",
				Command:     "ptaxml generate -p 1234567890123456789 --record final.ptaxcap && ptaxml generate -p 1234567890123456789 --replay final.ptaxcap",
			},
			{
				Description: "Keep session cookies in an age-encrypted file",
				Command:     "ptaxml cookies seal --recipient age1... cookies.json",
			},
		},
	}
}
