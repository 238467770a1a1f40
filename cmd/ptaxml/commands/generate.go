// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/hbue-acm/ptaxml/cmd/ptaxml/cli"
	"github.com/hbue-acm/ptaxml/lib/capture"
)

type generateParams struct {
	sessionParams
	ProblemSet string `json:"problem_set" flag:"problem-set,p" desc:"ID of the problem set to export (required)"`
	Output     string `json:"output" flag:"output,o" desc:"path of the contest document (default: output from the config)"`
}

func generateCommand(stdout io.Writer) *cli.Command {
	var params generateParams
	return &cli.Command{
		Name:    "generate",
		Summary: "Export a problem set as contest XML",
		Description: `Validate the problem set, then fetch its problems, roster, and every
submission and write them as a <contest> document. The file is
replaced atomically, so a resolver polling it never reads a partial
document. The written path is printed on success.`,
		Usage: "ptaxml generate --problem-set ID [flags]",
		Examples: []cli.Example{
			{
				Description: "Export to the configured output path",
				Command:     "ptaxml generate -p 1234567890123456789",
			},
			{
				Description: "Rebuild a document from a recorded session, without network access",
				Command:     "ptaxml generate -p 1234567890123456789 --replay final.ptaxcap -o rebuilt.xml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("generate", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) (err error) {
			if len(args) > 0 {
				return &cli.ExitError{Code: exitUsage, Err: fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))}
			}
			if params.ProblemSet == "" {
				return &cli.ExitError{Code: exitUsage, Err: errors.New("--problem-set is required (run \"ptaxml list\" to find one)")}
			}

			state, err := params.openSession(logger)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, state.close()) }()

			output := params.Output
			if output == "" {
				output = state.config.Output
			}

			generator, err := state.generator()
			if err != nil {
				return err
			}
			if err := generator.SelectProblemSet(ctx, params.ProblemSet); err != nil {
				return classify(err)
			}
			written, err := generator.Generate(ctx, output)
			if err != nil {
				return classify(err)
			}

			data, err := os.ReadFile(written)
			if err != nil {
				return fmt.Errorf("reading back %s: %w", written, err)
			}
			logger.Info("contest document ready",
				"output", written,
				"blake3", capture.Digest(data),
			)
			fmt.Fprintln(stdout, written)
			return nil
		},
	}
}
