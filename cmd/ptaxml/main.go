// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hbue-acm/ptaxml/cmd/ptaxml/cli"
	"github.com/hbue-acm/ptaxml/cmd/ptaxml/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	return commands.Root(stdout).Execute(ctx, args)
}

// exitCode reports err on stderr and returns the process exit status.
// An error carrying its own exit code is printed only when it has
// something to say beyond the code.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var exitError *cli.ExitError
	if errors.As(err, &exitError) {
		if exitError.Message != "" || exitError.Err != nil {
			fmt.Fprintf(stderr, "error: %v\n", exitError)
		}
		return exitError.ExitCode()
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, "interrupted")
		return 130
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}
