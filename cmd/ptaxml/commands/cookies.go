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
	"slices"

	"github.com/spf13/pflag"

	"github.com/hbue-acm/ptaxml/cmd/ptaxml/cli"
	"github.com/hbue-acm/ptaxml/lib/config"
	"github.com/hbue-acm/ptaxml/lib/sealed"
)

func cookiesCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "cookies",
		Summary: "Manage PTA session cookies",
		Description: `Manage the session cookies ptaxml sends to PTA.

Cookies are merged from cookies.env_file, the PTA_COOKIES environment
variable, cookies.file, and --cookie flags, later sources winning. A
cookies.file ending in .age is decrypted with cookies.identity_file.`,
		Subcommands: []*cli.Command{
			cookiesKeygenCommand(stdout),
			cookiesSealCommand(stdout),
			cookiesCheckCommand(stdout),
		},
	}
}

type keygenParams struct {
	Output string `flag:"output,o" desc:"identity file to create (required)"`
	Force  bool   `flag:"force" desc:"overwrite an existing identity file"`
}

func cookiesKeygenCommand(stdout io.Writer) *cli.Command {
	var params keygenParams
	return &cli.Command{
		Name:    "keygen",
		Summary: "Create an age identity for sealing cookie files",
		Description: `Generate an age X25519 identity, write it to --output with mode 0600,
and print its public key. Pass the public key to "ptaxml cookies seal"
and point cookies.identity_file at the identity file.`,
		Usage: "ptaxml cookies keygen --output FILE",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("keygen", &params)
		},
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			if params.Output == "" {
				return &cli.ExitError{Code: exitUsage, Err: errors.New("--output is required")}
			}
			keypair, err := sealed.GenerateKeypair()
			if err != nil {
				return err
			}
			if err := writeSecretFile(params.Output, keypair.IdentityFile(), params.Force); err != nil {
				return err
			}
			logger.Info("identity written", "path", params.Output)
			fmt.Fprintln(stdout, keypair.PublicKey)
			return nil
		},
	}
}

type sealParams struct {
	Recipients []string `flag:"recipient,r" desc:"age public key to encrypt to; repeatable (required)"`
	Output     string   `flag:"output,o" desc:"sealed file to write (default: INPUT.age)"`
	Force      bool     `flag:"force" desc:"overwrite an existing sealed file"`
}

func cookiesSealCommand(stdout io.Writer) *cli.Command {
	var params sealParams
	return &cli.Command{
		Name:    "seal",
		Summary: "Encrypt a cookie file with age",
		Description: `Check that INPUT is a valid cookie file (a JSON object of cookie name
to value; comments allowed) and encrypt it to the given recipients.`,
		Usage: "ptaxml cookies seal --recipient age1... [--output FILE] INPUT",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("seal", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return &cli.ExitError{Code: exitUsage, Err: errors.New("exactly one INPUT cookie file is required")}
			}
			if len(params.Recipients) == 0 {
				return &cli.ExitError{Code: exitUsage, Err: errors.New("at least one --recipient is required")}
			}
			input := args[0]
			output := params.Output
			if output == "" {
				output = input + sealed.Extension
			}

			plaintext, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			cookies, err := config.ParseCookieFile(plaintext)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			ciphertext, err := sealed.Encrypt(plaintext, params.Recipients)
			if err != nil {
				return err
			}
			if err := writeSecretFile(output, ciphertext, params.Force); err != nil {
				return err
			}
			logger.Info("cookie file sealed",
				"input", input,
				"output", output,
				"cookies", len(cookies),
				"recipients", len(params.Recipients),
			)
			fmt.Fprintln(stdout, output)
			return nil
		},
	}
}

type checkParams struct {
	cli.JSONOutput
	ConfigPath string   `json:"-" flag:"config" desc:"config file (default: $PTAXML_CONFIG, else built-in defaults)"`
	Cookies    []string `json:"-" flag:"cookie" desc:"session cookie as name=value; repeatable"`
}

func cookiesCheckCommand(stdout io.Writer) *cli.Command {
	var params checkParams
	return &cli.Command{
		Name:    "check",
		Summary: "Show which cookie names would be sent",
		Description: `Merge every configured cookie source and print the cookie names that
would be sent to PTA. Values are never printed.`,
		Usage: "ptaxml cookies check [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check", &params)
		},
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			shared := sessionParams{ConfigPath: params.ConfigPath}
			cfg, err := shared.loadConfig()
			if err != nil {
				return err
			}
			cookies, err := cfg.SessionCookies(params.Cookies)
			if err != nil {
				return &cli.ExitError{Code: exitUsage, Err: err}
			}

			names := make([]string, 0, len(cookies))
			for name := range cookies {
				names = append(names, name)
			}
			slices.Sort(names)

			if done, err := params.EmitJSON(stdout, names); done {
				return err
			}
			if len(names) == 0 {
				logger.Warn("no session cookies configured")
				return &cli.ExitError{Code: 1, Message: "no session cookies configured"}
			}
			for _, name := range names {
				fmt.Fprintln(stdout, name)
			}
			return nil
		},
	}
}

// writeSecretFile writes data with mode 0600, refusing to replace an
// existing file unless force is set.
func writeSecretFile(path string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
