// Copyright (c) 2024 Nicolas Dandanell
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, env *runEnv, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

// runEnv is the state shared by every command of one invocation.
type runEnv struct {
	stdout io.Writer
	stderr io.Writer
	log    *logrus.Logger
	config *config
}

type exitCode int

func (code exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(code))
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func execute(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	var global globalFlags
	env := &runEnv{
		stdout: stdout,
		stderr: stderr,
		log:    logrus.New(),
	}
	env.log.SetOutput(stderr)
	v := viper.New()

	runeCmd := &cobra.Command{
		Use:           "rune [options] COMMAND",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := loadConfig(v, global.configPath)
			if err != nil {
				return err
			}
			env.config = cfg
			setupLogger(env.log, stderr, cfg)
			return nil
		},
	}
	runeCmd.SetOut(stdout)
	runeCmd.SetErr(stderr)
	runeCmd.SetArgs(argv)
	runeCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(stderr, runeCmd.UsageString())
		return exitCode(1)
	}
	global.register(runeCmd.PersistentFlags())
	if err := bindFlags(v, runeCmd.PersistentFlags()); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	commands := []command{
		&cmdCheck{},
		&cmdSizes{},
		&cmdDump{},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				if code := cmd.run(ctx, env, args); code != 0 {
					return exitCode(code)
				}
				return nil
			},
		}
		runeCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	if _, err := runeCmd.ExecuteContextC(ctx); err != nil {
		if code, ok := err.(exitCode); ok {
			return int(code)
		}
		env.log.Errorf("rune: %v", err)
		return 1
	}
	return 0
}
