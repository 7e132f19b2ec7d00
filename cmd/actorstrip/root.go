// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/actorstrip/cmd/actorstrip/commands"
	"github.com/walteh/actorstrip/cmd/actorstrip/opts"
	"github.com/walteh/actorstrip/pkg/config"
	"github.com/walteh/actorstrip/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd wires the subcommands onto a fresh root command
func newRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "actorstrip",
		Short: "Strip a cross-cutting context parameter from Java sources",
		Long: `actorstrip rewrites service and controller sources so that the actor
context parameter, its imports, its authorization calls and its accessor reads
disappear. Rewrites are pattern based: review the result before committing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, ro)
		},
	}

	// Add shared flags
	addRootFlags(rootCmd, ro)

	// Add commands
	rootCmd.AddCommand(
		commands.NewRunCmd(ro),
		commands.NewRulesCmd(ro),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&ro.ConfigFile, "config", "c", "", "config file path (default: .actorstrip.{yaml,yml,json,hcl} in the working directory)")
	cmd.PersistentFlags().BoolVarP(&ro.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&ro.LogFormat, "log-format", "console", "structured log format: console or json")
}

// setup configures logging and loads the config before any subcommand runs
func setup(cmd *cobra.Command, ro *opts.RootOpts) error {
	logger, err := setupLogging(cmd.ErrOrStderr(), ro)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	ro.Console = cmd.OutOrStdout()
	ro.UserLogger = log.NewUserLogger(ctx, ro.Console)

	if cmd.Name() == "version" {
		return nil
	}

	// Load config
	wd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}
	cfg, err := config.Resolve(ctx, ro.ConfigFile, wd)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	ro.Config = cfg

	logger.Debug().Str("config", cfg.Location()).Str("settings", cfg.String()).Msg("config resolved")
	return nil
}

// setupLogging builds the structured logger from the flags
func setupLogging(w io.Writer, ro *opts.RootOpts) (zerolog.Logger, error) {
	// console lines already carry the per-file outcome, json keeps them all
	var out io.Writer
	level := zerolog.WarnLevel
	switch ro.LogFormat {
	case "json":
		out = w
		level = zerolog.InfoLevel
	case "console", "":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	default:
		return zerolog.Logger{}, errors.Errorf("unknown log format %q, expected console or json", ro.LogFormat)
	}
	if ro.Debug {
		level = zerolog.DebugLevel
	}

	ro.RunID = uuid.NewString()
	return zerolog.New(out).Level(level).With().Timestamp().Str("run_id", ro.RunID).Logger(), nil
}
