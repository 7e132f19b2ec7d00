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

package commands

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/actorstrip/cmd/actorstrip/opts"
	"github.com/walteh/actorstrip/pkg/log"
	"github.com/walteh/actorstrip/pkg/operation"
	"github.com/walteh/actorstrip/pkg/profile"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates the command that rewrites the tree
func NewRunCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		root        string
		profileName string
		dryRun      bool
		showDiff    bool
		backup      bool
		jobs        int
		verbose     bool
		summary     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Strip the actor parameter from services and controllers",
		Long: `Run walks the source root and rewrites every candidate file.
It will:
1. Select *Service.java and *Controller.java files that mention the marker
2. Apply the service or controller rule set to each of them
3. Write back the files that changed
4. Report counts, updated files and failures`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "run").Logger().WithContext(ctx)

			// Apply flag overrides
			cfg := *ro.Config
			if root != "" {
				cfg.Root = root
			}
			if cmd.Flags().Changed("backup") {
				cfg.Backup = backup
			}
			if cmd.Flags().Changed("jobs") {
				cfg.Jobs = jobs
			}
			if err := cfg.Validate(); err != nil {
				return errors.Errorf("validating config: %w", err)
			}

			absRoot, err := filepath.Abs(cfg.Root)
			if err != nil {
				return errors.Errorf("getting absolute root path: %w", err)
			}
			cfg.Root = absRoot

			profiles, err := selectProfiles(profileName)
			if err != nil {
				return err
			}

			lg := log.New(ro.Console, *zerolog.Ctx(ctx))
			ctx = log.NewContext(ctx, lg)
			lg.Header("stripping " + cfg.Actor.TypeName)
			ro.UserLogger.RunStarted(cfg.Root, profiles, dryRun)

			// Run batch
			batch, err := operation.New(operation.Options{
				Config:   &cfg,
				Profiles: profiles,
				DryRun:   dryRun,
				Diff:     showDiff,
				Backup:   cfg.Backup,
				Jobs:     cfg.Jobs,
			})
			if err != nil {
				return errors.Errorf("creating batch: %w", err)
			}

			report, runErr := batch.Execute(ctx)
			if report != nil {
				operation.Print(ctx, ro.Console, ro.UserLogger, report, operation.PrintOptions{
					Verbose: verbose,
					Diff:    showDiff,
					Summary: summary,
				})
			}
			if runErr != nil {
				return errors.Errorf("running batch: %w", runErr)
			}

			if report.HasErrors() {
				return errors.Errorf("%d file(s) failed", report.Total().Errors)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "source root to walk (overrides the config)")
	cmd.Flags().StringVar(&profileName, "profile", "all", "cohorts to process: service, controller or all")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "transform and report without writing")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff for every changed file")
	cmd.Flags().BoolVar(&backup, "backup", false, "write <file>.bak before overwriting")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "number of files transformed at once")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a line for every candidate")
	cmd.Flags().BoolVar(&summary, "summary", true, "print the summary table")

	return cmd
}

// selectProfiles maps the --profile value onto profile names
func selectProfiles(name string) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return profile.Names(), nil
	case profile.Service:
		return []string{profile.Service}, nil
	case profile.Controller:
		return []string{profile.Controller}, nil
	default:
		return nil, errors.Errorf("unknown profile %q, expected service, controller or all", name)
	}
}
