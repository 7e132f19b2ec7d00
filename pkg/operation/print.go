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

package operation

import (
	"context"
	"fmt"
	"io"

	"github.com/walteh/actorstrip/pkg/diff"
	"github.com/walteh/actorstrip/pkg/log"
	"github.com/walteh/actorstrip/pkg/status"
)

// PrintOptions selects the optional parts of the console report.
type PrintOptions struct {
	// Verbose prints an aligned line for every candidate instead of
	// confirmations only
	Verbose bool
	// Diff prints the unified diff of every changed file
	Diff bool
	// Summary renders the closing table
	Summary bool
}

// 📣 Print writes the report: counts per cohort, one line per updated or
// failed file, optional diffs, the outcome notes and the closing reminder.
// The console logger is taken from ctx.
func Print(ctx context.Context, w io.Writer, user *log.UserLogger, report *status.Report, opts PrintOptions) {
	lg := log.FromContext(ctx)

	for _, name := range report.Profiles {
		lg.LogCounts(name, report.Counts(name))

		for _, res := range report.ForProfile(name) {
			if opts.Verbose {
				lg.LogFileResult(ctx, res)
			} else {
				lg.LogConfirmation(res, report.DryRun)
			}
			if opts.Diff && res.Diff != "" {
				fmt.Fprint(w, diff.Colorize(res.Diff))
			}
		}
		lg.LogNewline()
	}

	if opts.Summary {
		log.RenderSummary(w, report)
		lg.LogNewline()
	}

	total := report.Total()
	if report.Skipped > 0 {
		lg.Infof("%d file(s) skipped: marker absent or excluded by glob", report.Skipped)
	}
	if total.Unchanged > 0 {
		lg.Warningf("%d candidate(s) still hold the marker but matched no rule", total.Unchanged)
	}
	switch {
	case total.Errors > 0:
		lg.Errorf("%d file(s) could not be processed", total.Errors)
	case report.DryRun:
		lg.Infof("dry run: %d file(s) would be rewritten", total.Updated)
	case total.Updated > 0:
		lg.Successf("%d file(s) rewritten", total.Updated)
	}
	user.Reminder(total.Updated)
}
