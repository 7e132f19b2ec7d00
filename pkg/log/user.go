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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints the run banner and the closing reminder
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewUserLogger creates a new user logger, out defaults to stdout
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	if out == nil {
		out = os.Stdout
	}
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

// 🧹 RunStarted announces the root and the cohorts about to be processed
func (u *UserLogger) RunStarted(root string, profiles []string, dryRun bool) {
	msg := fmt.Sprintf("Stripping %s from %s", strings.Join(profiles, ", "), root)
	if dryRun {
		msg += " (dry run)"
	}
	u.printer(pterm.Info, "🧹").Println(msg)
	u.log.Info().Str("root", root).Strs("profiles", profiles).Bool("dry_run", dryRun).Msg("run started")
}

// 👀 Reminder prints the closing note that rewritten files need review
func (u *UserLogger) Reminder(updated int) {
	msg := fmt.Sprintf("Manual review required: %d file(s) were rewritten by pattern, check the diff and compile before committing", updated)
	u.printer(pterm.Warning, "👀").Println(msg)
	u.log.Info().Int("updated", updated).Msg("manual review required")
}
