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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/actorstrip/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func TestLogger(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_confirmation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogConfirmation(status.FileResult{Path: "a/AService.java", Outcome: status.OutcomeUpdated, Replacements: 3}, false)
				logger.LogConfirmation(status.FileResult{Path: "b/BService.java", Outcome: status.OutcomeUpdated, Replacements: 1}, true)
				logger.LogConfirmation(status.FileResult{Path: "c/CService.java", Outcome: status.OutcomeError, Err: errors.New("permission denied")}, false)
				logger.LogConfirmation(status.FileResult{Path: "d/DService.java", Outcome: status.OutcomeUnchanged}, false)
			},
			wantLogs: []string{
				"📝 Updated a/AService.java (3 replacements)",
				"🔍 Would update b/BService.java (1 replacements)",
				"❌ Failed c/CService.java: permission denied",
			},
		},
		{
			name: "log_counts",
			op: func(t *testing.T, logger *Logger) {
				logger.LogCounts("service", status.Counts{Candidates: 3, Updated: 2, Unchanged: 1})
			},
			wantLogs: []string{
				"📂 service: 3 candidates, 2 updated, 1 unchanged, 0 errors",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("stripping ActorContext")
			},
			wantLogs: []string{
				"actorstrip • stripping ActorContext",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLogFileResult(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var console, records bytes.Buffer
	logger := New(&console, zerolog.New(&records))

	res := status.FileResult{Path: "OrgService.java", Profile: "service", Outcome: status.OutcomeUpdated, Replacements: 2, Written: true}
	logger.LogFileResult(context.Background(), res)

	line := strings.TrimRight(console.String(), "\n")
	assert.True(t, strings.HasPrefix(line, "    ⟳ OrgService.java"), "line should start with the symbol and path")
	assert.True(t, strings.HasSuffix(line, "2 replacements"), "line should end with the replacement count")

	assert.Contains(t, records.String(), `"file":"OrgService.java"`, "record should name the file")
	assert.Contains(t, records.String(), `"outcome":"updated"`, "record should carry the outcome")
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx), "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestUserLogger(t *testing.T) {
	var out bytes.Buffer
	user := NewUserLogger(zerolog.Nop().WithContext(context.Background()), &out)

	user.RunStarted("src/main/java", []string{"service", "controller"}, true)
	user.Reminder(2)

	got := out.String()
	assert.Contains(t, got, "Stripping service, controller from src/main/java (dry run)", "banner should be printed")
	assert.Contains(t, got, "Manual review required: 2 file(s) were rewritten by pattern", "reminder should be printed")
}

func TestRenderSummary(t *testing.T) {
	report := status.NewReport("service", "controller")
	report.Add(status.FileResult{Path: "A.java", Profile: "service", Outcome: status.OutcomeUpdated})
	report.Add(status.FileResult{Path: "B.java", Profile: "service", Outcome: status.OutcomeUnchanged})
	report.Add(status.FileResult{Path: "C.java", Profile: "controller", Outcome: status.OutcomeError, Err: errors.New("boom")})

	var buf bytes.Buffer
	RenderSummary(&buf, report)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines, "table should be rendered")
	assert.Contains(t, lines[0], "CANDIDATES", "header should be rendered")

	var service, controller, total string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "service"):
			service = l
		case strings.Contains(l, "controller"):
			controller = l
		case strings.Contains(l, "TOTAL"):
			total = l
		}
	}
	assert.Equal(t, []string{"service", "2", "1", "1", "0"}, cells(service), "service row should match")
	assert.Equal(t, []string{"controller", "1", "0", "0", "1"}, cells(controller), "controller row should match")
	assert.Equal(t, []string{"TOTAL", "3", "1", "1", "1"}, cells(total), "total row should match")
}

// cells splits a rendered table row, dropping column separators
func cells(row string) []string {
	var out []string
	for _, f := range strings.Fields(row) {
		if f != "|" {
			out = append(out, f)
		}
	}
	return out
}

func TestRenderRules(t *testing.T) {
	var buf bytes.Buffer
	RenderRules(&buf, []RuleRow{
		{Profile: "controller", Phase: "main", Name: "import-type", Detail: "line /import/"},
		{Profile: "controller", Phase: "post", Name: "prune-import-Authentication", Detail: "line /x/ unless getActorContext present"},
	})

	out := buf.String()
	assert.Contains(t, out, "RULE", "header should be rendered")
	assert.Contains(t, out, "prune-import-Authentication", "rule name should be rendered")
	assert.Contains(t, out, "unless getActorContext present", "detail should be rendered")
}
