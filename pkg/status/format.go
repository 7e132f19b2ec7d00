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

package status

import (
	"fmt"
)

type FileFormatter interface {
	// FormatResult formats the confirmation or failure line of one file
	FormatResult(r FileResult, dryRun bool) string

	// FormatCounts formats the candidate counts of one cohort
	FormatCounts(profile string, c Counts) string
}

type DefaultFileFormatter struct{}

func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

func (f *DefaultFileFormatter) FormatResult(r FileResult, dryRun bool) string {
	switch r.Outcome {
	case OutcomeUpdated:
		if dryRun {
			return fmt.Sprintf("🔍 Would update %s (%d replacements)", r.Path, r.Replacements)
		}
		return fmt.Sprintf("📝 Updated %s (%d replacements)", r.Path, r.Replacements)
	case OutcomeError:
		return fmt.Sprintf("❌ Failed %s: %v", r.Path, r.Err)
	default:
		return fmt.Sprintf("👍 Unchanged %s", r.Path)
	}
}

func (f *DefaultFileFormatter) FormatCounts(profile string, c Counts) string {
	return fmt.Sprintf("📂 %s: %d candidates, %d updated, %d unchanged, %d errors",
		profile, c.Candidates, c.Updated, c.Unchanged, c.Errors)
}
