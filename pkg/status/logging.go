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
	"strings"

	"github.com/fatih/color"
)

const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 55 // Base width for filename
	profileWidth = 12 // Width for profile name
	outcomeWidth = 10 // Width for outcome text
)

// FormatFileLine renders one result as an aligned, coloured console line.
func FormatFileLine(r FileResult) string {
	// Determine prefix symbol
	var prefix string
	switch r.Outcome {
	case OutcomeUpdated:
		prefix = color.YellowString("⟳")
	case OutcomeError:
		prefix = color.RedString("✗")
	case OutcomeUnchanged:
		prefix = color.GreenString("✓")
	default:
		prefix = color.HiBlackString("-")
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, r.Path)
	profilePart := fmt.Sprintf("%-*s", profileWidth, r.Profile)
	outcomePart := fmt.Sprintf("%-*s", outcomeWidth, r.Outcome)

	detail := ""
	switch {
	case r.Err != nil:
		detail = color.RedString(r.Err.Error())
	case r.Replacements > 0:
		detail = color.HiBlackString("%d replacements", r.Replacements)
	}

	// Build final string with indentation
	return strings.TrimRight(fmt.Sprintf("%s%s %s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		profilePart,
		outcomePart,
		detail,
	), " ")
}
