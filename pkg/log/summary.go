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
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/walteh/actorstrip/pkg/status"
)

// 📊 RenderSummary writes one row per cohort plus a total footer
func RenderSummary(w io.Writer, report *status.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Profile", "Candidates", "Updated", "Unchanged", "Errors"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, p := range report.Profiles {
		c := report.Counts(p)
		table.Append([]string{p, itoa(c.Candidates), itoa(c.Updated), itoa(c.Unchanged), itoa(c.Errors)})
	}

	total := report.Total()
	table.SetFooter([]string{"Total", itoa(total.Candidates), itoa(total.Updated), itoa(total.Unchanged), itoa(total.Errors)})
	table.Render()
}

// 📋 RuleRow is one line of the rule listing
type RuleRow struct {
	Profile string
	Phase   string
	Name    string
	Detail  string
}

// RenderRules writes the rule listing as a table.
func RenderRules(w io.Writer, rows []RuleRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Profile", "Phase", "Rule", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoMergeCells(true)

	for _, r := range rows {
		table.Append([]string{r.Profile, r.Phase, r.Name, r.Detail})
	}
	table.Render()
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}
