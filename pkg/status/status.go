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
	"github.com/walteh/actorstrip/pkg/text"
)

// 📊 Outcome is what happened to one file
type Outcome int

const (
	OutcomeUnknown   Outcome = iota
	OutcomeUpdated           // content changed, written unless dry run
	OutcomeUnchanged         // candidate but no rule fired
	OutcomeError             // read or write failed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// 📄 FileResult is the outcome of processing one candidate
type FileResult struct {
	Path         string // slash separated, relative to the root
	Profile      string
	Outcome      Outcome
	Err          error
	Replacements int
	Hits         []text.Hit
	Diff         string // unified diff, only filled when requested
	Written      bool   // false for dry runs and unchanged files
}

// Counts tallies one cohort.
type Counts struct {
	Candidates int
	Updated    int
	Unchanged  int
	Errors     int
}

// 📈 Report holds every result of a run in discovery order
type Report struct {
	Profiles []string // cohort order used for printing
	Results  []FileResult
	Skipped  int
	DryRun   bool
}

// 🏭 NewReport creates an empty report for the given cohorts
func NewReport(profiles ...string) *Report {
	return &Report{Profiles: append([]string(nil), profiles...)}
}

// Add appends results in the order given.
func (r *Report) Add(results ...FileResult) {
	r.Results = append(r.Results, results...)
}

// Counts tallies the results of one profile.
func (r *Report) Counts(profile string) Counts {
	var c Counts
	for _, res := range r.Results {
		if res.Profile != profile {
			continue
		}
		c.Candidates++
		switch res.Outcome {
		case OutcomeUpdated:
			c.Updated++
		case OutcomeUnchanged:
			c.Unchanged++
		case OutcomeError:
			c.Errors++
		}
	}
	return c
}

// Total tallies every profile.
func (r *Report) Total() Counts {
	var total Counts
	for _, p := range r.Profiles {
		c := r.Counts(p)
		total.Candidates += c.Candidates
		total.Updated += c.Updated
		total.Unchanged += c.Unchanged
		total.Errors += c.Errors
	}
	return total
}

// ForProfile returns the results of one profile in order.
func (r *Report) ForProfile(profile string) []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if res.Profile == profile {
			out = append(out, res)
		}
	}
	return out
}

// HasErrors reports whether any file failed.
func (r *Report) HasErrors() bool {
	for _, res := range r.Results {
		if res.Outcome == OutcomeError {
			return true
		}
	}
	return false
}
