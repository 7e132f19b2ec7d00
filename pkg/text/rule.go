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

package text

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// maxPasses bounds how often a single rule is re-applied to its own output
// while looking for a fixed point.
const maxPasses = 32

// 🔧 Rule is one step of a rule set pipeline
type Rule interface {
	// Name identifies the rule in reports and logs
	Name() string
	// Describe is a short human readable summary of what the rule matches
	Describe() string
	// Apply rewrites text and returns the number of replacements made.
	// A rule that does not match returns text unchanged and zero.
	Apply(text string) (string, int)
}

// 🔍 ScanMode controls how a pattern sees line boundaries
type ScanMode int

const (
	ScanFree      ScanMode = iota // default regexp semantics
	ScanLine                      // ^ and $ match at line boundaries
	ScanMultiline                 // . also matches newlines
)

// String returns a string representation of ScanMode
func (m ScanMode) String() string {
	switch m {
	case ScanLine:
		return "line"
	case ScanMultiline:
		return "multiline"
	default:
		return "free"
	}
}

func (m ScanMode) flags() string {
	switch m {
	case ScanLine:
		return "(?m)"
	case ScanMultiline:
		return "(?s)"
	default:
		return ""
	}
}

// 🛡️ Guard decides whether a rule may run against the current text
type Guard interface {
	Allow(text string) bool
	String() string
}

// AbsentGuard allows a rule only when Token does not occur in the text.
type AbsentGuard struct {
	Token string
}

func (g AbsentGuard) Allow(text string) bool {
	return !strings.Contains(text, g.Token)
}

func (g AbsentGuard) String() string {
	return "unless " + g.Token + " present"
}

// 🔄 PatternRule replaces every match of a regular expression
type PatternRule struct {
	name        string
	mode        ScanMode
	source      string
	pattern     *regexp.Regexp
	replacement string
	literal     bool
	guard       Guard
}

// PatternOption configures a PatternRule
type PatternOption func(*PatternRule)

// Literal makes the replacement a fixed string instead of a ${n} template.
func Literal() PatternOption {
	return func(r *PatternRule) { r.literal = true }
}

// WithGuard attaches an applicability guard.
func WithGuard(g Guard) PatternOption {
	return func(r *PatternRule) { r.guard = g }
}

// 🏭 NewPatternRule compiles a pattern rule
func NewPatternRule(name string, mode ScanMode, pattern, replacement string, opts ...PatternOption) (*PatternRule, error) {
	if name == "" {
		return nil, errors.New("rule name is required")
	}
	if pattern == "" {
		return nil, errors.Errorf("rule %s: pattern is required", name)
	}

	re, err := regexp.Compile(mode.flags() + pattern)
	if err != nil {
		return nil, errors.Errorf("rule %s: compiling pattern: %w", name, err)
	}

	r := &PatternRule{
		name:        name,
		mode:        mode,
		source:      pattern,
		pattern:     re,
		replacement: replacement,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// MustPatternRule is like NewPatternRule but panics on error.
func MustPatternRule(name string, mode ScanMode, pattern, replacement string, opts ...PatternOption) *PatternRule {
	r, err := NewPatternRule(name, mode, pattern, replacement, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *PatternRule) Name() string { return r.name }

func (r *PatternRule) Describe() string {
	desc := r.mode.String() + " /" + r.source + "/"
	if r.guard != nil {
		desc += " " + r.guard.String()
	}
	return desc
}

// Apply replaces all matches, re-running on its own output until nothing
// matches so overlapping occurrences are also removed.
func (r *PatternRule) Apply(text string) (string, int) {
	if r.guard != nil && !r.guard.Allow(text) {
		return text, 0
	}

	count := 0
	for pass := 0; pass < maxPasses; pass++ {
		n := len(r.pattern.FindAllStringIndex(text, -1))
		if n == 0 {
			break
		}

		var next string
		if r.literal {
			next = r.pattern.ReplaceAllLiteralString(text, r.replacement)
		} else {
			next = r.pattern.ReplaceAllString(text, r.replacement)
		}
		if next == text {
			break
		}
		count += n
		text = next
	}
	return text, count
}
