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

	"gitlab.com/tozd/go/errors"
)

// 🧱 BlockRule deletes a declaration from its header through the brace that
// closes its body. It is best effort: when no balanced body follows the
// header the declaration stays where it is.
type BlockRule struct {
	name   string
	source string
	header *regexp.Regexp
}

// NewBlockRule builds a rule from a header pattern. The pattern is compiled
// in line mode and must stop before the opening brace.
func NewBlockRule(name, header string) (*BlockRule, error) {
	if name == "" || header == "" {
		return nil, errors.New("block rule requires name and header pattern")
	}
	re, err := regexp.Compile(ScanLine.flags() + header)
	if err != nil {
		return nil, errors.Errorf("rule %s: compiling header: %w", name, err)
	}
	return &BlockRule{name: name, source: header, header: re}, nil
}

// MustBlockRule is like NewBlockRule but panics on error.
func MustBlockRule(name, header string) *BlockRule {
	r, err := NewBlockRule(name, header)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *BlockRule) Name() string { return r.name }

func (r *BlockRule) Describe() string {
	return "block /" + r.source + "/ { ... }"
}

// Find locates the first removable declaration at or after from. ok is false
// when there is none, which callers treat as a normal outcome.
func (r *BlockRule) Find(text string, from int) (start, end int, ok bool) {
	for from <= len(text) {
		loc := r.header.FindStringIndex(text[from:])
		if loc == nil {
			return 0, 0, false
		}
		hs, he := from+loc[0], from+loc[1]

		open := he
		for open < len(text) && isSpace(text[open]) {
			open++
		}
		if open < len(text) && text[open] == '{' {
			if closeAt, balanced := MatchClose(text, open); balanced {
				return hs, closeAt + 1, true
			}
		}
		// unbalanced or missing body, look further on
		from = he
		if he == hs {
			from++
		}
	}
	return 0, 0, false
}

// Apply removes every declaration Find reports, along with its leading
// indentation, its line terminator and one blank line above it.
func (r *BlockRule) Apply(text string) (string, int) {
	count := 0
	for pass := 0; pass < maxPasses; pass++ {
		start, end, ok := r.Find(text, 0)
		if !ok {
			break
		}
		start, end = statementSpan(text, start, end)
		if start > 0 && start == lineStart(text, start) {
			prev := lineStart(text, start-1)
			if isBlank(text[prev : start-1]) {
				start = prev
			}
		}
		text = text[:start] + text[end:]
		count++
	}
	return text, count
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
