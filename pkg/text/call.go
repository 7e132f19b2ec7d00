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
	"fmt"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🎯 CallAction is what a CallRule does with a matched call
type CallAction int

const (
	DeleteStatement CallAction = iota // drop the call and its ';'
	ReplaceLiteral                    // replace the call expression with a literal
	ReplaceWithArg                    // replace the call expression with one of its arguments
)

// String returns a string representation of CallAction
func (a CallAction) String() string {
	switch a {
	case DeleteStatement:
		return "delete"
	case ReplaceLiteral:
		return "literal"
	case ReplaceWithArg:
		return "argument"
	default:
		return "unknown"
	}
}

// CallSpec describes the helper call a CallRule recognizes.
type CallSpec struct {
	Name     string
	Receiver string // e.g. authHelper, an optional this. prefix is accepted
	Method   string
	Arity    int    // exact argument count, 0 accepts any non-empty list
	At       int    // index of the argument that must equal Ident, negative counts from the end
	Ident    string // argument text that must appear at At
	Action   CallAction
	Literal  string // used by ReplaceLiteral
	Keep     int    // argument index used by ReplaceWithArg
}

// 📞 CallRule elides calls to a fixed helper method. The argument list is
// matched by bracket balancing, so calls spanning lines or containing nested
// parentheses are handled. Any imbalance leaves the call untouched.
type CallRule struct {
	spec   CallSpec
	locate *regexp.Regexp
}

// 🏭 NewCallRule validates spec and builds the rule
func NewCallRule(spec CallSpec) (*CallRule, error) {
	if spec.Name == "" || spec.Receiver == "" || spec.Method == "" {
		return nil, errors.New("call rule requires name, receiver and method")
	}
	if spec.Ident == "" {
		return nil, errors.Errorf("rule %s: ident is required", spec.Name)
	}
	if spec.Action == ReplaceLiteral && strings.Contains(spec.Literal, spec.Method) {
		return nil, errors.Errorf("rule %s: literal must not contain the method name", spec.Name)
	}
	if spec.Action == ReplaceWithArg && (spec.Arity == 0 || spec.Keep < 0 || spec.Keep >= spec.Arity) {
		return nil, errors.Errorf("rule %s: keep index %d outside arity %d", spec.Name, spec.Keep, spec.Arity)
	}

	re, err := regexp.Compile(`\b(?:this\s*\.\s*)?` + regexp.QuoteMeta(spec.Receiver) + `\s*\.\s*` + regexp.QuoteMeta(spec.Method) + `\s*\(`)
	if err != nil {
		return nil, errors.Errorf("rule %s: compiling locator: %w", spec.Name, err)
	}
	return &CallRule{spec: spec, locate: re}, nil
}

// MustCallRule is like NewCallRule but panics on error.
func MustCallRule(spec CallSpec) *CallRule {
	r, err := NewCallRule(spec)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *CallRule) Name() string { return r.spec.Name }

func (r *CallRule) Describe() string {
	s := r.spec
	var action string
	switch s.Action {
	case DeleteStatement:
		action = "delete statement"
	case ReplaceLiteral:
		action = fmt.Sprintf("-> %s", s.Literal)
	case ReplaceWithArg:
		action = fmt.Sprintf("-> argument %d", s.Keep)
	}
	return fmt.Sprintf("call %s.%s(%s at %d) %s", s.Receiver, s.Method, s.Ident, s.At, action)
}

// Apply rewrites every matching call, repeating until no call matches. Nested
// calls to the same helper are resolved from the outside in.
func (r *CallRule) Apply(text string) (string, int) {
	count := 0
	for pass := 0; pass < maxPasses; pass++ {
		next, n := r.applyOnce(text)
		if n == 0 {
			break
		}
		count += n
		text = next
	}
	return text, count
}

type edit struct {
	start, end int
	repl       string
}

func (r *CallRule) applyOnce(text string) (string, int) {
	var edits []edit
	consumed := 0

	for _, loc := range r.locate.FindAllStringIndex(text, -1) {
		start, open := loc[0], loc[1]-1
		if start < consumed {
			continue
		}
		// a preceding dot means some other object's member, not the helper
		if p := strings.TrimRight(text[:start], " \t\r\n"); strings.HasSuffix(p, ".") {
			continue
		}

		closeAt, ok := MatchClose(text, open)
		if !ok {
			continue
		}
		args := splitArgs(text[open+1 : closeAt])
		if !r.argsMatch(args) {
			continue
		}

		e, ok := r.rewrite(text, start, closeAt+1, args)
		if !ok {
			continue
		}
		if e.start < consumed {
			e.start = consumed
		}
		edits = append(edits, e)
		consumed = e.end
	}

	if len(edits) == 0 {
		return text, 0
	}

	var b strings.Builder
	last := 0
	for _, e := range edits {
		b.WriteString(text[last:e.start])
		b.WriteString(e.repl)
		last = e.end
	}
	b.WriteString(text[last:])
	return b.String(), len(edits)
}

func (r *CallRule) argsMatch(args []string) bool {
	s := r.spec
	if len(args) == 0 || (s.Arity > 0 && len(args) != s.Arity) {
		return false
	}
	at := s.At
	if at < 0 {
		at += len(args)
	}
	if at < 0 || at >= len(args) {
		return false
	}
	return args[at] == s.Ident
}

func (r *CallRule) rewrite(text string, start, end int, args []string) (edit, bool) {
	switch r.spec.Action {
	case ReplaceLiteral:
		return edit{start: start, end: end, repl: r.spec.Literal}, true
	case ReplaceWithArg:
		return edit{start: start, end: end, repl: args[r.spec.Keep]}, true
	case DeleteStatement:
		semi := end
		for semi < len(text) && isHorizontalSpace(text[semi]) {
			semi++
		}
		if semi >= len(text) || text[semi] != ';' {
			// used as an expression, deleting it would leave a hole
			return edit{}, false
		}
		switch precedingCode(text, start) {
		case 0, ';', '{', '}':
		default:
			// the value is assigned, returned or guarded by a braceless branch
			return edit{}, false
		}
		from, to := statementSpan(text, start, semi+1)
		return edit{start: from, end: to}, true
	}
	return edit{}, false
}
