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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchClose(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		open    int
		wantEnd int
		wantOK  bool
	}{
		{name: "nested_parens", text: "f(a, (b), c)", open: 1, wantEnd: 11, wantOK: true},
		{name: "string_with_paren", text: `f(a, ")", c)`, open: 1, wantEnd: 11, wantOK: true},
		{name: "block_comment", text: "f(a /* ) */, b)", open: 1, wantEnd: 14, wantOK: true},
		{name: "char_literal", text: "f(')')", open: 1, wantEnd: 5, wantOK: true},
		{name: "braces", text: "{ x(); }", open: 0, wantEnd: 7, wantOK: true},
		{name: "line_comment", text: "f(a // )\n)", open: 1, wantEnd: 9, wantOK: true},
		{name: "unterminated", text: "f(a, b", open: 1, wantOK: false},
		{name: "mismatched_kind", text: "f(a]", open: 1, wantOK: false},
		{name: "not_a_bracket", text: "f(a)", open: 0, wantOK: false},
		{name: "out_of_range", text: "f()", open: 7, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, ok := MatchClose(tt.text, tt.open)
			assert.Equal(t, tt.wantOK, ok, "ok should match")
			if tt.wantOK {
				assert.Equal(t, tt.wantEnd, end, "end should match")
			}
		})
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name string
		list string
		want []string
	}{
		{name: "empty", list: "  ", want: nil},
		{name: "single", list: "actor", want: []string{"actor"}},
		{name: "trimmed", list: " actor ,\n  \"ADMIN\" ", want: []string{"actor", `"ADMIN"`}},
		{name: "nested_call", list: "actor, List.of(a, b)", want: []string{"actor", "List.of(a, b)"}},
		{name: "comma_in_string", list: `actor, "a,b"`, want: []string{"actor", `"a,b"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitArgs(tt.list), "arguments should match")
		})
	}
}

func TestStatementSpan(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		want       string
	}{
		{
			name:  "whole_line",
			text:  "a();\n    stmt;\nb();\n",
			start: 9, end: 14,
			want: "a();\nb();\n",
		},
		{
			name:  "trailing_statement",
			text:  "a(); stmt;\n",
			start: 5, end: 10,
			want: "a();\n",
		},
		{
			name:  "leading_statement",
			text:  "stmt; a();\n",
			start: 0, end: 5,
			want: "a();\n",
		},
		{
			name:  "last_line_without_newline",
			text:  "a();\n  stmt;",
			start: 7, end: 12,
			want: "a();\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := statementSpan(tt.text, tt.start, tt.end)
			assert.Equal(t, tt.want, tt.text[:from]+tt.text[to:], "text after removal should match")
		})
	}
}
