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

import "strings"

// skipLiteral returns the index just past a string, char or comment literal
// starting at i. If no literal starts at i it returns i unchanged. An
// unterminated literal runs to the end of text.
func skipLiteral(text string, i int) int {
	if i >= len(text) {
		return i
	}
	switch c := text[i]; {
	case c == '"' || c == '\'':
		for j := i + 1; j < len(text); j++ {
			switch text[j] {
			case '\\':
				j++
			case c:
				return j + 1
			case '\n':
				if c == '\'' {
					return j
				}
			}
		}
		return len(text)
	case c == '/' && i+1 < len(text) && text[i+1] == '/':
		if n := strings.IndexByte(text[i:], '\n'); n >= 0 {
			return i + n
		}
		return len(text)
	case c == '/' && i+1 < len(text) && text[i+1] == '*':
		if n := strings.Index(text[i+2:], "*/"); n >= 0 {
			return i + 2 + n + 2
		}
		return len(text)
	}
	return i
}

var closers = map[byte]byte{'(': ')', '[': ']', '{': '}'}

// MatchClose finds the bracket that balances the one at text[open]. Literals
// and comments are skipped, every bracket kind is tracked, and any mismatch or
// unterminated run reports ok == false.
func MatchClose(text string, open int) (end int, ok bool) {
	if open < 0 || open >= len(text) {
		return 0, false
	}
	if _, ok := closers[text[open]]; !ok {
		return 0, false
	}

	stack := []byte{closers[text[open]]}
	for i := open + 1; i < len(text); {
		if j := skipLiteral(text, i); j != i {
			i = j
			continue
		}
		c := text[i]
		if want, isOpen := closers[c]; isOpen {
			stack = append(stack, want)
		} else if c == ')' || c == ']' || c == '}' {
			if stack[len(stack)-1] != c {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
		i++
	}
	return 0, false
}

// splitArgs splits an argument list on top-level commas. Each argument is
// returned trimmed. An empty list yields no arguments.
func splitArgs(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}

	var args []string
	depth, last := 0, 0
	for i := 0; i < len(list); {
		if j := skipLiteral(list, i); j != i {
			i = j
			continue
		}
		switch list[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(list[last:i]))
				last = i + 1
			}
		}
		i++
	}
	return append(args, strings.TrimSpace(list[last:]))
}

func isHorizontalSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isBlank(s string) bool {
	return strings.TrimLeft(s, " \t\r") == ""
}

// lineStart returns the offset of the first byte of the line containing i.
func lineStart(text string, i int) int {
	return strings.LastIndexByte(text[:i], '\n') + 1
}

// lineEnd returns the offset of the newline ending the line containing i, or
// len(text) on the last line.
func lineEnd(text string, i int) int {
	if n := strings.IndexByte(text[i:], '\n'); n >= 0 {
		return i + n
	}
	return len(text)
}

// precedingCode returns the last non-space byte before i, skipping comments
// that sit between the preceding code and i. It returns 0 at the start of text.
func precedingCode(text string, i int) byte {
	s := text[:i]
	for {
		s = strings.TrimRight(s, " \t\r\n")
		if strings.HasSuffix(s, "*/") {
			if open := strings.LastIndex(s, "/*"); open >= 0 {
				s = s[:open]
				continue
			}
		}
		ls := strings.LastIndexByte(s, '\n') + 1
		if cut := lineComment(s[ls:]); cut >= 0 {
			s = s[:ls+cut]
			continue
		}
		break
	}
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}

// lineComment returns the offset of a // comment in line, or -1.
func lineComment(line string) int {
	for i := 0; i < len(line); {
		if strings.HasPrefix(line[i:], "//") {
			return i
		}
		if j := skipLiteral(line, i); j > i {
			i = j
			continue
		}
		i++
	}
	return -1
}

// statementSpan widens the span [start, end) of a statement that is about to
// be deleted so no stray whitespace is left behind:
//   - alone on its line(s): the whole lines including the line terminator
//   - last thing on its line: the horizontal whitespace before it
//   - followed by more code: the horizontal whitespace after it
func statementSpan(text string, start, end int) (int, int) {
	ls, le := lineStart(text, start), lineEnd(text, end)
	before, after := isBlank(text[ls:start]), isBlank(text[end:le])

	switch {
	case before && after:
		if le < len(text) {
			le++
		}
		return ls, le
	case after:
		for start > ls && isHorizontalSpace(text[start-1]) {
			start--
		}
		return start, end
	default:
		for end < le && isHorizontalSpace(text[end]) {
			end++
		}
		return start, end
	}
}
