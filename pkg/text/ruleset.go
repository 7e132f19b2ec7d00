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
	"gitlab.com/tozd/go/errors"
)

// 📚 RuleSet is a named, ordered, immutable list of rules. Post rules run
// after every main rule, against the fully transformed text.
type RuleSet struct {
	name  string
	rules []Rule
	post  []Rule
}

// 🏭 NewRuleSet builds a rule set. The slices are copied.
func NewRuleSet(name string, rules []Rule, post []Rule) (*RuleSet, error) {
	if name == "" {
		return nil, errors.New("rule set name is required")
	}

	seen := map[string]bool{}
	for _, group := range [][]Rule{rules, post} {
		for i, r := range group {
			if r == nil {
				return nil, errors.Errorf("rule set %s: rule %d is nil", name, i)
			}
			if seen[r.Name()] {
				return nil, errors.Errorf("rule set %s: duplicate rule %q", name, r.Name())
			}
			seen[r.Name()] = true
		}
	}

	return &RuleSet{
		name:  name,
		rules: append([]Rule(nil), rules...),
		post:  append([]Rule(nil), post...),
	}, nil
}

func (s *RuleSet) Name() string { return s.name }

// Rules returns a copy of the main rules in order.
func (s *RuleSet) Rules() []Rule { return append([]Rule(nil), s.rules...) }

// Post returns a copy of the post rules in order.
func (s *RuleSet) Post() []Rule { return append([]Rule(nil), s.post...) }

// Hit records how often one rule fired.
type Hit struct {
	Rule  string
	Count int
}

// 📊 Result contains the outcome of running a rule set over one text
type Result struct {
	// Original is the input text
	Original string
	// Modified is the output text
	Modified string
	// WasModified is Modified != Original
	WasModified bool
	// ReplacementCount is the sum of all hits
	ReplacementCount int
	// Hits lists the rules that fired, in pipeline order
	Hits []Hit
}

// 🔄 Transform runs the main rules in order, each on the output of the one
// before, then the post rules. The whole pipeline repeats until a pass leaves
// the text unchanged, so the output is a fixed point and transforming it again
// is a no-op. It is a pure function of its input.
func (s *RuleSet) Transform(input string) *Result {
	res := &Result{Original: input}
	seen := map[string]int{}

	current := input
	for pass := 0; pass < maxPasses; pass++ {
		before := current
		for _, group := range [][]Rule{s.rules, s.post} {
			for _, r := range group {
				next, n := r.Apply(current)
				if n > 0 && next != current {
					if i, ok := seen[r.Name()]; ok {
						res.Hits[i].Count += n
					} else {
						seen[r.Name()] = len(res.Hits)
						res.Hits = append(res.Hits, Hit{Rule: r.Name(), Count: n})
					}
					res.ReplacementCount += n
				}
				current = next
			}
		}
		if current == before {
			break
		}
	}

	res.Modified = current
	res.WasModified = current != input
	return res
}
