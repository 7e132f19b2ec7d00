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
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📄 SourceUnit is one file's text while it moves through a rule set
type SourceUnit struct {
	Path     string
	Original string
	Text     string
	Hits     []Hit
}

// ReadUnit reads the whole content into a new unit.
func ReadUnit(path string, content io.Reader) (*SourceUnit, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}
	return NewUnit(path, string(data)), nil
}

// NewUnit wraps text that has already been read.
func NewUnit(path, text string) *SourceUnit {
	return &SourceUnit{Path: path, Original: text, Text: text}
}

// Changed reports whether the text differs from what was read.
func (u *SourceUnit) Changed() bool {
	return u.Text != u.Original
}

// Apply runs set over the unit's current text.
func (u *SourceUnit) Apply(ctx context.Context, set *RuleSet) *Result {
	res := set.Transform(u.Text)
	u.Text = res.Modified
	u.Hits = append(u.Hits, res.Hits...)

	logger := zerolog.Ctx(ctx)
	for _, h := range res.Hits {
		logger.Debug().
			Str("file", u.Path).
			Str("profile", set.Name()).
			Str("rule", h.Rule).
			Int("count", h.Count).
			Msg("rule applied")
	}
	return res
}
