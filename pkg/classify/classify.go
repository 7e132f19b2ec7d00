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

// Package classify decides which files under a root are candidates for a
// profile.
package classify

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🗂️ Cohort is a file role identified by a filename suffix
type Cohort struct {
	Profile string
	Suffix  string
}

// 📄 Candidate is a file selected for a cohort
type Candidate struct {
	RelPath string // slash separated, relative to the root
	Profile string
	Content []byte // content read during the marker probe
}

// ❌ Failure is a file that matched a suffix but could not be probed
type Failure struct {
	RelPath string
	Profile string
	Err     error
}

// Selection is the outcome of classifying one root.
type Selection struct {
	Candidates []Candidate
	Failures   []Failure
	Skipped    int // suffix matched but marker absent or filtered by glob
}

// ForProfile returns the candidates and failures of one profile.
func (s *Selection) ForProfile(profile string) ([]Candidate, []Failure) {
	var cands []Candidate
	var fails []Failure
	for _, c := range s.Candidates {
		if c.Profile == profile {
			cands = append(cands, c)
		}
	}
	for _, f := range s.Failures {
		if f.Profile == profile {
			fails = append(fails, f)
		}
	}
	return cands, fails
}

// 🔍 Classifier filters files by suffix, globs and a marker token
type Classifier struct {
	FS      fs.FS
	Marker  string
	Cohorts []Cohort
	Include []string // doublestar patterns, empty means everything
	Exclude []string // doublestar patterns
}

// 🏭 New validates the globs and returns a classifier over fsys
func New(fsys fs.FS, marker string, cohorts []Cohort, include, exclude []string) (*Classifier, error) {
	if marker == "" {
		return nil, errors.New("marker token is required")
	}
	if len(cohorts) == 0 {
		return nil, errors.New("at least one cohort is required")
	}
	for _, c := range cohorts {
		if c.Suffix == "" {
			return nil, errors.Errorf("cohort %s: suffix is required", c.Profile)
		}
	}
	for _, pattern := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return &Classifier{FS: fsys, Marker: marker, Cohorts: cohorts, Include: include, Exclude: exclude}, nil
}

// cohortFor returns the first cohort whose suffix matches name.
func (c *Classifier) cohortFor(name string) (Cohort, bool) {
	for _, co := range c.Cohorts {
		if strings.HasSuffix(name, co.Suffix) {
			return co, true
		}
	}
	return Cohort{}, false
}

func (c *Classifier) filtered(rel string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	if len(c.Include) == 0 {
		return false
	}
	for _, pattern := range c.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}

// Probe reports whether content holds the marker token.
func (c *Classifier) Probe(content []byte) bool {
	return strings.Contains(string(content), c.Marker)
}

// 🚶 Classify walks the whole file system and sorts files into cohorts.
// Unreadable files become failures, the walk itself only fails when the
// root cannot be listed or ctx is cancelled.
func (c *Classifier) Classify(ctx context.Context) (*Selection, error) {
	logger := zerolog.Ctx(ctx)
	sel := &Selection{}

	err := fs.WalkDir(c.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == "." {
				return err
			}
			logger.Warn().Err(err).Str("path", path).Msg("cannot walk path")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		cohort, ok := c.cohortFor(d.Name())
		if !ok {
			return nil
		}
		if c.filtered(path) {
			logger.Debug().Str("file", path).Msg("file filtered by glob")
			sel.Skipped++
			return nil
		}

		content, err := fs.ReadFile(c.FS, path)
		if err != nil {
			sel.Failures = append(sel.Failures, Failure{
				RelPath: path,
				Profile: cohort.Profile,
				Err:     errors.Errorf("reading %s: %w", path, err),
			})
			return nil
		}

		if !c.Probe(content) {
			sel.Skipped++
			return nil
		}

		sel.Candidates = append(sel.Candidates, Candidate{
			RelPath: path,
			Profile: cohort.Profile,
			Content: content,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking tree: %w", err)
	}

	sort.SliceStable(sel.Candidates, func(i, j int) bool { return sel.Candidates[i].RelPath < sel.Candidates[j].RelPath })
	return sel, nil
}

// Resolve joins a candidate's relative path onto root for write back.
func Resolve(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
