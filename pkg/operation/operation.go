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

package operation

import (
	"context"
	"io/fs"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/actorstrip/pkg/classify"
	"github.com/walteh/actorstrip/pkg/config"
	"github.com/walteh/actorstrip/pkg/profile"
	"github.com/walteh/actorstrip/pkg/status"
	"github.com/walteh/actorstrip/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one batch over a source root
type Operation interface {
	Execute(ctx context.Context) (*status.Report, error)
}

// 🔧 Options contains configuration for a batch
type Options struct {
	// Config holds the root, suffixes, globs and naming
	Config *config.Config
	// Profiles restricts the cohorts, empty means all of them
	Profiles []string
	// DryRun transforms and reports without writing
	DryRun bool
	// Diff fills FileResult.Diff for changed files
	Diff bool
	// Backup writes <file>.bak before overwriting
	Backup bool
	// Jobs is the worker limit, values below two run sequentially
	Jobs int
	// FS overrides the tree that is walked, defaults to os.DirFS(Config.Root)
	FS fs.FS
	// Files overrides the write side, defaults to status.New(Config.Root)
	Files status.FileManager
}

// 🏭 New validates opts and builds the rule sets for the selected cohorts
func New(opts Options) (*Batch, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}

	profiles := opts.Profiles
	if len(profiles) == 0 {
		profiles = profile.Names()
	}

	sets := make(map[string]*text.RuleSet, len(profiles))
	cohorts := make([]classify.Cohort, 0, len(profiles))
	for _, name := range profiles {
		set, err := profile.Build(name, opts.Config.Params())
		if err != nil {
			return nil, errors.Errorf("building %s profile: %w", name, err)
		}
		sets[name] = set

		suffix := opts.Config.ServiceSuffix
		if name == profile.Controller {
			suffix = opts.Config.ControllerSuffix
		}
		cohorts = append(cohorts, classify.Cohort{Profile: name, Suffix: suffix})
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = os.DirFS(opts.Config.Root)
	}
	files := opts.Files
	if files == nil {
		files = status.New(opts.Config.Root)
	}

	classifier, err := classify.New(fsys, opts.Config.Marker, cohorts, opts.Config.Include, opts.Config.Exclude)
	if err != nil {
		return nil, errors.Errorf("creating classifier: %w", err)
	}

	return &Batch{
		opts:       opts,
		profiles:   profiles,
		sets:       sets,
		classifier: classifier,
		files:      files,
	}, nil
}

var _ Operation = (*Batch)(nil)

// 📦 Batch strips the parameter from every candidate under one root
type Batch struct {
	opts       Options
	profiles   []string
	sets       map[string]*text.RuleSet
	classifier *classify.Classifier
	files      status.FileManager
}

// work is one slot of the batch, either a candidate or a probe failure.
type work struct {
	cand *classify.Candidate
	fail *classify.Failure
}

func (w work) relPath() string {
	if w.cand != nil {
		return w.cand.RelPath
	}
	return w.fail.RelPath
}

// 🏃 Execute classifies the tree, transforms every candidate and writes
// back the changed ones. Per-file failures land in the report, the error
// return is kept for walk failures and cancellation.
func (b *Batch) Execute(ctx context.Context) (*status.Report, error) {
	logger := zerolog.Ctx(ctx)

	// Classify
	sel, err := b.classifier.Classify(ctx)
	if err != nil {
		return nil, errors.Errorf("classifying %s: %w", b.opts.Config.Root, err)
	}
	logger.Debug().
		Int("candidates", len(sel.Candidates)).
		Int("failures", len(sel.Failures)).
		Int("skipped", sel.Skipped).
		Msg("tree classified")

	// Lay out the work in reporting order
	var items []work
	for _, name := range b.profiles {
		cands, fails := sel.ForProfile(name)
		group := make([]work, 0, len(cands)+len(fails))
		for i := range cands {
			group = append(group, work{cand: &cands[i]})
		}
		for i := range fails {
			group = append(group, work{fail: &fails[i]})
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].relPath() < group[j].relPath() })
		items = append(items, group...)
	}

	// Transform
	results := make([]status.FileResult, len(items))
	runner := NewRunner(logger, b.opts.Jobs)
	runErr := runner.Run(ctx, len(items), func(ctx context.Context, i int) {
		item := items[i]
		if item.fail != nil {
			results[i] = status.FileResult{
				Path:    item.fail.RelPath,
				Profile: item.fail.Profile,
				Outcome: status.OutcomeError,
				Err:     item.fail.Err,
			}
			return
		}
		results[i] = b.processFile(ctx, item.cand)
	})

	report := status.NewReport(b.profiles...)
	report.Skipped = sel.Skipped
	report.DryRun = b.opts.DryRun
	for i, res := range results {
		if res.Outcome == status.OutcomeUnknown {
			res = status.FileResult{
				Path:    items[i].relPath(),
				Profile: profileOf(items[i]),
				Outcome: status.OutcomeError,
				Err:     errors.New("not processed: run cancelled"),
			}
		}
		report.Add(res)
	}

	if runErr != nil {
		return report, errors.Errorf("running batch: %w", runErr)
	}
	return report, nil
}

func profileOf(w work) string {
	if w.cand != nil {
		return w.cand.Profile
	}
	return w.fail.Profile
}
