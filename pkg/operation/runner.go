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

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner calls a function for every index of a batch
type Runner struct {
	logger *zerolog.Logger
	jobs   int
}

// 🏗️ NewRunner creates a new runner, jobs below two run sequentially
func NewRunner(logger *zerolog.Logger, jobs int) *Runner {
	if jobs < 1 {
		jobs = 1
	}
	return &Runner{
		logger: logger,
		jobs:   jobs,
	}
}

// 🏃 Run calls fn for 0..n-1. A cancelled ctx stops new calls from being
// scheduled and is returned once the calls in flight are done.
func (r *Runner) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	if r.jobs > 1 {
		return r.runAsync(ctx, n, fn)
	}
	return r.runSync(ctx, n, fn)
}

// 🔄 runSync runs every call on the current goroutine
func (r *Runner) runSync(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			r.logger.Warn().Int("remaining", n-i).Msg("batch cancelled")
			return err
		}
		fn(ctx, i)
	}
	return nil
}

// ⚡ runAsync runs up to r.jobs calls at once
func (r *Runner) runAsync(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	var g errgroup.Group
	g.SetLimit(r.jobs)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			r.logger.Warn().Int("remaining", n-i).Msg("batch cancelled")
			_ = g.Wait()
			return err
		}
		i := i
		g.Go(func() error {
			fn(ctx, i)
			return nil
		})
	}

	return g.Wait()
}
