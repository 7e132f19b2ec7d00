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
	"github.com/walteh/actorstrip/pkg/classify"
	"github.com/walteh/actorstrip/pkg/diff"
	"github.com/walteh/actorstrip/pkg/status"
	"github.com/walteh/actorstrip/pkg/text"
)

// 📄 processFile transforms one candidate and writes it back when changed
func (b *Batch) processFile(ctx context.Context, cand *classify.Candidate) status.FileResult {
	logger := zerolog.Ctx(ctx).With().Str("file", cand.RelPath).Str("profile", cand.Profile).Logger()
	ctx = logger.WithContext(ctx)

	result := status.FileResult{
		Path:    cand.RelPath,
		Profile: cand.Profile,
	}

	// Apply the profile
	unit := text.NewUnit(cand.RelPath, string(cand.Content))
	res := unit.Apply(ctx, b.sets[cand.Profile])
	result.Hits = res.Hits
	result.Replacements = res.ReplacementCount

	if !res.WasModified {
		result.Outcome = status.OutcomeUnchanged
		return result
	}

	if b.opts.Diff {
		d, err := diff.Unified(cand.RelPath, unit.Original, unit.Text)
		if err != nil {
			logger.Warn().Err(err).Msg("cannot render diff")
		}
		result.Diff = d
	}

	if b.opts.DryRun {
		result.Outcome = status.OutcomeUpdated
		return result
	}

	// Back up before overwriting
	if b.opts.Backup {
		if err := b.files.BackupFile(ctx, cand.RelPath); err != nil {
			result.Outcome = status.OutcomeError
			result.Err = err
			return result
		}
	}

	// Write back
	if err := b.files.WriteFileAtomic(ctx, cand.RelPath, []byte(unit.Text)); err != nil {
		result.Outcome = status.OutcomeError
		result.Err = err
		return result
	}

	result.Outcome = status.OutcomeUpdated
	result.Written = true
	return result
}
