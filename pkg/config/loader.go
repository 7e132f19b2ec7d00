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

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultNames are the file names Find looks for, in order.
var DefaultNames = []string{
	".actorstrip.yaml",
	".actorstrip.yml",
	".actorstrip.json",
	".actorstrip.hcl",
}

// 🔍 Find returns the first default config file present in dir
func Find(dir string) (string, bool) {
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// 📥 Load reads a config file on top of the defaults and validates it.
// The format is picked by extension.
func Load(ctx context.Context, path string) (*Config, error) {
	parser := GetParser(path)
	if parser == nil {
		return nil, errors.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := parser.Parse(ctx, data, cfg); err != nil {
		return nil, errors.Errorf("loading %s: %w", path, err)
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", path).Str("root", cfg.Root).Msg("config loaded")
	return cfg, nil
}

// 🎯 Resolve loads path when given, otherwise the first default file in dir,
// otherwise the validated defaults.
func Resolve(ctx context.Context, path, dir string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}
	if found, ok := Find(dir); ok {
		return Load(ctx, found)
	}
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating default config: %w", err)
	}
	return cfg, nil
}
