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
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/actorstrip/pkg/profile"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes data on top of base, which holds the defaults
	Parse(ctx context.Context, data []byte, base *Config) error

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎭 ActorArgs names the cross-cutting parameter and its helpers
type ActorArgs struct {
	TypeName        string   `json:"type_name" yaml:"type_name"`
	ParamName       string   `json:"param_name" yaml:"param_name"`
	ImportPath      string   `json:"import_path" yaml:"import_path"`
	HelperReceiver  string   `json:"helper_receiver" yaml:"helper_receiver"`
	FactoryMethod   string   `json:"factory_method" yaml:"factory_method"`
	OrgIDParam      string   `json:"org_id_param" yaml:"org_id_param"`
	ResolvedOrgID   string   `json:"resolved_org_id" yaml:"resolved_org_id"`
	SecurityImports []string `json:"security_imports" yaml:"security_imports"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Root             string    `json:"root" yaml:"root"`
	Marker           string    `json:"marker,omitempty" yaml:"marker,omitempty"`
	ServiceSuffix    string    `json:"service_suffix" yaml:"service_suffix"`
	ControllerSuffix string    `json:"controller_suffix" yaml:"controller_suffix"`
	Include          []string  `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude          []string  `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Actor            ActorArgs `json:"actor" yaml:"actor"`
	Backup           bool      `json:"backup,omitempty" yaml:"backup,omitempty"`
	Jobs             int       `json:"jobs,omitempty" yaml:"jobs,omitempty"`

	location string
}

// DefaultExclude skips hidden directories and build output. A config file
// that sets exclude replaces the list, so package directories with these
// names can be opted back in.
var DefaultExclude = []string{"**/.*/**", "**/build/**", "**/target/**", "**/node_modules/**"}

// 🏭 Default returns the configuration used when no file is given
func Default() *Config {
	p := profile.Defaults()
	return &Config{
		Root:             filepath.Join("src", "main", "java"),
		ServiceSuffix:    "Service.java",
		ControllerSuffix: "Controller.java",
		Actor: ActorArgs{
			TypeName:        p.TypeName,
			ParamName:       p.ParamName,
			ImportPath:      p.ImportPath,
			HelperReceiver:  p.HelperReceiver,
			FactoryMethod:   p.FactoryMethod,
			OrgIDParam:      p.OrgIDParam,
			ResolvedOrgID:   p.ResolvedOrgID,
			SecurityImports: p.SecurityImports,
		},
		Exclude: append([]string(nil), DefaultExclude...),
		Jobs:    1,
	}
}

// Location is the file the config was loaded from, empty for defaults.
func (cfg *Config) Location() string {
	return cfg.location
}

// Params converts the actor section into profile parameters.
func (cfg *Config) Params() profile.Params {
	return profile.Params{
		TypeName:        cfg.Actor.TypeName,
		ParamName:       cfg.Actor.ParamName,
		ImportPath:      cfg.Actor.ImportPath,
		HelperReceiver:  cfg.Actor.HelperReceiver,
		FactoryMethod:   cfg.Actor.FactoryMethod,
		OrgIDParam:      cfg.Actor.OrgIDParam,
		ResolvedOrgID:   cfg.Actor.ResolvedOrgID,
		SecurityImports: append([]string(nil), cfg.Actor.SecurityImports...),
	}
}

// 🔍 Validate checks if the configuration is valid and fills derived defaults
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return errors.Errorf("root is required")
	}
	if cfg.ServiceSuffix == "" {
		return errors.Errorf("service_suffix is required")
	}
	if cfg.ControllerSuffix == "" {
		return errors.Errorf("controller_suffix is required")
	}
	if cfg.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}
	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob pattern %q", pattern)
		}
	}
	if err := cfg.Params().Validate(); err != nil {
		return errors.Errorf("actor: %w", err)
	}

	// Clean up paths
	cfg.Root = filepath.Clean(cfg.Root)

	// Set defaults
	if cfg.Marker == "" {
		cfg.Marker = cfg.Actor.TypeName
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = 1
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s [*%s, *%s] marker=%s", cfg.Root, cfg.ServiceSuffix, cfg.ControllerSuffix, cfg.Marker)
}
