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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// hclActor mirrors ActorArgs, unset attributes keep the defaults.
type hclActor struct {
	TypeName        *string  `hcl:"type_name,optional"`
	ParamName       *string  `hcl:"param_name,optional"`
	ImportPath      *string  `hcl:"import_path,optional"`
	HelperReceiver  *string  `hcl:"helper_receiver,optional"`
	FactoryMethod   *string  `hcl:"factory_method,optional"`
	OrgIDParam      *string  `hcl:"org_id_param,optional"`
	ResolvedOrgID   *string  `hcl:"resolved_org_id,optional"`
	SecurityImports []string `hcl:"security_imports,optional"`
}

type hclConfig struct {
	Root             *string   `hcl:"root,optional"`
	Marker           *string   `hcl:"marker,optional"`
	ServiceSuffix    *string   `hcl:"service_suffix,optional"`
	ControllerSuffix *string   `hcl:"controller_suffix,optional"`
	Include          []string  `hcl:"include,optional"`
	Exclude          []string  `hcl:"exclude,optional"`
	Backup           *bool     `hcl:"backup,optional"`
	Jobs             *int      `hcl:"jobs,optional"`
	Actor            *hclActor `hcl:"actor,block"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(filename)), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte, base *Config) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Overlay onto defaults
	setString(&base.Root, hclCfg.Root)
	setString(&base.Marker, hclCfg.Marker)
	setString(&base.ServiceSuffix, hclCfg.ServiceSuffix)
	setString(&base.ControllerSuffix, hclCfg.ControllerSuffix)
	if hclCfg.Include != nil {
		base.Include = hclCfg.Include
	}
	if hclCfg.Exclude != nil {
		base.Exclude = hclCfg.Exclude
	}
	if hclCfg.Backup != nil {
		base.Backup = *hclCfg.Backup
	}
	if hclCfg.Jobs != nil {
		base.Jobs = *hclCfg.Jobs
	}

	if a := hclCfg.Actor; a != nil {
		setString(&base.Actor.TypeName, a.TypeName)
		setString(&base.Actor.ParamName, a.ParamName)
		setString(&base.Actor.ImportPath, a.ImportPath)
		setString(&base.Actor.HelperReceiver, a.HelperReceiver)
		setString(&base.Actor.FactoryMethod, a.FactoryMethod)
		setString(&base.Actor.OrgIDParam, a.OrgIDParam)
		setString(&base.Actor.ResolvedOrgID, a.ResolvedOrgID)
		if a.SecurityImports != nil {
			base.Actor.SecurityImports = a.SecurityImports
		}
	}

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// envObject exposes the process environment as env.NAME.
func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}
