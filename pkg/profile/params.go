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

package profile

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🔧 Params names the code shapes the profiles rewrite
type Params struct {
	TypeName        string   // type of the cross-cutting parameter, also the marker token
	ParamName       string   // conventional parameter name
	ImportPath      string   // fully qualified import of TypeName
	HelperReceiver  string   // field holding the authorization helper
	FactoryMethod   string   // controller method that builds the parameter
	OrgIDParam      string   // explicit org id argument in controllers
	ResolvedOrgID   string   // controller local derived from OrgIDParam
	SecurityImports []string // controller imports that only serve FactoryMethod
}

// Defaults matches the Spring Boot API layout the tool was written for.
func Defaults() Params {
	return Params{
		TypeName:       "ActorContext",
		ParamName:      "actor",
		ImportPath:     "com.mytegroup.api.service.common.ActorContext",
		HelperReceiver: "authHelper",
		FactoryMethod:  "getActorContext",
		OrgIDParam:     "orgId",
		ResolvedOrgID:  "resolvedOrgId",
		SecurityImports: []string{
			"org.springframework.security.core.Authentication",
			"org.springframework.security.core.context.SecurityContextHolder",
		},
	}
}

var (
	identRE  = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	importRE = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)+$`)
)

// 🔍 Validate checks every name is a plain identifier or qualified import
func (p Params) Validate() error {
	idents := []struct{ field, value string }{
		{"type_name", p.TypeName},
		{"param_name", p.ParamName},
		{"helper_receiver", p.HelperReceiver},
		{"factory_method", p.FactoryMethod},
		{"org_id_param", p.OrgIDParam},
		{"resolved_org_id", p.ResolvedOrgID},
	}
	for _, id := range idents {
		if !identRE.MatchString(id.value) {
			return errors.Errorf("%s: %q is not an identifier", id.field, id.value)
		}
	}

	if !importRE.MatchString(p.ImportPath) {
		return errors.Errorf("import_path: %q is not a qualified name", p.ImportPath)
	}
	for i, imp := range p.SecurityImports {
		if !importRE.MatchString(imp) {
			return errors.Errorf("security_imports[%d]: %q is not a qualified name", i, imp)
		}
	}
	return nil
}
