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

// Package profile defines the rule sets applied to each file role.
package profile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/walteh/actorstrip/pkg/text"
	"gitlab.com/tozd/go/errors"
)

const (
	Service    = "service"
	Controller = "controller"
)

// Names lists the known profiles in processing order.
func Names() []string {
	return []string{Service, Controller}
}

// 🏭 Build returns the rule set for the named profile
func Build(name string, p Params) (*text.RuleSet, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Errorf("invalid profile params: %w", err)
	}

	switch name {
	case Service:
		return text.NewRuleSet(Service, serviceRules(p), nil)
	case Controller:
		return text.NewRuleSet(Controller, controllerRules(p), controllerPost(p))
	default:
		return nil, errors.Errorf("unknown profile %q", name)
	}
}

// BuildAll returns every profile keyed by name.
func BuildAll(p Params) (map[string]*text.RuleSet, error) {
	sets := make(map[string]*text.RuleSet, len(Names()))
	for _, name := range Names() {
		set, err := Build(name, p)
		if err != nil {
			return nil, errors.Errorf("building %s profile: %w", name, err)
		}
		sets[name] = set
	}
	return sets, nil
}

var q = regexp.QuoteMeta

// tmpl escapes a name for use inside a ${n} replacement template.
func tmpl(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

func serviceRules(p Params) []text.Rule {
	var rules []text.Rule
	rules = append(rules, importRule("import-type", p.ImportPath, nil))
	rules = append(rules, signatureRules(p)...)
	rules = append(rules, authorizationRules(p)...)
	rules = append(rules, accessorRules(p)...)
	rules = append(rules, callSiteRules(p)...)
	return rules
}

func controllerRules(p Params) []text.Rule {
	var rules []text.Rule
	rules = append(rules, importRule("import-type", p.ImportPath, nil))
	rules = append(rules, factoryRules(p)...)
	rules = append(rules, resolvedOrgIDRule(p))
	rules = append(rules, signatureRules(p)...)
	rules = append(rules, callSiteRules(p)...)
	return rules
}

// controllerPost drops the security imports once nothing calls the factory.
func controllerPost(p Params) []text.Rule {
	guard := text.AbsentGuard{Token: p.FactoryMethod}
	rules := make([]text.Rule, 0, len(p.SecurityImports))
	for _, imp := range p.SecurityImports {
		short := imp[strings.LastIndexByte(imp, '.')+1:]
		rules = append(rules, importRule("prune-import-"+short, imp, guard))
	}
	return rules
}

func importRule(name, path string, guard text.Guard) text.Rule {
	opts := []text.PatternOption{text.Literal()}
	if guard != nil {
		opts = append(opts, text.WithGuard(guard))
	}
	return text.MustPatternRule(name, text.ScanLine,
		`^[ \t]*import[ \t]+`+q(path)+`[ \t]*;[ \t]*\r?(?:\n|$)`, "", opts...)
}

// signatureRules strip "Type name" from parameter lists. First goes before
// rest and sole goes last so a list holding the parameter twice still reaches
// a fixed point in one run.
func signatureRules(p Params) []text.Rule {
	decl := q(p.TypeName) + `\s+` + q(p.ParamName) + `\b`
	return []text.Rule{
		text.MustPatternRule("signature-first", text.ScanFree, `\(\s*`+decl+`\s*,[ \t]*`, "(", text.Literal()),
		text.MustPatternRule("signature-rest", text.ScanFree, `,\s*`+decl, "", text.Literal()),
		text.MustPatternRule("signature-sole", text.ScanFree, `\(\s*`+decl+`\s*\)`, "()", text.Literal()),
	}
}

func authorizationRules(p Params) []text.Rule {
	return []text.Rule{
		text.MustCallRule(text.CallSpec{
			Name:     "ensure-role",
			Receiver: p.HelperReceiver,
			Method:   "ensureRole",
			At:       0,
			Ident:    p.ParamName,
			Action:   text.DeleteStatement,
		}),
		text.MustCallRule(text.CallSpec{
			Name:     "ensure-org-scope",
			Receiver: p.HelperReceiver,
			Method:   "ensureOrgScope",
			Arity:    2,
			At:       -1,
			Ident:    p.ParamName,
			Action:   text.DeleteStatement,
		}),
		text.MustCallRule(text.CallSpec{
			Name:     "can-view-archived",
			Receiver: p.HelperReceiver,
			Method:   "canViewArchived",
			Arity:    1,
			At:       0,
			Ident:    p.ParamName,
			Action:   text.ReplaceLiteral,
			Literal:  "false",
		}),
		text.MustCallRule(text.CallSpec{
			Name:     "resolve-org-id",
			Receiver: p.HelperReceiver,
			Method:   "resolveOrgId",
			Arity:    2,
			At:       -1,
			Ident:    p.ParamName,
			Action:   text.ReplaceWithArg,
			Keep:     0,
		}),
	}
}

var accessors = []struct{ name, method string }{
	{"accessor-user-id", "getUserId"},
	{"accessor-org-id", "getOrgId"},
	{"accessor-role", "getRole"},
}

// accessorRules replace reads off the parameter with null. The leading group
// keeps member accesses like other.actor.getUserId() out of reach.
func accessorRules(p Params) []text.Rule {
	name := q(p.ParamName)
	methods := make([]string, 0, len(accessors))
	for _, a := range accessors {
		methods = append(methods, a.method)
	}
	read := func(method string) string {
		return name + `\s*\.\s*` + method + `\s*\(\s*\)`
	}

	rules := []text.Rule{
		text.MustPatternRule("accessor-guarded", text.ScanLine,
			`(^|[^.\w$])`+name+`\s*!=\s*null\s*\?\s*`+read("(?:"+strings.Join(methods, "|")+")")+`\s*:\s*null\b`,
			"${1}null"),
	}
	for _, a := range accessors {
		rules = append(rules, text.MustPatternRule(a.name, text.ScanLine,
			`(^|[^.\w$])`+read(a.method), "${1}null"))
	}
	return rules
}

// callSiteRules strip the bare argument from calls, in the same order as the
// signature rules.
func callSiteRules(p Params) []text.Rule {
	arg := q(p.ParamName)
	return []text.Rule{
		text.MustPatternRule("call-first", text.ScanFree, `\(\s*`+arg+`\s*,[ \t]*`, "(", text.Literal()),
		text.MustPatternRule("call-middle", text.ScanFree, `,\s*`+arg+`\s*,`, ",", text.Literal()),
		text.MustPatternRule("call-last", text.ScanFree, `,\s*`+arg+`\s*\)`, ")", text.Literal()),
		text.MustPatternRule("call-sole", text.ScanFree, `\(\s*`+arg+`\s*\)`, "()", text.Literal()),
	}
}

func factoryRules(p Params) []text.Rule {
	return []text.Rule{
		text.MustBlockRule("factory-method",
			`^[ \t]*private\s+`+q(p.TypeName)+`\s+`+q(p.FactoryMethod)+`\s*\([^)]*\)(?:\s*throws\s+[\w.]+(?:\s*,\s*[\w.]+)*)?`),
		text.MustPatternRule("factory-call", text.ScanLine,
			`^[ \t]*`+q(p.TypeName)+`\s+`+q(p.ParamName)+`\s*=\s*`+q(p.FactoryMethod)+`\s*\([^)]*\)\s*;[ \t]*\r?(?:\n|$)`,
			"", text.Literal()),
	}
}

// resolvedOrgIDRule turns the fallback onto the parameter's org id into an
// early bad request when no explicit org id was given.
func resolvedOrgIDRule(p Params) text.Rule {
	org, resolved := q(p.OrgIDParam), q(p.ResolvedOrgID)
	pattern := `^([ \t]*)String\s+` + resolved + `\s*=\s*` + org + `\s*!=\s*null\s*\?\s*` + org +
		`\s*:\s*` + q(p.ParamName) + `\s*\.\s*getOrgId\s*\(\s*\)\s*;[ \t]*(\r?\n)?`

	orgT, resolvedT := tmpl(p.OrgIDParam), tmpl(p.ResolvedOrgID)
	replacement := fmt.Sprintf("${1}if (%s == null) {\n"+
		"${1}    return ResponseEntity.badRequest().body(Map.of(\"error\", \"%s is required\"));\n"+
		"${1}}\n"+
		"${1}String %s = %s;${2}", orgT, orgT, resolvedT, orgT)

	return text.MustPatternRule("resolved-org-id", text.ScanLine, pattern, replacement)
}
