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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallRule(t *testing.T) {
	ensureRole := CallSpec{Name: "ensure-role", Receiver: "authHelper", Method: "ensureRole", Ident: "actor", Action: DeleteStatement}
	ensureScope := CallSpec{Name: "ensure-scope", Receiver: "authHelper", Method: "ensureOrgScope", Arity: 2, At: -1, Ident: "actor", Action: DeleteStatement}
	canView := CallSpec{Name: "can-view", Receiver: "authHelper", Method: "canViewArchived", Arity: 1, Ident: "actor", Action: ReplaceLiteral, Literal: "false"}
	resolve := CallSpec{Name: "resolve", Receiver: "authHelper", Method: "resolveOrgId", Arity: 2, At: -1, Ident: "actor", Action: ReplaceWithArg, Keep: 0}

	tests := []struct {
		name      string
		spec      CallSpec
		input     string
		want      string
		wantCount int
	}{
		{
			name:      "statement_on_own_line",
			spec:      ensureRole,
			input:     "    a();\n    authHelper.ensureRole(actor, \"ADMIN\");\n    b();\n",
			want:      "    a();\n    b();\n",
			wantCount: 1,
		},
		{
			name:      "multi_line_with_nested_parens",
			spec:      ensureRole,
			input:     "    authHelper.ensureRole(\n        actor,\n        List.of(Role.ADMIN, Role.OWNER)\n    );\n    return x;\n",
			want:      "    return x;\n",
			wantCount: 1,
		},
		{
			name:      "inline_statement",
			spec:      ensureRole,
			input:     "{ authHelper.ensureRole(actor, \"A\"); return 1; }",
			want:      "{ return 1; }",
			wantCount: 1,
		},
		{
			name:      "this_prefix",
			spec:      ensureRole,
			input:     "this.authHelper.ensureRole(actor, \"A\");",
			want:      "",
			wantCount: 1,
		},
		{
			name:      "two_on_one_line",
			spec:      ensureRole,
			input:     "authHelper.ensureRole(actor, \"A\"); authHelper.ensureRole(actor, \"B\");\n",
			want:      "\n",
			wantCount: 2,
		},
		{
			name:  "other_receiver_member",
			spec:  ensureRole,
			input: "other.authHelper.ensureRole(actor, \"A\");",
			want:  "other.authHelper.ensureRole(actor, \"A\");",
		},
		{
			name:  "different_ident",
			spec:  ensureRole,
			input: "authHelper.ensureRole(admin, \"A\");",
			want:  "authHelper.ensureRole(admin, \"A\");",
		},
		{
			name:  "used_as_expression",
			spec:  ensureRole,
			input: "if (authHelper.ensureRole(actor, \"A\")) {}",
			want:  "if (authHelper.ensureRole(actor, \"A\")) {}",
		},
		{
			name:  "assignment_position",
			spec:  ensureRole,
			input: "    boolean ok = authHelper.ensureRole(actor, \"A\");\n",
			want:  "    boolean ok = authHelper.ensureRole(actor, \"A\");\n",
		},
		{
			name:  "return_position",
			spec:  ensureScope,
			input: "    return authHelper.ensureOrgScope(orgId, actor);\n",
			want:  "    return authHelper.ensureOrgScope(orgId, actor);\n",
		},
		{
			name:  "braceless_if_body",
			spec:  ensureRole,
			input: "    if (strict)\n        authHelper.ensureRole(actor, \"A\");\n    save();\n",
			want:  "    if (strict)\n        authHelper.ensureRole(actor, \"A\");\n    save();\n",
		},
		{
			name:      "after_line_comment",
			spec:      ensureRole,
			input:     "    a(); // admins only\n    authHelper.ensureRole(actor, \"A\");\n",
			want:      "    a(); // admins only\n",
			wantCount: 1,
		},
		{
			name:      "after_block_comment",
			spec:      ensureRole,
			input:     "{\n    /* guard */\n    authHelper.ensureRole(actor, \"A\");\n}\n",
			want:      "{\n    /* guard */\n}\n",
			wantCount: 1,
		},
		{
			name:  "unbalanced_call",
			spec:  ensureRole,
			input: "authHelper.ensureRole(actor, \"A\";\n",
			want:  "authHelper.ensureRole(actor, \"A\";\n",
		},
		{
			name:      "ident_last",
			spec:      ensureScope,
			input:     "    authHelper.ensureOrgScope(org.getId(), actor);\n",
			want:      "",
			wantCount: 1,
		},
		{
			name:  "wrong_arity",
			spec:  ensureScope,
			input: "authHelper.ensureOrgScope(a, b, actor);",
			want:  "authHelper.ensureOrgScope(a, b, actor);",
		},
		{
			name:      "replace_with_literal",
			spec:      canView,
			input:     "boolean b = authHelper.canViewArchived(actor);",
			want:      "boolean b = false;",
			wantCount: 1,
		},
		{
			name:      "literal_nested_twice",
			spec:      canView,
			input:     "f(authHelper.canViewArchived(actor), authHelper.canViewArchived(actor))",
			want:      "f(false, false)",
			wantCount: 2,
		},
		{
			name:      "replace_with_argument",
			spec:      resolve,
			input:     "String o = authHelper.resolveOrgId(explicitOrgId, actor);",
			want:      "String o = explicitOrgId;",
			wantCount: 1,
		},
		{
			name:      "argument_with_call",
			spec:      resolve,
			input:     "String o = authHelper.resolveOrgId(req.get(\"org\"), actor);",
			want:      "String o = req.get(\"org\");",
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewCallRule(tt.spec)
			require.NoError(t, err, "NewCallRule should succeed")

			got, n := r.Apply(tt.input)
			assert.Equal(t, tt.want, got, "output should match")
			assert.Equal(t, tt.wantCount, n, "count should match")

			again, n := r.Apply(got)
			assert.Equal(t, got, again, "rule should be idempotent")
			assert.Zero(t, n, "second run should not count")
		})
	}
}

func TestNewCallRuleErrors(t *testing.T) {
	tests := []struct {
		name        string
		spec        CallSpec
		errContains string
	}{
		{
			name:        "missing_method",
			spec:        CallSpec{Name: "r", Receiver: "h", Ident: "actor"},
			errContains: "requires name, receiver and method",
		},
		{
			name:        "missing_ident",
			spec:        CallSpec{Name: "r", Receiver: "h", Method: "m"},
			errContains: "ident is required",
		},
		{
			name:        "literal_reintroduces_call",
			spec:        CallSpec{Name: "r", Receiver: "h", Method: "m", Ident: "actor", Action: ReplaceLiteral, Literal: "h.m(x)"},
			errContains: "must not contain the method name",
		},
		{
			name:        "keep_outside_arity",
			spec:        CallSpec{Name: "r", Receiver: "h", Method: "m", Ident: "actor", Action: ReplaceWithArg, Arity: 2, Keep: 2},
			errContains: "keep index 2 outside arity 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCallRule(tt.spec)
			require.Error(t, err, "NewCallRule should fail")
			assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
		})
	}
}

func TestCallRuleDescribe(t *testing.T) {
	r := MustCallRule(CallSpec{Name: "ensure-role", Receiver: "authHelper", Method: "ensureRole", Ident: "actor"})
	assert.Equal(t, "ensure-role", r.Name(), "name should match")
	assert.Equal(t, "call authHelper.ensureRole(actor at 0) delete statement", r.Describe(), "description should match")
	assert.Equal(t, "argument", ReplaceWithArg.String(), "action name should match")
}
