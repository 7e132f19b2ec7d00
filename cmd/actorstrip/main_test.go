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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgService = `package com.acme;

import com.mytegroup.api.service.common.ActorContext;

public class OrgService {
    public Org get(String orgId, ActorContext actor) {
        authHelper.ensureRole(actor, "ADMIN");
        return repo.find(orgId, actor.getOrgId());
    }
}
`

const orgServiceStripped = `package com.acme;


public class OrgService {
    public Org get(String orgId) {
        return repo.find(orgId, null);
    }
}
`

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// createProject writes a service below root and an empty yaml config next to it
func createProject(t *testing.T) (configPath, root string) {
	t.Helper()

	dir := t.TempDir()
	root = filepath.Join(dir, "src", "main", "java")
	pkg := filepath.Join(root, "com", "acme")
	require.NoError(t, os.MkdirAll(pkg, 0755), "creating package dir")
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "OrgService.java"), []byte(orgService), 0644), "writing service")

	configPath = filepath.Join(dir, ".actorstrip.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("root: "+root+"\n"), 0644), "writing config")
	return configPath, root
}

func TestRunCommand(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	tests := []struct {
		name        string
		args        func(configPath, root string) []string
		wantErr     bool
		errContains string
		validate    func(t *testing.T, root, stdout string)
	}{
		{
			name: "rewrites_files",
			args: func(configPath, root string) []string {
				return []string{"run", "--config", configPath}
			},
			validate: func(t *testing.T, root, stdout string) {
				data, err := os.ReadFile(filepath.Join(root, "com", "acme", "OrgService.java"))
				require.NoError(t, err)
				assert.Equal(t, orgServiceStripped, string(data), "service should be stripped")
				assert.Contains(t, stdout, "📝 Updated com/acme/OrgService.java", "updated line should be printed")
				assert.Contains(t, stdout, "Manual review required", "reminder should be printed")
				assert.Contains(t, stdout, "TOTAL", "summary table should be printed")
			},
		},
		{
			name: "dry_run_with_diff",
			args: func(configPath, root string) []string {
				return []string{"run", "--config", configPath, "--dry-run", "--diff", "--summary=false"}
			},
			validate: func(t *testing.T, root, stdout string) {
				data, err := os.ReadFile(filepath.Join(root, "com", "acme", "OrgService.java"))
				require.NoError(t, err)
				assert.Equal(t, orgService, string(data), "dry run should not write")
				assert.Contains(t, stdout, "🔍 Would update com/acme/OrgService.java", "dry run line should be printed")
				assert.Contains(t, stdout, "-        authHelper.ensureRole(actor, \"ADMIN\");", "diff should be printed")
				assert.NotContains(t, stdout, "TOTAL", "summary should be disabled")
			},
		},
		{
			name: "root_flag_overrides_config",
			args: func(configPath, root string) []string {
				return []string{"run", "--config", configPath, "--root", filepath.Join(root, "com"), "--profile", "service", "--jobs", "2"}
			},
			validate: func(t *testing.T, root, stdout string) {
				assert.Contains(t, stdout, "📝 Updated acme/OrgService.java", "paths should be relative to the overridden root")
			},
		},
		{
			name: "unknown_profile",
			args: func(configPath, root string) []string {
				return []string{"run", "--config", configPath, "--profile", "repository"}
			},
			wantErr:     true,
			errContains: "unknown profile",
		},
		{
			name: "unknown_log_format",
			args: func(configPath, root string) []string {
				return []string{"run", "--config", configPath, "--log-format", "xml"}
			},
			wantErr:     true,
			errContains: "unknown log format",
		},
		{
			name: "missing_config_file",
			args: func(configPath, root string) []string {
				return []string{"run", "--config", filepath.Join(filepath.Dir(configPath), "missing.yaml")}
			},
			wantErr:     true,
			errContains: "loading config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath, root := createProject(t)

			stdout, _, err := execute(t, tt.args(configPath, root)...)
			if tt.wantErr {
				require.Error(t, err, "command should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "command should succeed")
			if tt.validate != nil {
				tt.validate(t, root, stdout)
			}
		})
	}
}

func TestRulesCommand(t *testing.T) {
	configPath, _ := createProject(t)

	stdout, _, err := execute(t, "rules", "--config", configPath)
	require.NoError(t, err, "rules should succeed")

	for _, want := range []string{"import-type", "signature-first", "ensure-role", "factory-method", "resolved-org-id", "prune-import-Authentication"} {
		assert.Contains(t, stdout, want, "listing should contain %s", want)
	}

	stdout, _, err = execute(t, "rules", "--config", configPath, "--profile", "service")
	require.NoError(t, err, "rules should succeed")
	assert.NotContains(t, stdout, "factory-method", "service listing should not contain controller rules")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err, "version should succeed")
	assert.Contains(t, stdout, "actorstrip version info", "version banner should be printed")
	assert.Contains(t, stdout, "Rules:     service 16", "service rule count should be printed")
	assert.Contains(t, stdout, "Rules:     controller 13", "controller rule count should be printed")

	stdout, _, err = execute(t, "version", "--json")
	require.NoError(t, err, "version --json should succeed")
	assert.Contains(t, stdout, `"go_version"`, "json should contain the go version")
}
