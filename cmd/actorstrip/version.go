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
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/actorstrip/pkg/profile"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ BuildInfo describes the running binary and the rules it ships with
type BuildInfo struct {
	Module    string         `json:"module"`
	Version   string         `json:"version"`
	Revision  string         `json:"revision,omitempty"`
	Time      string         `json:"time,omitempty"`
	Modified  bool           `json:"modified"`
	GoVersion string         `json:"go_version"`
	Platform  string         `json:"platform"`
	Rules     map[string]int `json:"rules"` // rule count per profile with default naming
}

func readBuildInfo() *BuildInfo {
	info := &BuildInfo{
		Module:    "github.com/walteh/actorstrip",
		Version:   "dev",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Rules:     map[string]int{},
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Revision = s.Value
			case "vcs.time":
				info.Time = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}

	if sets, err := profile.BuildAll(profile.Defaults()); err == nil {
		for name, set := range sets {
			info.Rules[name] = len(set.Rules()) + len(set.Post())
		}
	}
	return info
}

func (b *BuildInfo) String() string {
	var sb strings.Builder
	sb.WriteString("🚀 actorstrip version info:\n")
	fmt.Fprintf(&sb, "Version:   %s\n", b.Version)
	if b.Revision != "" {
		rev := b.Revision
		if b.Modified {
			rev += " (modified)"
		}
		fmt.Fprintf(&sb, "Revision:  %s\n", rev)
	}
	if b.Time != "" {
		fmt.Fprintf(&sb, "Built:     %s\n", b.Time)
	}
	fmt.Fprintf(&sb, "Go:        %s (%s)\n", b.GoVersion, b.Platform)
	for _, name := range profile.Names() {
		fmt.Fprintf(&sb, "Rules:     %s %d\n", name, b.Rules[name])
	}
	return sb.String()
}

// newVersionCmd prints the build information
func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := readBuildInfo()
			if !asJSON {
				fmt.Fprint(cmd.OutOrStdout(), info)
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(info); err != nil {
				return errors.Errorf("encoding version info: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
