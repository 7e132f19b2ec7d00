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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/actorstrip/cmd/actorstrip/opts"
	"github.com/walteh/actorstrip/pkg/log"
	"github.com/walteh/actorstrip/pkg/profile"
	"github.com/walteh/actorstrip/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(ro *opts.RootOpts) *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules of each profile in the order they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := selectProfiles(profileName)
			if err != nil {
				return err
			}

			var rows []log.RuleRow
			for _, name := range profiles {
				set, err := profile.Build(name, ro.Config.Params())
				if err != nil {
					return errors.Errorf("building %s profile: %w", name, err)
				}
				rows = append(rows, ruleRows(name, "main", set.Rules())...)
				rows = append(rows, ruleRows(name, "post", set.Post())...)
			}

			log.RenderRules(ro.Console, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "all", "profile to list: service, controller or all")

	return cmd
}

func ruleRows(profileName, phase string, rules []text.Rule) []log.RuleRow {
	rows := make([]log.RuleRow, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, log.RuleRow{
			Profile: profileName,
			Phase:   phase,
			Name:    r.Name(),
			Detail:  r.Describe(),
		})
	}
	return rows
}
