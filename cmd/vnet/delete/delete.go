// Copyright 2026 The vnet Authors
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
//
// SPDX-License-Identifier: Apache-2.0

package deletecmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vnetsim/vnet/cmd/config"
	statecmd "github.com/vnetsim/vnet/cmd/vnet/delete/state"
)

// NewDeleteCmd builds the `vnet delete` parent command. Persistent flags
// defined on the root vnet command are inherited automatically via Cobra's
// command tree.
func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"d"},
		Short:   "Delete vnet resources (state)",
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolP("force", "f", false,
		"Skip every deletion confirmation. Can remove non-vnet critical host resources; use with care")
	_ = viper.BindPFlag(config.VNET_DELETE_FORCE.ViperKey, cmd.PersistentFlags().Lookup("force"))

	cmd.PersistentFlags().BoolP("all", "a", false,
		"After the declared state is gone, also offer to delete every vnet-owned namespace, bridge, and interface still on the host")
	_ = viper.BindPFlag(config.VNET_DELETE_ALL.ViperKey, cmd.PersistentFlags().Lookup("all"))

	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress the teardown summary")
	_ = viper.BindPFlag(config.VNET_DELETE_QUIET.ViperKey, cmd.PersistentFlags().Lookup("quiet"))

	cmd.AddCommand(
		statecmd.NewStateCmd(),
	)

	return cmd
}
