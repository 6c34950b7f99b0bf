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

package state

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vnetsim/vnet/cmd/config"
	"github.com/vnetsim/vnet/cmd/vnet/shared"
	"github.com/vnetsim/vnet/internal/errdefs"
)

func NewStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "state",
		Short:         "Show the recorded topology",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl := shared.ControllerFromCmd(cmd)

			topo, err := ctrl.GetState()
			if err != nil {
				if errors.Is(err, errdefs.ErrStateAbsent) {
					cmd.Println("No topology state found.")
					return nil
				}
				return err
			}

			format := viper.GetString(config.VNET_GET_STATE_OUTPUT.ViperKey)
			return shared.PrintJSONOrYAML(cmd, topo, format)
		},
	}

	cmd.Flags().StringP("output", "o", "yaml", "Output format (json or yaml)")
	_ = viper.BindPFlag(config.VNET_GET_STATE_OUTPUT.ViperKey, cmd.Flags().Lookup("output"))

	return cmd
}
