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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vnetsim/vnet/cmd/config"
	"github.com/vnetsim/vnet/cmd/vnet/shared"
	"github.com/vnetsim/vnet/internal/controller"
)

// StateController defines the teardown operation used by this command.
// It is exported for use in tests.
type StateController interface {
	DeleteState(opts controller.TeardownOptions) (controller.DeleteStateResult, error)
}

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

func NewStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "state",
		Short:         "Tear down the recorded topology: uplinks, nodes, networks, links, then the state file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ctrl StateController
			if mockCtrl, ok := cmd.Context().Value(MockControllerKey{}).(StateController); ok {
				ctrl = mockCtrl
			} else {
				ctrl = shared.ControllerFromCmd(cmd)
			}

			opts := controller.TeardownOptions{
				Force: viper.GetBool(config.VNET_DELETE_FORCE.ViperKey),
				All:   viper.GetBool(config.VNET_DELETE_ALL.ViperKey),
				Quiet: viper.GetBool(config.VNET_DELETE_QUIET.ViperKey),
			}

			result, err := ctrl.DeleteState(opts)
			if err != nil {
				return err
			}

			if opts.Quiet {
				return nil
			}

			switch {
			case result.StateAbsent:
				cmd.Println("No topology state found, nothing to delete.")
			default:
				cmd.Printf("Deleted topology state (%d resources).\n", len(result.Deleted))
			}
			if len(result.Skipped) > 0 {
				cmd.Printf("Preserved host resources: %v\n", result.Skipped)
			}
			if len(result.Failed) > 0 {
				cmd.Printf("Deletions that reported failure: %v\n", result.Failed)
			}
			return nil
		},
	}

	return cmd
}
