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

package output

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/vnetsim/vnet/cmd/vnet/shared"
)

func NewOutputCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "output [node] [tag]",
		Short:         "Show the captured output of a process running in a node",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := shared.ControllerFromCmd(cmd)

			nodeID := strings.TrimSpace(args[0])
			tag := strings.TrimSpace(args[1])

			out, err := ctrl.ProcessOutput(nodeID, tag)
			if err != nil {
				return err
			}

			cmd.Print(out)
			return nil
		},
	}

	return cmd
}
