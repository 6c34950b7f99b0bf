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

package shared

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vnetsim/vnet/cmd/config"
	"github.com/vnetsim/vnet/cmd/types"
	"github.com/vnetsim/vnet/internal/controller"
	"github.com/vnetsim/vnet/internal/logging"
)

// LoggerFromCmd extracts the slog logger from the Cobra command context,
// falling back to a noop logger when verbose mode never installed one.
func LoggerFromCmd(cmd *cobra.Command) *slog.Logger {
	if logger, ok := cmd.Context().Value(types.CtxLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return logging.NewNoopLogger()
}

// ControllerFromCmd instantiates a controller.Exec configured with the shared
// persistent flags (state file, lock file) used by the parent command.
func ControllerFromCmd(cmd *cobra.Command) *controller.Exec {
	opts := controller.Options{
		StateFile: viper.GetString(config.VNET_ROOT_STATE_FILE.ViperKey),
		LockFile:  viper.GetString(config.VNET_ROOT_LOCK_FILE.ViperKey),
	}

	return controller.NewControllerExec(cmd.Context(), LoggerFromCmd(cmd), opts)
}
