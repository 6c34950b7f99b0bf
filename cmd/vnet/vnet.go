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

package vnet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vnetsim/vnet/cmd/config"
	"github.com/vnetsim/vnet/cmd/types"
	deletecmd "github.com/vnetsim/vnet/cmd/vnet/delete"
	getcmd "github.com/vnetsim/vnet/cmd/vnet/get"
	"github.com/vnetsim/vnet/cmd/vnet/version"
	"github.com/vnetsim/vnet/internal/consts"
	"github.com/vnetsim/vnet/internal/errdefs"
	"github.com/vnetsim/vnet/internal/logging"
)

func NewVnetCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "vnet",
		Short: "vnet manages simulated network topologies built from namespaces, bridges, and links",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if viper.GetBool(config.VNET_ROOT_VERBOSE.ViperKey) {
				logLevel := viper.GetString(config.VNET_ROOT_LOG_LEVEL.ViperKey)
				if logLevel == "" {
					logLevel = "info"
				}

				levelVar := new(slog.LevelVar)
				levelVar.Set(logging.ParseLevel(logLevel))

				handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar})
				logger := slog.New(handler)

				ctx := context.WithValue(cmd.Context(), types.CtxLogger, logger)
				cmd.SetContext(ctx)
				logger.DebugContext(cmd.Context(), "enabling verbose", "log-level", logLevel)
			}

			if err := loadConfig(); err != nil {
				return fmt.Errorf("%w: %w", errdefs.ErrConfig, err)
			}
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	if err := SetupVnetCmd(cmd); err != nil {
		return nil, fmt.Errorf("failed to setup vnet command: %w", err)
	}

	return cmd, nil
}

func SetupVnetCmd(rootCmd *cobra.Command) error {
	rootCmd.AddCommand(deletecmd.NewDeleteCmd())
	rootCmd.AddCommand(getcmd.NewGetCmd())
	rootCmd.AddCommand(version.NewVersionCmd())

	return SetPersistentFlags(rootCmd)
}

func SetPersistentFlags(rootCmd *cobra.Command) error {
	rootCmd.PersistentFlags().String("state-file", "", "topology state file (default is $HOME/"+consts.StateFileName+")")
	if err := viper.BindPFlag(config.VNET_ROOT_STATE_FILE.ViperKey, rootCmd.PersistentFlags().Lookup("state-file")); err != nil {
		return err
	}

	rootCmd.PersistentFlags().String("lock-file", "", "state lock file (default is the state file plus "+consts.LockFileSuffix+")")
	if err := viper.BindPFlag(config.VNET_ROOT_LOCK_FILE.ViperKey, rootCmd.PersistentFlags().Lookup("lock-file")); err != nil {
		return err
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.vnet/config.yaml)")
	if err := viper.BindPFlag(config.VNET_ROOT_CONFIG_FILE.ViperKey, rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return err
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	if err := viper.BindPFlag(config.VNET_ROOT_VERBOSE.ViperKey, rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		return err
	}

	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	if err := viper.BindPFlag(config.VNET_ROOT_LOG_LEVEL.ViperKey, rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}

	return nil
}

func loadConfig() error {
	configFile := viper.GetString(config.VNET_ROOT_CONFIG_FILE.ViperKey)
	if configFile == "" {
		configFile = config.DefaultConfigFile()
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(filepath.Dir(configFile))
	} else {
		viper.SetConfigFile(configFile)
	}
	_ = config.VNET_ROOT_CONFIG_FILE.BindEnv()
	_ = config.VNET_ROOT_STATE_FILE.BindEnv()
	_ = config.VNET_ROOT_LOCK_FILE.BindEnv()
	_ = config.VNET_ROOT_LOG_LEVEL.BindEnv()

	if viper.GetString(config.VNET_ROOT_LOG_LEVEL.ViperKey) == "" {
		viper.Set(config.VNET_ROOT_LOG_LEVEL.ViperKey, "info")
	}

	if err := viper.ReadInConfig(); err != nil {
		// File not found is OK; everything has flag or env fallbacks.
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}
