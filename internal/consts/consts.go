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

package consts

import (
	"os"
	"path/filepath"
)

const (
	// ResourcePrefix marks OS-level resources (namespaces, bridges,
	// interfaces) as belonging to vnet. Host reconciliation only ever
	// touches resources carrying this prefix.
	ResourcePrefix = "vnet"

	// StateFileName is the default topology state file name, relative to
	// the user's home directory.
	StateFileName = ".vnet_state.json"

	// LockFileSuffix is appended to the state file path to form the
	// advisory lock path.
	LockFileSuffix = ".lock"

	// NetClassDir is where the kernel exposes network devices.
	NetClassDir = "/sys/class/net"
)

// DefaultStateFile returns the default state file path under the invoking
// user's home directory, falling back to the working directory when the home
// directory cannot be resolved.
func DefaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return StateFileName
	}
	return filepath.Join(home, StateFileName)
}

// DefaultLockFile derives the lock file path from a state file path.
func DefaultLockFile(stateFile string) string {
	return stateFile + LockFileSuffix
}
