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

package controller

import (
	"fmt"
	"os"
	"time"

	"github.com/vnetsim/vnet/internal/state"
)

// processOutputRetryDelay covers the race between a process being recorded in
// state and its output file appearing on disk.
const processOutputRetryDelay = 500 * time.Millisecond

// GetState returns the persisted topology as currently recorded.
func (b *Exec) GetState() (state.Topology, error) {
	return b.runner.Topology()
}

// ProcessOutput reads the captured output of a process running in a node.
// When the file does not exist yet, the read is retried once after a short
// delay before failing.
func (b *Exec) ProcessOutput(nodeID, tag string) (string, error) {
	path, err := b.runner.ProcessOutputPath(nodeID, tag)
	if err != nil {
		return "", err
	}

	if _, statErr := os.Stat(path); statErr != nil {
		b.logger.DebugContext(b.ctx, "output file not present yet, delaying read",
			"node", nodeID, "tag", tag, "path", path)
		time.Sleep(processOutputRetryDelay)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read process output %s: %w", path, err)
	}
	return string(data), nil
}
