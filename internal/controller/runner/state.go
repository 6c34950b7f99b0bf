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

package runner

import (
	"fmt"
	"strings"

	"github.com/vnetsim/vnet/internal/errdefs"
	"github.com/vnetsim/vnet/internal/state"
)

func (r *Exec) Topology() (state.Topology, error) {
	return r.store.Load()
}

func (r *Exec) NodeIDs() ([]string, error) {
	return r.store.NodeIDs()
}

func (r *Exec) NetworkIDs() ([]string, error) {
	return r.store.NetworkIDs()
}

func (r *Exec) LinkIDs() ([]string, error) {
	return r.store.LinkIDs()
}

// Uplinks returns the internet uplink entries from the global configuration.
// The caller snapshots this before any deletion phase runs, because later
// phases prune the global section.
func (r *Exec) Uplinks() (map[string]state.Uplink, error) {
	global, err := r.store.Global()
	if err != nil {
		return nil, err
	}
	return global.Internet, nil
}

func (r *Exec) RemoveStateFile() error {
	return r.store.Remove()
}

// ProcessOutputPath resolves the captured-output file of a process running in
// a node.
func (r *Exec) ProcessOutputPath(nodeID, tag string) (string, error) {
	nodeID = strings.TrimSpace(nodeID)
	if nodeID == "" {
		return "", errdefs.ErrNodeIDRequired
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", errdefs.ErrProcessTagRequired
	}

	topo, err := r.store.Load()
	if err != nil {
		return "", err
	}

	node, ok := topo.Nodes[nodeID]
	if !ok {
		return "", fmt.Errorf("%w: %s", errdefs.ErrNodeNotFound, nodeID)
	}
	proc, ok := node.Processes[tag]
	if !ok || proc.Out == "" {
		return "", fmt.Errorf("%w: %s on node %s", errdefs.ErrProcessNotFound, tag, nodeID)
	}
	return proc.Out, nil
}
