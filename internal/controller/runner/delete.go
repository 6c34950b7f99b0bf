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
	"errors"
	"fmt"
	"slices"
	"strings"
	"syscall"

	"github.com/vnetsim/vnet/internal/consts"
	"github.com/vnetsim/vnet/internal/errdefs"
	"github.com/vnetsim/vnet/internal/state"
	"github.com/vnetsim/vnet/internal/util/naming"
)

// DeleteNode stops the node's recorded processes, removes its network
// namespace, and prunes the node from state. A namespace that is already gone
// is not an error.
func (r *Exec) DeleteNode(nodeID string) error {
	nodeID = strings.TrimSpace(nodeID)
	if nodeID == "" {
		return errdefs.ErrNodeIDRequired
	}

	r.stopNodeProcesses(nodeID)

	exists, err := r.namespaceExists(nodeID)
	if err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrDeleteNode, err)
	}

	var deleteErr error
	if exists {
		deleteErr = r.cmd.Run(r.ctx, "ip", "netns", "del", naming.NamespaceName(nodeID))
		if deleteErr != nil {
			r.logger.WarnContext(r.ctx, "failed to delete namespace", "node", nodeID, "error", deleteErr)
		}
	} else {
		r.logger.DebugContext(r.ctx, "namespace already absent", "node", nodeID)
	}

	// Prune the record regardless so state converges even after an OS-level
	// failure.
	if err = r.store.Mutate(func(t *state.Topology) { t.PruneNode(nodeID) }); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrDeleteNode, err)
	}

	if deleteErr != nil {
		return fmt.Errorf("%w: %s: %w", errdefs.ErrDeleteNode, nodeID, deleteErr)
	}
	r.logger.InfoContext(r.ctx, "node deleted", "node", nodeID)
	return nil
}

// DeleteNetwork takes the bridge down, removes it, and prunes the network
// from state. An already-absent bridge is not an error, so deleting a network
// whose links vanished earlier in the run stays clean.
func (r *Exec) DeleteNetwork(networkID string) error {
	networkID = strings.TrimSpace(networkID)
	if networkID == "" {
		return fmt.Errorf("%w: network id is required", errdefs.ErrDeleteNetwork)
	}

	exists, err := r.bridgeExists(networkID)
	if err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrDeleteNetwork, err)
	}

	var deleteErr error
	if exists {
		bridge := naming.BridgeName(networkID)
		if downErr := r.cmd.Run(r.ctx, "ip", "link", "set", bridge, "down"); downErr != nil {
			r.logger.WarnContext(r.ctx, "failed to set bridge down", "network", networkID, "error", downErr)
		}
		deleteErr = r.cmd.Run(r.ctx, "ip", "link", "del", bridge)
		if deleteErr != nil {
			r.logger.WarnContext(r.ctx, "failed to delete bridge", "network", networkID, "error", deleteErr)
		}
	} else {
		r.logger.DebugContext(r.ctx, "bridge already absent", "network", networkID)
	}

	if err = r.store.Mutate(func(t *state.Topology) { t.PruneNetwork(networkID) }); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrDeleteNetwork, err)
	}

	if deleteErr != nil {
		return fmt.Errorf("%w: %s: %w", errdefs.ErrDeleteNetwork, networkID, deleteErr)
	}
	r.logger.InfoContext(r.ctx, "network deleted", "network", networkID)
	return nil
}

// DeleteLink removes the veth device backing a link and prunes the link from
// state. Its node and network endpoints may already be gone; deleting the
// owning namespace deletes the device with it, so absence is the common case.
func (r *Exec) DeleteLink(linkID string) error {
	linkID = strings.TrimSpace(linkID)
	if linkID == "" {
		return fmt.Errorf("%w: link id is required", errdefs.ErrDeleteLink)
	}

	exists, err := r.interfaceExists(linkID)
	if err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrDeleteLink, err)
	}

	var deleteErr error
	if exists {
		deleteErr = r.cmd.Run(r.ctx, "ip", "link", "del", naming.LinkName(linkID))
		if deleteErr != nil {
			r.logger.WarnContext(r.ctx, "failed to delete link device", "link", linkID, "error", deleteErr)
		}
	} else {
		r.logger.DebugContext(r.ctx, "link device already absent", "link", linkID)
	}

	if err = r.store.Mutate(func(t *state.Topology) { t.PruneLink(linkID) }); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrDeleteLink, err)
	}

	if deleteErr != nil {
		return fmt.Errorf("%w: %s: %w", errdefs.ErrDeleteLink, linkID, deleteErr)
	}
	r.logger.InfoContext(r.ctx, "link deleted", "link", linkID)
	return nil
}

// DeleteUplink reverses a node's attachment to an external ISP simulation
// using the recorded interface, isp identifier, and address-derived seed.
func (r *Exec) DeleteUplink(name string, up state.Uplink) error {
	seed := up.Seed()
	device := consts.ResourcePrefix + up.ISP + seed

	r.logger.InfoContext(r.ctx, "deleting internet uplink",
		"uplink", name, "iface", up.Iface, "isp", up.ISP, "seed", seed, "node", up.NodeID)

	exists, err := r.interfaceDeviceExists(device)
	if err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrDeleteUplink, err)
	}

	var deleteErr error
	if exists {
		deleteErr = r.cmd.Run(r.ctx, "ip", "link", "del", device)
		if deleteErr != nil {
			r.logger.WarnContext(r.ctx, "failed to delete uplink device", "uplink", name, "error", deleteErr)
		}
	} else {
		r.logger.DebugContext(r.ctx, "uplink device already absent", "uplink", name)
	}

	if err = r.store.Mutate(func(t *state.Topology) { t.PruneUplink(name) }); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrDeleteUplink, err)
	}

	if deleteErr != nil {
		return fmt.Errorf("%w: %s: %w", errdefs.ErrDeleteUplink, name, deleteErr)
	}
	return nil
}

// stopNodeProcesses signals every recorded process of a node. Failures are
// expected when a previous run already reaped them.
func (r *Exec) stopNodeProcesses(nodeID string) {
	topo, err := r.store.Load()
	if err != nil {
		return
	}
	node, ok := topo.Nodes[nodeID]
	if !ok {
		return
	}
	for tag, proc := range node.Processes {
		if proc.PID <= 0 {
			continue
		}
		if killErr := syscall.Kill(proc.PID, syscall.SIGTERM); killErr != nil &&
			!errors.Is(killErr, syscall.ESRCH) {
			r.logger.WarnContext(r.ctx, "failed to stop process",
				"node", nodeID, "tag", tag, "pid", proc.PID, "error", killErr)
			continue
		}
		r.logger.DebugContext(r.ctx, "stopped process", "node", nodeID, "tag", tag, "pid", proc.PID)
	}
}

func (r *Exec) namespaceExists(nodeID string) (bool, error) {
	namespaces, err := r.hostq.Namespaces()
	if err != nil {
		return false, err
	}
	return slices.Contains(namespaces, nodeID), nil
}

func (r *Exec) bridgeExists(networkID string) (bool, error) {
	bridges, err := r.hostq.Bridges()
	if err != nil {
		return false, err
	}
	return slices.Contains(bridges, networkID), nil
}

func (r *Exec) interfaceExists(linkID string) (bool, error) {
	interfaces, err := r.hostq.Interfaces()
	if err != nil {
		return false, err
	}
	return slices.Contains(interfaces, linkID), nil
}

func (r *Exec) interfaceDeviceExists(device string) (bool, error) {
	interfaces, err := r.hostq.Interfaces()
	if err != nil {
		return false, err
	}
	return slices.Contains(interfaces, naming.LogicalID(device)), nil
}
