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
	"strings"
)

// Topology is the root persisted entity: the declared set of virtual nodes,
// networks, and links that make up a simulated network, plus global
// configuration such as internet uplinks.
//
// While the topology is fully consistent, every link and network node
// reference resolves to an entry in Nodes. During teardown that invariant is
// transiently violated as resources are pruned phase by phase; consumers must
// tolerate dangling references.
type Topology struct {
	Nodes    map[string]Node    `json:"nodes,omitempty"`
	Networks map[string]Network `json:"networks,omitempty"`
	Links    map[string]Link    `json:"links,omitempty"`
	Global   Global             `json:"global,omitempty"`
}

// Node is a logical network namespace hosting zero or more processes.
type Node struct {
	Type      string             `json:"type,omitempty"`
	Interfaces map[string]string `json:"interfaces,omitempty"` // interface name -> link id
	Processes map[string]Process `json:"processes,omitempty"`  // tag -> process
}

// Process is a command running inside a node, with its captured output file.
type Process struct {
	PID int    `json:"pid,omitempty"`
	Out string `json:"out,omitempty"`
}

// Network is a logical bridge connecting multiple nodes.
type Network struct {
	Type  string `json:"type,omitempty"`
	State string `json:"state,omitempty"`
}

// Link is a point-to-point connection from a node to a network (or another
// node). The referenced node and network may already be gone mid-teardown.
type Link struct {
	Type    string `json:"type,omitempty"`
	Node    string `json:"node,omitempty"`
	Network string `json:"network,omitempty"`
}

// Global carries topology-wide configuration. Internet maps an uplink name to
// the data needed to reverse that uplink.
type Global struct {
	Internet map[string]Uplink `json:"internet,omitempty"`
}

// Uplink records a node+interface attachment to an external ISP simulation.
type Uplink struct {
	Iface   string `json:"iface"`
	ISP     string `json:"isp"`
	ISPAddr string `json:"isp_addr"`
	NodeID  string `json:"node_id"`
}

// Seed derives the uplink teardown seed from the recorded ISP address: its
// third dot-separated octet. An address too short to carry one yields "".
func (u Uplink) Seed() string {
	parts := strings.Split(u.ISPAddr, ".")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// Empty reports whether the topology holds no structural resources.
func (t Topology) Empty() bool {
	return len(t.Nodes) == 0 && len(t.Networks) == 0 && len(t.Links) == 0 &&
		len(t.Global.Internet) == 0
}

// PruneNode removes a node record and every link endpoint that references it.
// Link records themselves stay; only the node's own bookkeeping goes away.
func (t *Topology) PruneNode(id string) {
	delete(t.Nodes, id)
	for linkID, link := range t.Links {
		if link.Node == id {
			link.Node = ""
			t.Links[linkID] = link
		}
	}
}

// PruneNetwork removes a network record and clears dangling link references.
func (t *Topology) PruneNetwork(id string) {
	delete(t.Networks, id)
	for linkID, link := range t.Links {
		if link.Network == id {
			link.Network = ""
			t.Links[linkID] = link
		}
	}
}

// PruneLink removes a link record and its interface entries on the owning
// node, when that node still exists.
func (t *Topology) PruneLink(id string) {
	link, ok := t.Links[id]
	if ok {
		if node, nodeOK := t.Nodes[link.Node]; nodeOK {
			for iface, linkID := range node.Interfaces {
				if linkID == id {
					delete(node.Interfaces, iface)
				}
			}
			t.Nodes[link.Node] = node
		}
	}
	delete(t.Links, id)
}

// PruneUplink removes an uplink entry from the global configuration.
func (t *Topology) PruneUplink(name string) {
	delete(t.Global.Internet, name)
}
