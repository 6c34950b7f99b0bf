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

// Package naming maps logical topology identifiers to the OS-level names
// carried by namespaces, bridges, and interfaces. Host reconciliation relies
// on the prefix convention to recognize resources owned by vnet.
package naming

import (
	"strings"

	"github.com/vnetsim/vnet/internal/consts"
)

// NamespaceName returns the network namespace name for a node id.
func NamespaceName(nodeID string) string {
	return consts.ResourcePrefix + nodeID
}

// BridgeName returns the bridge device name for a network id.
func BridgeName(networkID string) string {
	return consts.ResourcePrefix + "br-" + networkID
}

// LinkName returns the veth device name for a link id.
func LinkName(linkID string) string {
	return consts.ResourcePrefix + linkID
}

// Owned reports whether an OS resource name follows the vnet convention.
func Owned(name string) bool {
	return strings.HasPrefix(name, consts.ResourcePrefix)
}

// LogicalID strips the vnet prefix from an OS resource name. Names without
// the prefix are returned unchanged.
func LogicalID(name string) string {
	return strings.TrimPrefix(name, consts.ResourcePrefix)
}
