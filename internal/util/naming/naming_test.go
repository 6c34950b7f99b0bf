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

package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vnetsim/vnet/internal/util/naming"
)

func TestDeviceNames(t *testing.T) {
	assert.Equal(t, "vnetnodeA", naming.NamespaceName("nodeA"))
	assert.Equal(t, "vnetbr-net1", naming.BridgeName("net1"))
	assert.Equal(t, "vnetlinkAN1", naming.LinkName("linkAN1"))
}

func TestOwned(t *testing.T) {
	assert.True(t, naming.Owned("vnetnodeA"))
	assert.True(t, naming.Owned("vnetbr-net1"))
	assert.False(t, naming.Owned("eth0"))
	assert.False(t, naming.Owned("docker0"))
}

func TestLogicalID(t *testing.T) {
	assert.Equal(t, "nodeA", naming.LogicalID("vnetnodeA"))
	// Unowned names pass through unchanged.
	assert.Equal(t, "eth0", naming.LogicalID("eth0"))
}
