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

package controller_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vnetsim/vnet/internal/controller"
	"github.com/vnetsim/vnet/internal/errdefs"
	"github.com/vnetsim/vnet/internal/state"
)

func TestGetState(t *testing.T) {
	r := newFakeRunner(sampleTopology())
	ctrl := newTestController(r, &fakeLocker{}, controller.StaticConfirmer{})

	topo, err := ctrl.GetState()
	require.NoError(t, err)
	assert.Contains(t, topo.Nodes, "nodeA")
	assert.Contains(t, topo.Networks, "net1")
}

func TestGetStateAbsent(t *testing.T) {
	r := newFakeRunner(state.Topology{})
	r.loadErr = errdefs.ErrStateAbsent
	ctrl := newTestController(r, &fakeLocker{}, controller.StaticConfirmer{})

	_, err := ctrl.GetState()
	require.ErrorIs(t, err, errdefs.ErrStateAbsent)
}

func TestProcessOutputReadsFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "ping.out")
	require.NoError(t, os.WriteFile(outFile, []byte("64 bytes from 10.0.0.2\n"), 0o644))

	topo := sampleTopology()
	node := topo.Nodes["nodeA"]
	node.Processes = map[string]state.Process{
		"ping": {PID: 4242, Out: outFile},
	}
	topo.Nodes["nodeA"] = node

	r := newFakeRunner(topo)
	ctrl := newTestController(r, &fakeLocker{}, controller.StaticConfirmer{})

	out, err := ctrl.ProcessOutput("nodeA", "ping")
	require.NoError(t, err)
	assert.Equal(t, "64 bytes from 10.0.0.2\n", out)
}

func TestProcessOutputUnknownNode(t *testing.T) {
	r := newFakeRunner(sampleTopology())
	ctrl := newTestController(r, &fakeLocker{}, controller.StaticConfirmer{})

	_, err := ctrl.ProcessOutput("ghost", "ping")
	require.ErrorIs(t, err, errdefs.ErrNodeNotFound)
}

func TestProcessOutputMissingFile(t *testing.T) {
	topo := sampleTopology()
	node := topo.Nodes["nodeA"]
	node.Processes = map[string]state.Process{
		"ping": {PID: 4242, Out: filepath.Join(t.TempDir(), "never-written.out")},
	}
	topo.Nodes["nodeA"] = node

	r := newFakeRunner(topo)
	ctrl := newTestController(r, &fakeLocker{}, controller.StaticConfirmer{})

	// The read is retried once after a delay, then the failure surfaces.
	_, err := ctrl.ProcessOutput("nodeA", "ping")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
