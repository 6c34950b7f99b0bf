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

package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vnetsim/vnet/internal/controller/runner"
	"github.com/vnetsim/vnet/internal/errdefs"
	"github.com/vnetsim/vnet/internal/host"
	"github.com/vnetsim/vnet/internal/logging"
	"github.com/vnetsim/vnet/internal/state"
)

// fakeCmd scripts ip(8): Output serves namespace listings, Run records the
// invocation and fails when its joined arguments match failOn.
type fakeCmd struct {
	netnsOutput string
	failOn      string

	runs [][]string
}

func (f *fakeCmd) Run(_ context.Context, name string, args ...string) error {
	call := append([]string{name}, args...)
	f.runs = append(f.runs, call)
	if f.failOn != "" && strings.Contains(strings.Join(call, " "), f.failOn) {
		return errors.New("ip: command failed")
	}
	return nil
}

func (f *fakeCmd) Output(_ context.Context, _ string, _ ...string) (string, error) {
	return f.netnsOutput, nil
}

type harness struct {
	runner runner.Runner
	store  *state.Store
	cmd    *fakeCmd
}

// newHarness wires a runner around a real store on a temp dir, a scripted
// command runner, and a host view built from the given fixtures.
func newHarness(t *testing.T, topo state.Topology, cmd *fakeCmd, bridges, devices []string) *harness {
	t.Helper()
	ctx := context.Background()
	logger := logging.NewNoopLogger()

	stateFile := filepath.Join(t.TempDir(), "state.json")
	store := state.NewStore(ctx, logger, stateFile)
	require.NoError(t, store.Save(topo))

	netClassDir := t.TempDir()
	for _, b := range bridges {
		require.NoError(t, os.MkdirAll(filepath.Join(netClassDir, b, "bridge"), 0o755))
	}
	for _, d := range devices {
		require.NoError(t, os.MkdirAll(filepath.Join(netClassDir, d), 0o755))
	}
	hostq := host.NewQueryWithNetClassDir(ctx, logger, cmd, netClassDir)

	r := runner.NewRunnerWithDeps(ctx, logger, runner.Options{StateFile: stateFile}, store, hostq, cmd)
	return &harness{runner: r, store: store, cmd: cmd}
}

func sampleTopology() state.Topology {
	return state.Topology{
		Nodes: map[string]state.Node{
			"nodeA": {
				Interfaces: map[string]string{"eth0": "linkAN1"},
				Processes: map[string]state.Process{
					"ping": {PID: 0, Out: "/tmp/ping.out"},
				},
			},
		},
		Networks: map[string]state.Network{
			"net1": {Type: "bridge", State: "up"},
		},
		Links: map[string]state.Link{
			"linkAN1": {Node: "nodeA", Network: "net1"},
		},
		Global: state.Global{
			Internet: map[string]state.Uplink{
				"isp0": {Iface: "eth1", ISP: "isp0", ISPAddr: "10.0.7.2", NodeID: "nodeA"},
			},
		},
	}
}

func TestDeleteNodeRemovesNamespaceAndPrunes(t *testing.T) {
	cmd := &fakeCmd{netnsOutput: "vnetnodeA (id: 0)\n"}
	h := newHarness(t, sampleTopology(), cmd, nil, nil)

	require.NoError(t, h.runner.DeleteNode("nodeA"))

	require.Len(t, cmd.runs, 1)
	assert.Equal(t, []string{"ip", "netns", "del", "vnetnodeA"}, cmd.runs[0])

	topo, err := h.store.Load()
	require.NoError(t, err)
	assert.NotContains(t, topo.Nodes, "nodeA")
	assert.Equal(t, "", topo.Links["linkAN1"].Node)
}

func TestDeleteNodeAbsentNamespaceStillPrunes(t *testing.T) {
	cmd := &fakeCmd{netnsOutput: ""}
	h := newHarness(t, sampleTopology(), cmd, nil, nil)

	require.NoError(t, h.runner.DeleteNode("nodeA"))

	assert.Empty(t, cmd.runs)

	topo, err := h.store.Load()
	require.NoError(t, err)
	assert.NotContains(t, topo.Nodes, "nodeA")
}

func TestDeleteNodeFailurePrunesAndReports(t *testing.T) {
	cmd := &fakeCmd{netnsOutput: "vnetnodeA\n", failOn: "netns del"}
	h := newHarness(t, sampleTopology(), cmd, nil, nil)

	err := h.runner.DeleteNode("nodeA")
	require.ErrorIs(t, err, errdefs.ErrDeleteNode)

	// Record converges even though the OS refused.
	topo, loadErr := h.store.Load()
	require.NoError(t, loadErr)
	assert.NotContains(t, topo.Nodes, "nodeA")
}

func TestDeleteNodeEmptyID(t *testing.T) {
	h := newHarness(t, sampleTopology(), &fakeCmd{}, nil, nil)

	err := h.runner.DeleteNode("  ")
	require.ErrorIs(t, err, errdefs.ErrNodeIDRequired)
}

func TestDeleteNetworkDownsThenDeletesBridge(t *testing.T) {
	cmd := &fakeCmd{}
	h := newHarness(t, sampleTopology(), cmd, []string{"vnetbr-net1"}, nil)

	require.NoError(t, h.runner.DeleteNetwork("net1"))

	require.Len(t, cmd.runs, 2)
	assert.Equal(t, []string{"ip", "link", "set", "vnetbr-net1", "down"}, cmd.runs[0])
	assert.Equal(t, []string{"ip", "link", "del", "vnetbr-net1"}, cmd.runs[1])

	topo, err := h.store.Load()
	require.NoError(t, err)
	assert.NotContains(t, topo.Networks, "net1")
	assert.Equal(t, "", topo.Links["linkAN1"].Network)
}

func TestDeleteNetworkAbsentBridge(t *testing.T) {
	cmd := &fakeCmd{}
	h := newHarness(t, sampleTopology(), cmd, nil, nil)

	require.NoError(t, h.runner.DeleteNetwork("net1"))
	assert.Empty(t, cmd.runs)
}

func TestDeleteLinkRemovesDeviceAndInterfaceRecord(t *testing.T) {
	cmd := &fakeCmd{}
	h := newHarness(t, sampleTopology(), cmd, nil, []string{"vnetlinkAN1"})

	require.NoError(t, h.runner.DeleteLink("linkAN1"))

	require.Len(t, cmd.runs, 1)
	assert.Equal(t, []string{"ip", "link", "del", "vnetlinkAN1"}, cmd.runs[0])

	topo, err := h.store.Load()
	require.NoError(t, err)
	assert.NotContains(t, topo.Links, "linkAN1")
	assert.NotContains(t, topo.Nodes["nodeA"].Interfaces, "eth0")
}

func TestDeleteUplinkDerivesDeviceFromSeed(t *testing.T) {
	cmd := &fakeCmd{}
	h := newHarness(t, sampleTopology(), cmd, nil, []string{"vnetisp07"})

	up := state.Uplink{Iface: "eth1", ISP: "isp0", ISPAddr: "10.0.7.2", NodeID: "nodeA"}
	require.NoError(t, h.runner.DeleteUplink("isp0", up))

	require.Len(t, cmd.runs, 1)
	assert.Equal(t, []string{"ip", "link", "del", "vnetisp07"}, cmd.runs[0])

	topo, err := h.store.Load()
	require.NoError(t, err)
	assert.NotContains(t, topo.Global.Internet, "isp0")
}

func TestDeleteUplinkAbsentDevice(t *testing.T) {
	cmd := &fakeCmd{}
	h := newHarness(t, sampleTopology(), cmd, nil, nil)

	up := state.Uplink{ISP: "isp0", ISPAddr: "10.0.7.2"}
	require.NoError(t, h.runner.DeleteUplink("isp0", up))
	assert.Empty(t, cmd.runs)
}

func TestUplinksSnapshot(t *testing.T) {
	h := newHarness(t, sampleTopology(), &fakeCmd{}, nil, nil)

	uplinks, err := h.runner.Uplinks()
	require.NoError(t, err)
	require.Contains(t, uplinks, "isp0")
	assert.Equal(t, "nodeA", uplinks["isp0"].NodeID)
}

func TestProcessOutputPath(t *testing.T) {
	h := newHarness(t, sampleTopology(), &fakeCmd{}, nil, nil)

	path, err := h.runner.ProcessOutputPath("nodeA", "ping")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ping.out", path)
}

func TestProcessOutputPathErrors(t *testing.T) {
	h := newHarness(t, sampleTopology(), &fakeCmd{}, nil, nil)

	tests := []struct {
		name    string
		nodeID  string
		tag     string
		wantErr error
	}{
		{name: "missing node id", nodeID: "", tag: "ping", wantErr: errdefs.ErrNodeIDRequired},
		{name: "missing tag", nodeID: "nodeA", tag: "", wantErr: errdefs.ErrProcessTagRequired},
		{name: "unknown node", nodeID: "ghost", tag: "ping", wantErr: errdefs.ErrNodeNotFound},
		{name: "unknown process", nodeID: "nodeA", tag: "iperf", wantErr: errdefs.ErrProcessNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.runner.ProcessOutputPath(tt.nodeID, tt.tag)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRemoveStateFile(t *testing.T) {
	h := newHarness(t, sampleTopology(), &fakeCmd{}, nil, nil)

	require.NoError(t, h.runner.RemoveStateFile())

	_, err := h.runner.Topology()
	require.ErrorIs(t, err, errdefs.ErrStateAbsent)
}
