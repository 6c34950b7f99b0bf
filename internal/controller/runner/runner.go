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

// Package runner adapts the per-resource deletion primitives and the state
// and host stores behind one interface consumed by the controller.
//
// Every deleter is idempotent: a resource that is already gone from the OS is
// pruned from the recorded state and reported as success, so teardown phases
// tolerate dangling references left by earlier phases.
package runner

import (
	"context"
	"log/slog"

	"github.com/vnetsim/vnet/internal/host"
	"github.com/vnetsim/vnet/internal/state"
	"github.com/vnetsim/vnet/internal/util/cmdexec"
)

type Runner interface {
	// State accessors. Each call re-reads the backing file; callers must
	// re-fetch after any mutation.
	Topology() (state.Topology, error)
	NodeIDs() ([]string, error)
	NetworkIDs() ([]string, error)
	LinkIDs() ([]string, error)
	Uplinks() (map[string]state.Uplink, error)
	RemoveStateFile() error
	ProcessOutputPath(nodeID, tag string) (string, error)

	// Resource deleters.
	DeleteNode(nodeID string) error
	DeleteNetwork(networkID string) error
	DeleteLink(linkID string) error
	DeleteUplink(name string, up state.Uplink) error

	// Live host enumeration, independent of recorded state.
	HostNamespaces() ([]string, error)
	HostBridges() ([]string, error)
	HostInterfaces() ([]string, error)
}

type Exec struct {
	ctx    context.Context
	logger *slog.Logger
	opts   Options

	store *state.Store
	hostq *host.Query
	cmd   cmdexec.Runner
}

type Options struct {
	StateFile string
}

func NewRunner(ctx context.Context, logger *slog.Logger, opts Options) Runner {
	cmd := cmdexec.NewExecRunner(logger)
	return &Exec{
		ctx:    ctx,
		logger: logger,
		opts:   opts,
		store:  state.NewStore(ctx, logger, opts.StateFile),
		hostq:  host.NewQuery(ctx, logger, cmd),
		cmd:    cmd,
	}
}

// NewRunnerWithDeps builds a runner around explicit collaborators, for tests.
func NewRunnerWithDeps(
	ctx context.Context,
	logger *slog.Logger,
	opts Options,
	store *state.Store,
	hostq *host.Query,
	cmd cmdexec.Runner,
) Runner {
	return &Exec{
		ctx:    ctx,
		logger: logger,
		opts:   opts,
		store:  store,
		hostq:  hostq,
		cmd:    cmd,
	}
}
