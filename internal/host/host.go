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

// Package host enumerates OS-level network resources that follow the vnet
// naming convention. The results are derived from the live system, never from
// the persisted topology, and are used only during full-host reconciliation.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vnetsim/vnet/internal/consts"
	"github.com/vnetsim/vnet/internal/errdefs"
	"github.com/vnetsim/vnet/internal/util/cmdexec"
	"github.com/vnetsim/vnet/internal/util/naming"
)

type Query struct {
	ctx    context.Context
	logger *slog.Logger
	cmd    cmdexec.Runner

	// netClassDir is overridable so tests can point at a fixture tree.
	netClassDir string
}

func NewQuery(ctx context.Context, logger *slog.Logger, cmd cmdexec.Runner) *Query {
	return &Query{
		ctx:         ctx,
		logger:      logger,
		cmd:         cmd,
		netClassDir: consts.NetClassDir,
	}
}

// NewQueryWithNetClassDir is NewQuery with the sysfs network directory
// replaced, for tests.
func NewQueryWithNetClassDir(ctx context.Context, logger *slog.Logger, cmd cmdexec.Runner, dir string) *Query {
	q := NewQuery(ctx, logger, cmd)
	q.netClassDir = dir
	return q
}

// Namespaces returns the sorted logical ids of vnet-owned network namespaces
// currently present on the host.
func (q *Query) Namespaces() ([]string, error) {
	out, err := q.cmd.Output(q.ctx, "ip", "netns", "list")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdefs.ErrHostQuery, err)
	}

	var ids []string
	for _, line := range strings.Split(out, "\n") {
		// `ip netns list` prints "name (id: N)"; the name is the first field.
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		if naming.Owned(name) {
			ids = append(ids, naming.LogicalID(name))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Bridges returns the sorted logical ids of vnet-owned bridges.
func (q *Query) Bridges() ([]string, error) {
	devices, err := q.devices()
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, dev := range devices {
		if !naming.Owned(dev) || !q.isBridge(dev) {
			continue
		}
		ids = append(ids, strings.TrimPrefix(naming.LogicalID(dev), "br-"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Interfaces returns the sorted logical ids of vnet-owned non-bridge network
// devices visible in the root namespace.
func (q *Query) Interfaces() ([]string, error) {
	devices, err := q.devices()
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, dev := range devices {
		if !naming.Owned(dev) || q.isBridge(dev) {
			continue
		}
		ids = append(ids, naming.LogicalID(dev))
	}
	sort.Strings(ids)
	return ids, nil
}

func (q *Query) devices() ([]string, error) {
	entries, err := os.ReadDir(q.netClassDir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", errdefs.ErrHostQuery, q.netClassDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (q *Query) isBridge(dev string) bool {
	_, err := os.Stat(filepath.Join(q.netClassDir, dev, "bridge"))
	return err == nil
}
