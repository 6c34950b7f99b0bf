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
	"errors"
	"fmt"
	"sort"

	"github.com/vnetsim/vnet/internal/errdefs"
	"github.com/vnetsim/vnet/internal/state"
)

// TeardownOptions is built once per invocation and never mutated afterwards.
type TeardownOptions struct {
	// Force skips every confirmation during host reconciliation.
	Force bool
	// All requests host-wide reconciliation after the declared state is gone.
	All bool
	// Quiet suppresses the summary printed by the CLI layer.
	Quiet bool
}

// DeleteStateResult reports what a teardown run did. Individual deletion
// failures are collected in Failed instead of aborting the run.
type DeleteStateResult struct {
	StateAbsent      bool
	StateFileRemoved bool

	Deleted []string // resources deleted, as kind:id
	Skipped []string // host resources preserved after a declined confirmation
	Failed  []string // deletion attempts that reported failure
}

// DeleteState tears down the declared topology in strict phase order:
// break stale lock, uplinks (from a pre-deletion snapshot), nodes, networks,
// links, state file, then optional host reconciliation. The state store is
// re-read between phases: each phase's deletions mutate state the next
// phase depends on, and collaborators may make out-of-band changes.
//
// Only an unparsable state file and lock acquisition escalate as errors;
// everything else is absorbed into the result so teardown makes maximal
// forward progress.
func (b *Exec) DeleteState(opts TeardownOptions) (DeleteStateResult, error) {
	res := DeleteStateResult{
		Deleted: []string{},
		Skipped: []string{},
		Failed:  []string{},
	}

	// Pre-check: a crashed prior run must never block cleanup, so the break
	// is unconditional. The cost is that the lock is best-effort only.
	b.lock.BreakLock()
	if err := b.lock.Acquire(); err != nil {
		return res, err
	}
	defer b.lock.Release()

	// Snapshot the uplink entries before anything is deleted; later phases
	// prune the global configuration they live in.
	uplinks, err := b.runner.Uplinks()
	switch {
	case errors.Is(err, errdefs.ErrStateAbsent):
		res.StateAbsent = true
		b.logger.DebugContext(b.ctx, "no topology state, nothing to tear down")
	case err != nil:
		return res, err
	}

	if !res.StateAbsent {
		b.deleteUplinks(uplinks, &res)

		if err = b.deleteStructural(&res); err != nil {
			return res, err
		}

		// Point of no return for declared-state recovery.
		if err = b.runner.RemoveStateFile(); err != nil {
			b.logger.WarnContext(b.ctx, "failed to remove state file", "error", err)
			res.Failed = append(res.Failed, fmt.Sprintf("state-file: %v", err))
		} else {
			res.StateFileRemoved = true
		}
	}

	if opts.All {
		b.cleanupHost(opts, &res)
	}

	b.logger.DebugContext(b.ctx, "delete state completed",
		"deleted", len(res.Deleted), "skipped", len(res.Skipped), "failed", len(res.Failed))
	return res, nil
}

// deleteUplinks runs before general node deletion: uplinks attach to nodes
// that are about to disappear. Iteration order is fixed so runs are
// reproducible.
func (b *Exec) deleteUplinks(uplinks map[string]state.Uplink, res *DeleteStateResult) {
	for _, name := range sortedNames(uplinks) {
		up := uplinks[name]
		if err := b.runner.DeleteUplink(name, up); err != nil {
			b.logger.WarnContext(b.ctx, "uplink deletion failed, continuing", "uplink", name, "error", err)
			res.Failed = append(res.Failed, fmt.Sprintf("uplink:%s: %v", name, err))
			continue
		}
		res.Deleted = append(res.Deleted, "uplink:"+name)
	}
}

// deleteStructural removes nodes, then networks, then links, re-reading the
// state store between phases. Nodes go first: networks and links have no
// independent existence once their owning nodes are gone, and the deleters
// tolerate references already pruned by an earlier phase.
func (b *Exec) deleteStructural(res *DeleteStateResult) error {
	nodeIDs, err := b.runner.NodeIDs()
	if err != nil {
		return err
	}
	for _, id := range nodeIDs {
		if deleteErr := b.runner.DeleteNode(id); deleteErr != nil {
			b.logger.WarnContext(b.ctx, "node deletion failed, continuing", "node", id, "error", deleteErr)
			res.Failed = append(res.Failed, fmt.Sprintf("node:%s: %v", id, deleteErr))
			continue
		}
		res.Deleted = append(res.Deleted, "node:"+id)
	}

	networkIDs, err := b.runner.NetworkIDs()
	if err != nil {
		return err
	}
	for _, id := range networkIDs {
		if deleteErr := b.runner.DeleteNetwork(id); deleteErr != nil {
			b.logger.WarnContext(b.ctx, "network deletion failed, continuing", "network", id, "error", deleteErr)
			res.Failed = append(res.Failed, fmt.Sprintf("network:%s: %v", id, deleteErr))
			continue
		}
		res.Deleted = append(res.Deleted, "network:"+id)
	}

	linkIDs, err := b.runner.LinkIDs()
	if err != nil {
		return err
	}
	for _, id := range linkIDs {
		if deleteErr := b.runner.DeleteLink(id); deleteErr != nil {
			b.logger.WarnContext(b.ctx, "link deletion failed, continuing", "link", id, "error", deleteErr)
			res.Failed = append(res.Failed, fmt.Sprintf("link:%s: %v", id, deleteErr))
			continue
		}
		res.Deleted = append(res.Deleted, "link:"+id)
	}

	return nil
}

// cleanupHost reconciles live OS resources against nothing: after the state
// file is gone, anything still carrying the vnet prefix is an orphan. Three
// independent sub-passes, each enumerating fresh.
func (b *Exec) cleanupHost(opts TeardownOptions, res *DeleteStateResult) {
	b.reconcile("namespace", opts, res, b.runner.HostNamespaces, b.runner.DeleteNode)
	b.reconcile("bridge", opts, res, b.runner.HostBridges, b.runner.DeleteNetwork)
	b.reconcile("interface", opts, res, b.runner.HostInterfaces, b.runner.DeleteLink)
}

func (b *Exec) reconcile(
	kind string,
	opts TeardownOptions,
	res *DeleteStateResult,
	list func() ([]string, error),
	deleteFn func(string) error,
) {
	ids, err := list()
	if err != nil {
		b.logger.WarnContext(b.ctx, "host enumeration failed, skipping pass", "kind", kind, "error", err)
		res.Failed = append(res.Failed, fmt.Sprintf("host-%s-query: %v", kind, err))
		return
	}

	for _, id := range ids {
		deleteIt := opts.Force
		if !deleteIt {
			approved, approveErr := b.confirm.Approve(kind, id)
			if approveErr != nil {
				b.logger.WarnContext(b.ctx, "confirmation failed, preserving resource",
					"kind", kind, "id", id, "error", approveErr)
			}
			deleteIt = approved
		}

		if !deleteIt {
			b.logger.InfoContext(b.ctx, "leaving host resource as it is", "kind", kind, "id", id)
			res.Skipped = append(res.Skipped, fmt.Sprintf("host-%s:%s", kind, id))
			continue
		}

		if deleteErr := deleteFn(id); deleteErr != nil {
			b.logger.WarnContext(b.ctx, "host resource deletion failed, continuing",
				"kind", kind, "id", id, "error", deleteErr)
			res.Failed = append(res.Failed, fmt.Sprintf("host-%s:%s: %v", kind, id, deleteErr))
			continue
		}
		res.Deleted = append(res.Deleted, fmt.Sprintf("host-%s:%s", kind, id))
	}

	// Deletions change what is enumerable; re-query so the remainder is
	// observed before the next sub-pass runs.
	if remaining, listErr := list(); listErr == nil {
		b.logger.DebugContext(b.ctx, "host reconciliation pass done", "kind", kind, "remaining", len(remaining))
	}
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
