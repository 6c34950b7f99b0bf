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

// Package lock provides single-host mutual exclusion over the topology state
// across process invocations. The lock record is a pid file; no other
// synchronization primitive is assumed to survive a crash.
//
// A record whose pid no longer maps to a running process is stale and may be
// cleared by anyone. BreakLock exists so a crashed holder can never block
// cleanup forever; the tradeoff is that the lock serializes invocations only
// on a best-effort basis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/vnetsim/vnet/internal/errdefs"
)

type Manager struct {
	ctx    context.Context
	logger *slog.Logger
	path   string
	pid    int

	held bool
}

func NewManager(ctx context.Context, logger *slog.Logger, path string) *Manager {
	return &Manager{
		ctx:    ctx,
		logger: logger,
		path:   path,
		pid:    os.Getpid(),
	}
}

// Path returns the lock record path.
func (m *Manager) Path() string {
	return m.path
}

// Acquire writes this process's pid as the lock record. It fails with
// ErrLockHeld when another live process owns the record; a stale record is
// cleared and acquisition retried once.
func (m *Manager) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("mkdir lock dir: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(m.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_, writeErr := fmt.Fprintf(f, "%d\n", m.pid)
			closeErr := f.Close()
			if writeErr != nil || closeErr != nil {
				_ = os.Remove(m.path)
				return fmt.Errorf("write lock record %s: %w", m.path, errors.Join(writeErr, closeErr))
			}
			m.held = true
			m.logger.DebugContext(m.ctx, "lock acquired", "path", m.path, "pid", m.pid)
			return nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("create lock record %s: %w", m.path, err)
		}

		holder, readErr := m.readHolder()
		if readErr != nil {
			// Unreadable record from a half-written crash: clear and retry.
			m.logger.WarnContext(m.ctx, "clearing unreadable lock record", "path", m.path, "error", readErr)
			_ = os.Remove(m.path)
			continue
		}
		if processAlive(holder) {
			return fmt.Errorf("%w: pid %d", errdefs.ErrLockHeld, holder)
		}
		m.logger.InfoContext(m.ctx, "clearing stale lock", "path", m.path, "pid", holder)
		_ = os.Remove(m.path)
	}
	return fmt.Errorf("acquire lock %s: retries exhausted", m.path)
}

// Release clears the record when this process holds it. Releasing a lock that
// is not held is a no-op.
func (m *Manager) Release() {
	if !m.held {
		return
	}
	m.held = false
	if err := os.Remove(m.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		m.logger.WarnContext(m.ctx, "failed to remove lock record", "path", m.path, "error", err)
		return
	}
	m.logger.DebugContext(m.ctx, "lock released", "path", m.path)
}

// BreakLock unconditionally clears the lock record regardless of holder
// liveness. It is called defensively at the start of every teardown so a
// crashed prior run cannot deadlock future ones.
func (m *Manager) BreakLock() {
	err := os.Remove(m.path)
	switch {
	case err == nil:
		m.logger.InfoContext(m.ctx, "broke existing lock", "path", m.path)
	case errors.Is(err, fs.ErrNotExist):
		// Nothing to break.
	default:
		m.logger.WarnContext(m.ctx, "failed to break lock", "path", m.path, "error", err)
	}
	m.held = false
}

// Stale reports whether a lock record exists whose holder is gone. Absent and
// live-holder records both report false.
func (m *Manager) Stale() bool {
	holder, err := m.readHolder()
	if err != nil {
		return false
	}
	return !processAlive(holder)
}

func (m *Manager) readHolder() (int, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("parse lock record %s: %w", m.path, errdefs.ErrLockCorrupt)
	}
	return pid, nil
}

// processAlive probes the pid with signal 0. EPERM still means the process
// exists, just owned by someone else.
func processAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
