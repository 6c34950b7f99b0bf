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

// Package state persists the topology description as a JSON file.
//
// The store deliberately re-reads the backing file on every accessor call
// instead of caching: deleting one resource kind can invalidate or regenerate
// metadata of another (removing a node cascades cleanup of its link
// references), and collaborators are allowed to rewrite the file out of band.
// Callers must re-fetch key sets after any mutation.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/vnetsim/vnet/internal/errdefs"
)

type Store struct {
	ctx    context.Context
	logger *slog.Logger
	path   string
}

func NewStore(ctx context.Context, logger *slog.Logger, path string) *Store {
	return &Store{
		ctx:    ctx,
		logger: logger,
		path:   path,
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the topology from disk. It returns ErrStateAbsent when no state
// file exists (a non-fatal condition: there is nothing to tear down) and
// ErrStateCorrupt when the file cannot be parsed.
func (s *Store) Load() (Topology, error) {
	var topo Topology

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.DebugContext(s.ctx, "state file absent", "path", s.path)
			return topo, errdefs.ErrStateAbsent
		}
		return topo, fmt.Errorf("read %s: %w", s.path, err)
	}

	if err = json.Unmarshal(data, &topo); err != nil {
		s.logger.ErrorContext(s.ctx, "state file unparsable", "path", s.path, "error", err)
		return topo, fmt.Errorf("%w: %w", errdefs.ErrStateCorrupt, err)
	}
	return topo, nil
}

// Save writes the topology atomically: temp file in the same directory,
// fsync, then rename over the target.
func (s *Store) Save(topo Topology) error {
	marshaled, err := json.MarshalIndent(topo, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", errdefs.ErrWriteState, err)
	}
	marshaled = append(marshaled, '\n')

	if err = os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%w: mkdir: %w", errdefs.ErrWriteState, err)
	}

	const filePerm = 0o644
	if err = atomicWriteFile(s.path, marshaled, filePerm); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrWriteState, err)
	}
	s.logger.DebugContext(s.ctx, "state file written", "path", s.path)
	return nil
}

func atomicWriteFile(file string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(file)

	f, createErr := os.CreateTemp(dir, ".state-*.tmp")
	if createErr != nil {
		return createErr
	}
	tmp := f.Name()
	defer func() {
		_ = f.Close()
		_ = os.Remove(tmp) // safe if already renamed
	}()

	if chmodErr := f.Chmod(mode); chmodErr != nil {
		return fmt.Errorf("chmod: %w", chmodErr)
	}
	if _, writeErr := f.Write(data); writeErr != nil {
		return fmt.Errorf("write: %w", writeErr)
	}
	if syncErr := f.Sync(); syncErr != nil {
		return fmt.Errorf("fsync: %w", syncErr)
	}
	if closeErr := f.Close(); closeErr != nil {
		return fmt.Errorf("close: %w", closeErr)
	}

	if renameErr := os.Rename(tmp, file); renameErr != nil {
		return fmt.Errorf("rename: %w", renameErr)
	}
	if d, openErr := os.Open(dir); openErr == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// Remove deletes the backing file. An already-absent file is logged and
// treated as success so teardown stays safely re-runnable.
func (s *Store) Remove() error {
	err := os.Remove(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.DebugContext(s.ctx, "state file already absent", "path", s.path)
			return nil
		}
		return fmt.Errorf("remove %s: %w", s.path, err)
	}
	s.logger.InfoContext(s.ctx, "state file removed", "path", s.path)
	return nil
}

// NodeIDs returns the sorted node keys as of this call. An absent state file
// yields an empty set.
func (s *Store) NodeIDs() ([]string, error) {
	topo, err := s.Load()
	if err != nil {
		if errors.Is(err, errdefs.ErrStateAbsent) {
			return nil, nil
		}
		return nil, err
	}
	return sortedKeys(topo.Nodes), nil
}

// NetworkIDs returns the sorted network keys as of this call.
func (s *Store) NetworkIDs() ([]string, error) {
	topo, err := s.Load()
	if err != nil {
		if errors.Is(err, errdefs.ErrStateAbsent) {
			return nil, nil
		}
		return nil, err
	}
	return sortedKeys(topo.Networks), nil
}

// LinkIDs returns the sorted link keys as of this call.
func (s *Store) LinkIDs() ([]string, error) {
	topo, err := s.Load()
	if err != nil {
		if errors.Is(err, errdefs.ErrStateAbsent) {
			return nil, nil
		}
		return nil, err
	}
	return sortedKeys(topo.Links), nil
}

// Global returns the global configuration as of this call.
func (s *Store) Global() (Global, error) {
	topo, err := s.Load()
	if err != nil {
		return Global{}, err
	}
	return topo.Global, nil
}

// Mutate loads the topology, applies fn, and saves the result. It is the
// single write path used by the resource deleters to prune records.
func (s *Store) Mutate(fn func(*Topology)) error {
	topo, err := s.Load()
	if err != nil {
		if errors.Is(err, errdefs.ErrStateAbsent) {
			return nil
		}
		return err
	}
	fn(&topo)
	return s.Save(topo)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
