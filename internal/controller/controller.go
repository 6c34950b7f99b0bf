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

// Package controller drives topology operations. Its teardown path owns phase
// ordering and state re-reads only; the actual resource primitives live in
// the runner.
package controller

import (
	"context"
	"log/slog"
	"os"

	"github.com/vnetsim/vnet/internal/consts"
	"github.com/vnetsim/vnet/internal/controller/runner"
	"github.com/vnetsim/vnet/internal/lock"
)

// Locker guards the state store across process invocations.
type Locker interface {
	Acquire() error
	Release()
	BreakLock()
}

type Exec struct {
	ctx     context.Context
	logger  *slog.Logger
	opts    Options
	runner  runner.Runner
	lock    Locker
	confirm Confirmer
}

type Options struct {
	StateFile string
	LockFile  string
}

func NewControllerExec(ctx context.Context, logger *slog.Logger, opts Options) *Exec {
	if opts.StateFile == "" {
		opts.StateFile = consts.DefaultStateFile()
	}
	if opts.LockFile == "" {
		opts.LockFile = consts.DefaultLockFile(opts.StateFile)
	}
	return &Exec{
		ctx:    ctx,
		logger: logger,
		opts:   opts,
		runner: runner.NewRunner(ctx, logger, runner.Options{
			StateFile: opts.StateFile,
		}),
		lock:    lock.NewManager(ctx, logger, opts.LockFile),
		confirm: NewPromptConfirmer(os.Stdin, os.Stdout),
	}
}

// NewControllerExecWithDeps builds a controller around explicit
// collaborators. Tests use it to substitute fakes.
func NewControllerExecWithDeps(
	ctx context.Context,
	logger *slog.Logger,
	opts Options,
	r runner.Runner,
	l Locker,
	c Confirmer,
) *Exec {
	return &Exec{
		ctx:     ctx,
		logger:  logger,
		opts:    opts,
		runner:  r,
		lock:    l,
		confirm: c,
	}
}
