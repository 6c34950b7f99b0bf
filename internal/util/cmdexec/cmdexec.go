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

// Package cmdexec wraps external command invocation so packages shelling out
// to ip(8) can be exercised in tests without touching the host.
package cmdexec

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes external commands.
type Runner interface {
	// Run executes the command and returns combined output on failure.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes the command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct {
	Logger *slog.Logger
}

func NewExecRunner(logger *slog.Logger) *ExecRunner {
	return &ExecRunner{Logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	r.Logger.DebugContext(ctx, "exec", "cmd", name, "args", strings.Join(args, " "))
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	r.Logger.DebugContext(ctx, "exec", "cmd", name, "args", strings.Join(args, " "))
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}
