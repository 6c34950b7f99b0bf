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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vnetsim/vnet/internal/errdefs"
)

// Confirmer decides whether a host resource may be deleted during
// reconciliation. Keeping it behind an interface decouples the phase ordering
// logic from the prompt mechanism.
type Confirmer interface {
	Approve(kind, id string) (bool, error)
}

// PromptConfirmer asks the operator for each resource. The answer is trimmed
// and case-folded; only a leading 'y' approves, so an empty answer preserves
// the resource.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (c *PromptConfirmer) Approve(kind, id string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "Delete host %s %s (y/N): ", kind, id); err != nil {
		return false, fmt.Errorf("%w: %w", errdefs.ErrConfirmation, err)
	}

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("%w: %w", errdefs.ErrConfirmation, err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer != "" && answer[0] == 'y', nil
}

// StaticConfirmer answers every prompt the same way; the non-interactive
// policy for automated contexts.
type StaticConfirmer struct {
	Answer bool
}

func (c StaticConfirmer) Approve(_, _ string) (bool, error) {
	return c.Answer, nil
}
