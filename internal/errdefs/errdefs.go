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

package errdefs

import (
	"errors"
)

var (
	ErrConfig             = errors.New("config error")
	ErrLoggerNotFound     = errors.New("logger not found in context")
	ErrLockHeld           = errors.New("state lock held by another process")
	ErrLockCorrupt        = errors.New("unreadable lock record")
	ErrStateAbsent        = errors.New("no topology state found")
	ErrStateCorrupt       = errors.New("failed to parse topology state")
	ErrWriteState         = errors.New("failed to write topology state")
	ErrNodeIDRequired     = errors.New("node id is required")
	ErrProcessTagRequired = errors.New("process tag is required")
	ErrNodeNotFound       = errors.New("node not found")
	ErrProcessNotFound    = errors.New("process not found")
	ErrDeleteNode         = errors.New("failed to delete node")
	ErrDeleteNetwork      = errors.New("failed to delete network")
	ErrDeleteLink         = errors.New("failed to delete link")
	ErrDeleteUplink       = errors.New("failed to delete internet uplink")
	ErrHostQuery          = errors.New("failed to query host resources")
	ErrConfirmation       = errors.New("failed to read confirmation answer")
)
