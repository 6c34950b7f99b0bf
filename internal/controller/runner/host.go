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

package runner

// Host enumeration passes straight through to the live queries; results are
// never cached because reconciliation deletes change what is enumerable.

func (r *Exec) HostNamespaces() ([]string, error) {
	return r.hostq.Namespaces()
}

func (r *Exec) HostBridges() ([]string, error) {
	return r.hostq.Bridges()
}

func (r *Exec) HostInterfaces() ([]string, error) {
	return r.hostq.Interfaces()
}
