/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package clusteradapter defines the boundary to the cluster orchestrator
// (spec.md §6): pod/node registry, binding API, watch stream, and pod
// lifecycle are all external collaborators. This package only declares
// the interface the core consumes and an in-memory fake used by tests —
// the real orchestrator client is out of scope (spec.md §1).
package clusteradapter

import (
	"context"

	"github.com/aws/leo-workload-scheduler/internal/apis"
)

// PendingEvent is one item from the pending-workload watch stream
// (spec.md §6 watch_pending_workloads).
type PendingEvent struct {
	Workload apis.Workload
}

// Adapter is the narrow cluster orchestrator boundary the core requires
// (spec.md §6).
type Adapter interface {
	ListFollowerNodes(ctx context.Context) ([]apis.Node, error)
	ListWorkloads(ctx context.Context) ([]apis.Workload, error)
	GetWorkload(ctx context.Context, name, namespace string) (apis.Workload, error)
	IsWorkloadReady(ctx context.Context, w apis.Workload) (bool, error)

	// BindWorkload idempotently binds a pending workload to a node.
	BindWorkload(ctx context.Context, namespace, workloadName, nodeName string) error

	// CreateWorkload clones template under newName, explicitly assigned to
	// assignedNode, and returns the new workload handle.
	CreateWorkload(ctx context.Context, template apis.Workload, newName, assignedNode string) (apis.Workload, error)

	DeleteWorkload(ctx context.Context, w apis.Workload) error

	// WatchPendingWorkloads streams pending-workload events for namespace
	// until ctx is canceled. The returned channel is closed when the
	// watch ends.
	WatchPendingWorkloads(ctx context.Context, namespace string) (<-chan PendingEvent, error)
}
