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

package clusteradapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/leo-workload-scheduler/internal/apis"
)

// Fake is an in-memory Adapter used by tests, grounded on the teacher
// pack's fake cloud-provider/test-environment convention (e.g.
// sigs.k8s.io/karpenter's pkg/test and pkg/cloudprovider/fake): plain
// maps guarded by a mutex, no network calls, deterministic behavior the
// test can arrange before exercising a control loop.
type Fake struct {
	mu        sync.Mutex
	nodes     map[string]apis.Node
	workloads map[string]apis.Workload
	ready     map[string]bool
	events    chan PendingEvent

	BindErr   error
	CreateErr error
	DeleteErr error
}

var _ Adapter = (*Fake)(nil)

func NewFake() *Fake {
	return &Fake{
		nodes:     map[string]apis.Node{},
		workloads: map[string]apis.Workload{},
		ready:     map[string]bool{},
		events:    make(chan PendingEvent, 64),
	}
}

func (f *Fake) AddNode(n apis.Node) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodes[n.Name] = n
}

func (f *Fake) AddWorkload(w apis.Workload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workloads[w.Name] = w
	f.ready[w.Name] = w.Ready
	if w.Pending() {
		f.events <- PendingEvent{Workload: w}
	}
}

// SetReady flips a workload's readiness, as the real orchestrator would
// once the successor's pod reports healthy.
func (f *Fake) SetReady(name string, ready bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ready[name] = ready
	if w, ok := f.workloads[name]; ok {
		w.Ready = ready
		f.workloads[name] = w
	}
}

func (f *Fake) Workload(name string) (apis.Workload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.workloads[name]
	return w, ok
}

func (f *Fake) ListFollowerNodes(_ context.Context) ([]apis.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]apis.Node, 0, len(f.nodes))
	for _, n := range f.nodes {
		if n.Role == apis.RoleFollower {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *Fake) ListWorkloads(_ context.Context) ([]apis.Workload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]apis.Workload, 0, len(f.workloads))
	for _, w := range f.workloads {
		out = append(out, w)
	}
	return out, nil
}

func (f *Fake) GetWorkload(_ context.Context, name, _ string) (apis.Workload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.workloads[name]
	if !ok {
		return apis.Workload{}, fmt.Errorf("workload %q not found", name)
	}
	return w, nil
}

func (f *Fake) IsWorkloadReady(_ context.Context, w apis.Workload) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready[w.Name], nil
}

func (f *Fake) BindWorkload(_ context.Context, _, workloadName, nodeName string) error {
	if f.BindErr != nil {
		return f.BindErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.workloads[workloadName]
	if !ok {
		return fmt.Errorf("workload %q not found", workloadName)
	}
	w.AssignedNodeName = nodeName
	f.workloads[workloadName] = w
	return nil
}

func (f *Fake) CreateWorkload(_ context.Context, template apis.Workload, newName, assignedNode string) (apis.Workload, error) {
	if f.CreateErr != nil {
		return apis.Workload{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := template
	clone.Name = newName
	clone.AssignedNodeName = assignedNode
	clone.Ready = false
	f.workloads[newName] = clone
	f.ready[newName] = false
	return clone, nil
}

func (f *Fake) DeleteWorkload(_ context.Context, w apis.Workload) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.workloads, w.Name)
	delete(f.ready, w.Name)
	return nil
}

func (f *Fake) WatchPendingWorkloads(ctx context.Context, _ string) (<-chan PendingEvent, error) {
	out := make(chan PendingEvent)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-f.events:
				if !ok {
					return
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
