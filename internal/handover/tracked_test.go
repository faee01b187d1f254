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

package handover

import "testing"

func TestTrackedSetNeverForgets(t *testing.T) {
	s := NewTrackedSet()
	if s.Contains("w1") {
		t.Fatal("empty set should not contain anything")
	}
	s.Add("w1")
	if !s.Contains("w1") {
		t.Error("expected w1 to be tracked after Add")
	}
	s.Add("w1")
	if !s.Contains("w1") {
		t.Error("expected w1 to remain tracked after a duplicate Add")
	}
	if s.Contains("w2") {
		t.Error("unrelated name should not be tracked")
	}
}

func TestSuccessorNameStripsCurrentNodeSuffix(t *testing.T) {
	cases := []struct {
		workload, currentNode, successorNode, want string
	}{
		{"job-nodeA", "nodeA", "nodeB", "job-nodeB"},
		{"job", "nodeA", "nodeB", "job-nodeB"},
		{"job-nodeA-nodeA", "nodeA", "nodeC", "job-nodeA-nodeC"},
	}
	for _, tc := range cases {
		got := successorName(tc.workload, tc.currentNode, tc.successorNode)
		if got != tc.want {
			t.Errorf("successorName(%q,%q,%q) = %q, want %q",
				tc.workload, tc.currentNode, tc.successorNode, got, tc.want)
		}
	}
}
