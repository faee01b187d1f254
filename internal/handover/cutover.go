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

import (
	"context"
	"strings"
	"time"

	retry "github.com/avast/retry-go"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/aws/leo-workload-scheduler/internal/apis"
	"github.com/aws/leo-workload-scheduler/internal/clusteradapter"
	"github.com/aws/leo-workload-scheduler/internal/metrics"
)

// ReadinessPollInterval is the cadence of the successor-readiness poll
// during cutover (spec.md §4.9).
const ReadinessPollInterval = 1 * time.Second

// successorName derives the new workload name by stripping a
// "-<currentNodeName>" suffix if present and appending
// "-<successorNodeName>" (spec.md §4.9), which keeps the name from
// growing unboundedly across repeated handovers as long as the suffix
// convention holds.
func successorName(workloadName, currentNodeName, successorNodeName string) string {
	base := workloadName
	suffix := "-" + currentNodeName
	if strings.HasSuffix(base, suffix) {
		base = strings.TrimSuffix(base, suffix)
	}
	return base + "-" + successorNodeName
}

// cutover is the recreate-on-successor protocol (spec.md §4.9): create a
// clone at the successor, poll its readiness with no timeout, then delete
// the original only once the clone is confirmed ready. The original is
// never deleted before that observation (spec.md §8 invariant 3), matching
// the teacher's NodeClaim lifecycle controller's staged "launch then
// verify before tearing down the old resource" discipline.
func cutover(ctx context.Context, adapter clusteradapter.Adapter, clk clock.Clock, logger *zap.SugaredLogger,
	original apis.Workload, currentNodeName, successorNodeName string,
) error {
	newName := successorName(original.Name, currentNodeName, successorNodeName)

	var successor apis.Workload
	err := retry.Do(
		func() error {
			var createErr error
			successor, createErr = adapter.CreateWorkload(ctx, original, newName, successorNodeName)
			return createErr
		},
		retry.Attempts(3),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return err
	}
	logger.Infow("successor workload created", "successor", successor.Name, "node", successorNodeName)

	waitStart := clk.Now()
	for {
		ready, err := adapter.IsWorkloadReady(ctx, successor)
		if err != nil {
			logger.Warnw("readiness check failed, will retry", "successor", successor.Name, "error", err)
		} else if ready {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clk.After(ReadinessPollInterval):
		}
		successor, err = adapter.GetWorkload(ctx, successor.Name, successor.Namespace)
		if err != nil {
			return err
		}
	}
	metrics.CutoverReadinessWait.Observe(clk.Now().Sub(waitStart).Seconds())

	logger.Infow("successor ready, deleting original", "original", original.Name)
	return retry.Do(
		func() error { return adapter.DeleteWorkload(ctx, original) },
		retry.Attempts(3),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}
