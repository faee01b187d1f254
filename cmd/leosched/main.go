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

// Command leosched is the composition root: it wires the Ephemeris
// Oracle, Zone Filter, Placement Decider, and Handover Controller
// against a cluster adapter and runs both control loops until signaled
// to stop.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/utils/clock"

	"github.com/aws/leo-workload-scheduler/internal/cache"
	"github.com/aws/leo-workload-scheduler/internal/clusteradapter"
	"github.com/aws/leo-workload-scheduler/internal/ephemeris"
	"github.com/aws/leo-workload-scheduler/internal/handover"
	"github.com/aws/leo-workload-scheduler/internal/leadmargin"
	"github.com/aws/leo-workload-scheduler/internal/log"
	"github.com/aws/leo-workload-scheduler/internal/metrics"
	"github.com/aws/leo-workload-scheduler/internal/options"
	"github.com/aws/leo-workload-scheduler/internal/placement"
	"github.com/aws/leo-workload-scheduler/internal/rtt"
	"github.com/aws/leo-workload-scheduler/internal/zonefilter"
)

func main() {
	opts := &options.Options{}
	fs := flag.NewFlagSet("leosched", flag.ExitOnError)
	opts.AddFlags(fs)
	if err := opts.Parse(fs, os.Args[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := log.New(opts.DevLogging)
	defer logger.Sync() //nolint:errcheck
	ctx := log.IntoContext(context.Background(), logger)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.MustRegister(prometheus.DefaultRegisterer)
	unknownSats := cache.NewUnknownSatellites()

	tleEntries := map[int]ephemeris.TLE{}
	if opts.TLEFile != "" {
		entries, err := loadTLEFile(opts.TLEFile)
		if err != nil {
			logger.Fatalw("failed to load TLE file", "error", err)
		}
		tleEntries = entries
	}
	catalog := ephemeris.NewCatalog(tleEntries)
	oracle := ephemeris.NewOracle(catalog, ephemeris.SGP4Propagator{})

	// The real cluster orchestrator client is an injected external
	// collaborator (spec.md §1); this composition root wires the in-memory
	// Fake until a production Adapter implementation is supplied.
	adapter := clusteradapter.NewFake()

	filter := &zonefilter.Filter{Adapter: adapter, Oracle: oracle, Logger: logger, Unknown: unknownSats}

	rttModel := rtt.SpeedOfLightModel(opts.File.RTT.ProcessingOverheadMS)
	leadMargin := leadmargin.Model{
		Lookahead: opts.Lookahead,
		Ground: leadmargin.GroundStation{
			LatDeg:     opts.File.GroundStation.LatDeg,
			LonDeg:     opts.File.GroundStation.LonDeg,
			ElevationM: opts.File.GroundStation.ElevationM,
		},
		RTT: rttModel,
	}

	decider := &placement.Decider{
		Adapter:         adapter,
		Filter:          filter,
		Oracle:          oracle,
		Clock:           clock.RealClock{},
		Logger:          logger,
		DecisionTimeout: opts.PlacementTickTimeout,
	}

	controller := &handover.Controller{
		Adapter:       adapter,
		Filter:        filter,
		Oracle:        oracle,
		Clock:         clock.RealClock{},
		LeadMargin:    leadMargin,
		Logger:        logger,
		TickInterval:  opts.HandoverTickInterval,
		SuccessorMode: opts.SuccessorMode,
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	metricsServer := &http.Server{Addr: fmt.Sprintf(":%d", opts.MetricsPort), Handler: mux}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorw("metrics server exited", "error", err)
		}
	}()

	events, err := adapter.WatchPendingWorkloads(ctx, opts.Namespace)
	if err != nil {
		logger.Fatalw("failed to start pending-workload watch", "error", err)
	}

	go decider.Run(ctx, events)
	go controller.Run(ctx)

	logger.Infow("leosched started", "metrics_port", opts.MetricsPort, "namespace", opts.Namespace)
	<-ctx.Done()
	logger.Infow("shutting down")
	_ = metricsServer.Close()
}
