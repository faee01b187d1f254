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

// Package options is the process configuration surface: CLI flags with
// environment-variable fallbacks for everything that can be a scalar,
// plus an optional TOML file for the handful of values better expressed
// as a small document (the ground station triple, the RTT model
// coefficient). Modeled on sigs.k8s.io/karpenter's pkg/operator/options.
package options

import (
	"flag"
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"

	"github.com/aws/leo-workload-scheduler/internal/scoring"
)

var validSuccessorModes = []scoring.Mode{scoring.ModeKrios, scoring.ModeClosest, scoring.ModeRandom}

// GroundStationConfig is the subset of the TOML config file the Lead
// Margin Model needs, independent of the leadmargin package so this
// package does not need to import it just to decode a file.
type GroundStationConfig struct {
	LatDeg     float64 `toml:"lat_deg"`
	LonDeg     float64 `toml:"lon_deg"`
	ElevationM float64 `toml:"elevation_m"`
}

// RTTConfig parametrizes the default speed-of-light RTT oracle
// (internal/rtt.SpeedOfLightModel).
type RTTConfig struct {
	ProcessingOverheadMS float64 `toml:"processing_overhead_ms"`
}

// FileConfig is the optional TOML document read from -config-file
// (spec.md §1.3): values here are not realistically expressible as a
// single flag/env scalar, unlike everything in Options.
type FileConfig struct {
	GroundStation GroundStationConfig `toml:"ground_station"`
	RTT           RTTConfig           `toml:"rtt"`
}

// Options holds every scalar configuration value, sourced from a CLI
// flag with an environment-variable-backed default (spec.md §1.3).
type Options struct {
	MetricsPort     int
	HealthProbePort int
	DevLogging      bool

	TLEFile    string
	Namespace  string
	ConfigFile string

	Lookahead            bool
	successorModeRaw     string
	SuccessorMode        scoring.Mode
	PlacementTickTimeout time.Duration
	HandoverTickInterval time.Duration

	File FileConfig
}

// AddFlags registers every scalar flag on fs, each falling back to its
// environment variable when unset on the command line.
func (o *Options) AddFlags(fs *flag.FlagSet) {
	fs.IntVar(&o.MetricsPort, "metrics-port", withDefaultInt("METRICS_PORT", 8080),
		"The port the Prometheus metrics endpoint binds to")
	fs.IntVar(&o.HealthProbePort, "health-probe-port", withDefaultInt("HEALTH_PROBE_PORT", 8081),
		"Parsed but not bound by leosched: /healthz is served on the metrics port")
	fs.BoolVar(&o.DevLogging, "dev-logging", withDefaultBool("DEV_LOGGING", false),
		"Use the human-readable development logging console encoder instead of JSON")
	fs.StringVar(&o.TLEFile, "tle-file", withDefaultString("TLE_FILE", ""),
		"Path to a TLE text file loaded into the ephemeris catalog at startup")
	fs.StringVar(&o.Namespace, "namespace", withDefaultString("NAMESPACE", "default"),
		"Namespace watched for pending workloads")
	fs.StringVar(&o.ConfigFile, "config-file", withDefaultString("CONFIG_FILE", ""),
		"Path to an optional TOML file carrying the ground station position and RTT model coefficient")
	fs.BoolVar(&o.Lookahead, "lookahead", withDefaultBool("LOOKAHEAD", true),
		"Enable the lookahead lead-margin model; disabling it makes every handover wake at its predicted departure instant with zero lead time")
	fs.StringVar(&o.successorModeRaw, "successor-mode", withDefaultString("SUCCESSOR_MODE", string(scoring.ModeKrios)),
		"Successor selection policy: one of 'krios', 'closest', 'random'")
	fs.DurationVar(&o.PlacementTickTimeout, "placement-decision-timeout", withDefaultDuration("PLACEMENT_DECISION_TIMEOUT", 10*time.Second),
		"Per-workload timeout for one placement decision")
	fs.DurationVar(&o.HandoverTickInterval, "handover-tick-interval", withDefaultDuration("HANDOVER_TICK_INTERVAL", 1*time.Second),
		"Cadence of the handover controller's tick loop (spec default: 1s)")
}

// Parse parses args into fs, validates the resulting flag values and, if
// ConfigFile is set, decodes that file into File.
func (o *Options) Parse(fs *flag.FlagSet, args ...string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	if !lo.Contains(validSuccessorModes, scoring.Mode(o.successorModeRaw)) {
		return fmt.Errorf("invalid -successor-mode %q", o.successorModeRaw)
	}
	o.SuccessorMode = scoring.Mode(o.successorModeRaw)

	if o.ConfigFile != "" {
		f, err := os.ReadFile(o.ConfigFile)
		if err != nil {
			return fmt.Errorf("reading config file %q: %w", o.ConfigFile, err)
		}
		if err := toml.Unmarshal(f, &o.File); err != nil {
			return fmt.Errorf("decoding config file %q: %w", o.ConfigFile, err)
		}
	}
	return nil
}
