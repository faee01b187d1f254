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

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aws/leo-workload-scheduler/internal/ephemeris"
)

// loadTLEFile parses a standard three-line-per-entry TLE text file
// (optional name line, line 1, line 2) into a satID->TLE map. TLE text
// parsing is treated as an external concern by the core (spec.md §1);
// this lives in cmd as composition-root glue, not in internal/ephemeris.
func loadTLEFile(path string) (map[int]ephemeris.TLE, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening TLE file %q: %w", path, err)
	}
	defer f.Close()

	entries := make(map[int]ephemeris.TLE)
	var pending string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		switch line[0] {
		case '1':
			pending = line
		case '2':
			if pending == "" {
				continue
			}
			satID, err := satIDFromLine1(pending)
			if err != nil {
				pending = ""
				continue
			}
			entries[satID] = ephemeris.TLE{Line1: pending, Line2: line}
			pending = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading TLE file %q: %w", path, err)
	}
	return entries, nil
}

// satIDFromLine1 extracts the NORAD catalog number from columns 3-7 of a
// TLE's first line.
func satIDFromLine1(line1 string) (int, error) {
	if len(line1) < 7 {
		return 0, fmt.Errorf("line1 too short: %q", line1)
	}
	return strconv.Atoi(strings.TrimSpace(line1[2:7]))
}
