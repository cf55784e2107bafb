package main

import (
	"regexp"
	"strconv"
	"strings"
)

var maxPowerLimitPattern = regexp.MustCompile(`Max Power Limit\s+:\s+([\d.]+) W`)

// GPUReader queries nvidia-smi for telemetry and the board power limit.
// The max power limit is cached after the first successful query and never
// refreshed for the lifetime of the process.
type GPUReader struct {
	runner CommandRunner

	maxPowerLimit int
	limitKnown    bool
}

func NewGPUReader(runner CommandRunner) *GPUReader {
	return &GPUReader{runner: runner}
}

// MaxPowerLimit returns the GPU's maximum supported power limit in watts.
// The second result is false while the limit is still unknown; a failed
// query is not cached, so a later call may still discover it.
func (g *GPUReader) MaxPowerLimit() (int, bool) {
	if g.limitKnown {
		return g.maxPowerLimit, true
	}

	out, err := g.runner.Run("nvidia-smi", "-q", "-d", "POWER")
	if err != nil {
		return 0, false
	}

	limit, ok := parseMaxPowerLimit(out)
	if !ok {
		return 0, false
	}

	g.maxPowerLimit = limit
	g.limitKnown = true
	return limit, true
}

// CachedMaxPowerLimit returns the previously discovered limit without
// querying the GPU. The mode setter uses this so an undiscovered limit
// refuses AI mode up front instead of spawning another query.
func (g *GPUReader) CachedMaxPowerLimit() (int, bool) {
	return g.maxPowerLimit, g.limitKnown
}

// parseMaxPowerLimit extracts the first "Max Power Limit : <n> W" value
// from a nvidia-smi power report, truncated to whole watts.
func parseMaxPowerLimit(report string) (int, bool) {
	match := maxPowerLimitPattern.FindStringSubmatch(report)
	if match == nil {
		return 0, false
	}
	watts, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return int(watts), true
}

// Stats returns the current GPU temperature and power draw as display
// strings. Both degrade to "N/A" together on any query or parse failure.
func (g *GPUReader) Stats() (string, string) {
	out, err := g.runner.Run("nvidia-smi",
		"--query-gpu=temperature.gpu,power.draw",
		"--format=csv,noheader,nounits")
	if err != nil {
		return sensorUnavailable, sensorUnavailable
	}
	return parseGPUStats(out)
}

// parseGPUStats parses the "temp, power" CSV line, e.g. "62, 115.30".
// The tool's output schema is not assumed stable: anything other than
// exactly two non-empty fields falls back to "N/A".
func parseGPUStats(out string) (string, string) {
	fields := strings.Split(strings.TrimSpace(out), ",")
	if len(fields) != 2 {
		return sensorUnavailable, sensorUnavailable
	}

	temp := strings.TrimSpace(fields[0])
	power := strings.TrimSpace(fields[1])
	if temp == "" || power == "" {
		return sensorUnavailable, sensorUnavailable
	}

	return temp + "°C", power + "W"
}
