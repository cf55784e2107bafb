package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const sensorUnavailable = "N/A"

// cpuThermalDrivers are hwmon names that identify the CPU package sensor
// directly, without any plausibility filtering.
var cpuThermalDrivers = []string{"coretemp", "k10temp"}

// readSysFile reads a system file and returns its trimmed content
func readSysFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// readSysFileInt reads a system file and returns its content as integer
func readSysFileInt(path string) (int, error) {
	content, err := readSysFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(content)
}

// findCPUTempSource resolves the temp*_input file to read the CPU
// temperature from, using a two-stage search over the hwmon tree.
//
// Stage 1 walks each hwmon subdirectory and matches its name against the
// known CPU thermal drivers; the lexicographically first temp input beneath
// the first matching driver wins. Stage 2 falls back to any non-nvidia temp
// input whose current reading is plausible for a CPU (strictly between 10
// and 120 degrees). The result is resolved once and never re-probed.
func findCPUTempSource(hwmonRoot string) (string, error) {
	if _, err := os.Stat(hwmonRoot); err != nil {
		return "", fmt.Errorf("hwmon tree not found: %s", hwmonRoot)
	}

	entries, err := os.ReadDir(hwmonRoot)
	if err != nil {
		return "", fmt.Errorf("failed to read hwmon tree: %v", err)
	}

	// Stage 1: known CPU thermal drivers
	for _, entry := range entries {
		sensorDir := filepath.Join(hwmonRoot, entry.Name())

		name, err := readSysFile(filepath.Join(sensorDir, "name"))
		if err != nil {
			continue
		}

		isCPUDriver := false
		for _, driver := range cpuThermalDrivers {
			if name == driver {
				isCPUDriver = true
				break
			}
		}
		if !isCPUDriver {
			continue
		}

		inputs, err := filepath.Glob(filepath.Join(sensorDir, "temp*_input"))
		if err != nil || len(inputs) == 0 {
			continue
		}
		sort.Strings(inputs)
		logInfoModule("cpu", "Found CPU temperature sensor via driver name: %s", inputs[0])
		return inputs[0], nil
	}

	// Stage 2: any plausible non-nvidia temperature sensor. The hwmon
	// entries are symlinks into /sys/devices on a real system, so each one
	// is resolved before walking it.
	var found string
	for _, entry := range entries {
		sensorDir, err := filepath.EvalSymlinks(filepath.Join(hwmonRoot, entry.Name()))
		if err != nil {
			continue
		}

		_ = filepath.WalkDir(sensorDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if ok, _ := filepath.Match("temp*_input", filepath.Base(path)); !ok {
				return nil
			}

			if name, err := readSysFile(filepath.Join(filepath.Dir(path), "name")); err == nil {
				if strings.Contains(name, "nvidia") {
					return nil
				}
			}

			raw, err := readSysFileInt(path)
			if err != nil {
				return nil
			}
			temp := float64(raw) / 1000.0
			if temp > 10 && temp < 120 {
				found = path
				return fs.SkipAll
			}
			return nil
		})
		if found != "" {
			break
		}
	}

	if found == "" {
		return "", fmt.Errorf("no usable CPU temperature sensor under %s", hwmonRoot)
	}
	logInfoModule("cpu", "Found plausible CPU temperature sensor via fallback: %s", found)
	return found, nil
}

// readCPUTemp formats the discovered sensor's reading for display. An empty
// source or any read failure degrades to "N/A"; the next tick re-attempts.
func readCPUTemp(source string) string {
	if source == "" {
		return sensorUnavailable
	}
	raw, err := readSysFileInt(source)
	if err != nil {
		return sensorUnavailable
	}
	return fmt.Sprintf("%.1f°C", float64(raw)/1000.0)
}

// readCPUGovernor reads the active frequency-scaling governor name.
func readCPUGovernor(governorPath string) string {
	governor, err := readSysFile(governorPath)
	if err != nil {
		return sensorUnavailable
	}
	return governor
}
