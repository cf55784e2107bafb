package main

import (
	"fmt"
	"strings"
)

// Power-mizer values of the NVIDIA driver attribute GpuPowerMizerMode.
const (
	powerMizerMaxPerformance = 1
	powerMizerAdaptive       = 2
)

const (
	ModeAI        = "ai"
	ModeDesktop   = "desktop"
	ModePowerSave = "powersave"
)

var modeLabels = map[string]string{
	ModeAI:        "AI Performance Mode",
	ModeDesktop:   "Responsive Desktop Mode",
	ModePowerSave: "Power-Save Mode",
}

func setGovernorCommand(governor string) string {
	return "cpupower frequency-set -g " + governor
}

func setPersistenceCommand(enabled bool) string {
	state := 0
	if enabled {
		state = 1
	}
	return fmt.Sprintf("nvidia-smi -pm %d", state)
}

func setPowerLimitCommand(watts int) string {
	return fmt.Sprintf("nvidia-smi -pl %d", watts)
}

func setPowerMizerCommand(gpuID, mode int) string {
	return fmt.Sprintf("nvidia-settings -a '[gpu:%d]/GpuPowerMizerMode=%d'", gpuID, mode)
}

// aiModeCommands pins the CPU governor to performance, keeps the driver
// persistent so the power-limit change sticks, raises the limit to the
// board maximum and forces maximum-performance clocking.
func aiModeCommands(gpuID, maxPowerLimit int) []string {
	return []string{
		setGovernorCommand("performance"),
		setPersistenceCommand(true),
		setPowerLimitCommand(maxPowerLimit),
		setPowerMizerCommand(gpuID, powerMizerMaxPerformance),
	}
}

// desktopModeCommands keeps the CPU responsive but lets the GPU clock
// adaptively and drops persistence mode.
func desktopModeCommands(gpuID int) []string {
	return []string{
		setGovernorCommand("performance"),
		setPowerMizerCommand(gpuID, powerMizerAdaptive),
		setPersistenceCommand(false),
	}
}

func powersaveModeCommands(gpuID int) []string {
	return []string{
		setGovernorCommand("powersave"),
		setPersistenceCommand(false),
		setPowerMizerCommand(gpuID, powerMizerAdaptive),
	}
}

// joinBatch chains the ordered commands with && so a failing step aborts
// the remainder: the batch is all-or-nothing, never partially retried.
func joinBatch(commands []string) string {
	return strings.Join(commands, " && ")
}
