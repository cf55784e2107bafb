package main

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Host readings round out the sensor grid next to the GPU telemetry.
// They follow the same contract as the other reads: independent, no retry,
// any failure degrades the one field to "N/A".

func readCPUUsage() string {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil || len(cpuPercent) == 0 {
		return sensorUnavailable
	}
	return fmt.Sprintf("%.0f%%", cpuPercent[0])
}

func readCPUFrequency(curFreqPath string) string {
	raw, err := readSysFileInt(curFreqPath)
	if err != nil {
		return sensorUnavailable
	}
	// scaling_cur_freq is in kHz
	return fmt.Sprintf("%.0f MHz", float64(raw)/1000.0)
}

func readMemoryUsage() string {
	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return sensorUnavailable
	}
	return fmt.Sprintf("%.0f%%", memInfo.UsedPercent)
}
