package main

import (
	"fmt"
	"sync"
)

// Status severity levels, mirrored by the panel's color coding.
const (
	StatusInfo    = "info"
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

type Status struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Controller owns the process-lifetime cached values (the GPU reader with
// its max power limit, the discovered CPU temp source lives in the sampler)
// and serializes mode changes: only one privileged batch can be in flight.
type Controller struct {
	gpu   *GPUReader
	batch *BatchRunner
	gpuID int

	mu sync.Mutex // serializes privileged batches, one in flight at a time

	stateMu  sync.RWMutex
	snapshot SensorSnapshot
	status   Status
}

func NewController(gpu *GPUReader, batch *BatchRunner, gpuID int) *Controller {
	return &Controller{
		gpu:    gpu,
		batch:  batch,
		gpuID:  gpuID,
		status: Status{Level: StatusInfo, Text: "Select a mode to begin"},
	}
}

// MaxPowerLimitText renders the banner above the sensor grid. It reads the
// cached discovery only; the single probe happens at startup.
func (c *Controller) MaxPowerLimitText() string {
	limit, ok := c.gpu.CachedMaxPowerLimit()
	if !ok {
		return "Max GPU Power: Not Found"
	}
	return fmt.Sprintf("Max GPU Power Limit: %dW", limit)
}

// SetMode assembles and executes the batch for the named profile. On any
// failure the captured error text becomes the status; nothing is rolled
// back and the user retries by pressing the button again.
func (c *Controller) SetMode(name string) Status {
	label, known := modeLabels[name]
	if !known {
		return c.setStatus(StatusError, fmt.Sprintf("Unknown mode: %s", name))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var commands []string
	switch name {
	case ModeAI:
		limit, ok := c.gpu.CachedMaxPowerLimit()
		if !ok {
			return c.setStatus(StatusError, "Error: Max Power Limit not found.")
		}
		commands = aiModeCommands(c.gpuID, limit)
	case ModeDesktop:
		commands = desktopModeCommands(c.gpuID)
	case ModePowerSave:
		commands = powersaveModeCommands(c.gpuID)
	}

	logInfoModule("mode", "Setting %s...", label)
	if err := c.batch.RunBlock(joinBatch(commands)); err != nil {
		logErrorModule("mode", "%v", err)
		return c.setStatus(StatusError, fmt.Sprintf("Error: %v", err))
	}

	logInfoModule("mode", "%s is ON", label)
	return c.setStatus(StatusSuccess, fmt.Sprintf("✅ %s is ON.", label))
}

func (c *Controller) setStatus(level, text string) Status {
	status := Status{Level: level, Text: text}
	c.stateMu.Lock()
	c.status = status
	c.stateMu.Unlock()
	return status
}

func (c *Controller) Status() Status {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.status
}

func (c *Controller) UpdateSnapshot(snapshot SensorSnapshot) {
	c.stateMu.Lock()
	c.snapshot = snapshot
	c.stateMu.Unlock()
}

func (c *Controller) Snapshot() SensorSnapshot {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.snapshot
}
