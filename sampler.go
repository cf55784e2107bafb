package main

import (
	"sync"
	"time"
)

// SensorSnapshot is one tick's worth of display strings. It is recomputed
// on every tick and pushed to the panel; nothing is kept between ticks.
type SensorSnapshot struct {
	GPUTemp     string `json:"gpu_temp"`
	GPUPower    string `json:"gpu_power"`
	CPUTemp     string `json:"cpu_temp"`
	CPUGovernor string `json:"cpu_governor"`
	CPUUsage    string `json:"cpu_usage"`
	CPUFreq     string `json:"cpu_freq"`
	MemoryUsage string `json:"memory_usage"`
}

// Sampler performs the periodic sensor reads on a fixed cadence. Each read
// is independently fault tolerant; a failed field reports "N/A" and the
// next tick re-attempts it naturally, so there is no retry logic.
type Sampler struct {
	gpu           *GPUReader
	cpuTempSource string
	governorPath  string
	curFreqPath   string
	interval      time.Duration
	onSample      func(SensorSnapshot)

	stop     chan struct{}
	stopOnce sync.Once
}

func NewSampler(gpu *GPUReader, cpuTempSource, governorPath, curFreqPath string,
	interval time.Duration, onSample func(SensorSnapshot)) *Sampler {
	return &Sampler{
		gpu:           gpu,
		cpuTempSource: cpuTempSource,
		governorPath:  governorPath,
		curFreqPath:   curFreqPath,
		interval:      interval,
		onSample:      onSample,
		stop:          make(chan struct{}),
	}
}

// Tick performs a single round of sensor reads and delivers the snapshot.
// Exposed separately from the timer so a single tick can be driven
// deterministically.
func (s *Sampler) Tick() SensorSnapshot {
	gpuTemp, gpuPower := s.gpu.Stats()
	snapshot := SensorSnapshot{
		GPUTemp:     gpuTemp,
		GPUPower:    gpuPower,
		CPUTemp:     readCPUTemp(s.cpuTempSource),
		CPUGovernor: readCPUGovernor(s.governorPath),
		CPUUsage:    readCPUUsage(),
		CPUFreq:     readCPUFrequency(s.curFreqPath),
		MemoryUsage: readMemoryUsage(),
	}
	if s.onSample != nil {
		s.onSample(snapshot)
	}
	return snapshot
}

// Start runs the repeating timer until Stop. The first reading happens
// immediately so the panel never shows an empty grid.
func (s *Sampler) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.Tick()
		for {
			select {
			case <-ticker.C:
				s.Tick()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop cancels the repeating timer. The process only ever exercises this
// on shutdown.
func (s *Sampler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}
