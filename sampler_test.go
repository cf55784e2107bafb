package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSamplerTick(t *testing.T) {
	dir := t.TempDir()
	tempFile := writeTestFile(t, dir, "temp1_input", "45500\n")
	governorFile := writeTestFile(t, dir, "scaling_governor", "performance\n")
	freqFile := writeTestFile(t, dir, "scaling_cur_freq", "2400000\n")

	gpu := NewGPUReader(&fakeRunner{
		handler: func(string, []string) (string, error) { return "62, 115.30\n", nil },
	})

	var delivered SensorSnapshot
	sampler := NewSampler(gpu, tempFile, governorFile, freqFile, time.Second,
		func(snapshot SensorSnapshot) { delivered = snapshot })

	snapshot := sampler.Tick()

	assert.Equal(t, "62°C", snapshot.GPUTemp)
	assert.Equal(t, "115.30W", snapshot.GPUPower)
	assert.Equal(t, "45.5°C", snapshot.CPUTemp)
	assert.Equal(t, "performance", snapshot.CPUGovernor)
	assert.Equal(t, "2400 MHz", snapshot.CPUFreq)
	assert.NotEmpty(t, snapshot.CPUUsage)
	assert.NotEmpty(t, snapshot.MemoryUsage)
	assert.Equal(t, snapshot, delivered, "the snapshot is delivered to the callback")
}

func TestSamplerFieldsFailIndependently(t *testing.T) {
	dir := t.TempDir()
	tempFile := writeTestFile(t, dir, "temp1_input", "45500\n")

	gpu := NewGPUReader(&fakeRunner{
		handler: func(string, []string) (string, error) {
			return "", errors.New("nvidia-smi has failed")
		},
	})

	sampler := NewSampler(gpu, tempFile,
		filepath.Join(dir, "missing_governor"),
		filepath.Join(dir, "missing_freq"),
		time.Second, nil)

	snapshot := sampler.Tick()

	assert.Equal(t, "N/A", snapshot.GPUTemp)
	assert.Equal(t, "N/A", snapshot.GPUPower)
	assert.Equal(t, "N/A", snapshot.CPUGovernor)
	assert.Equal(t, "N/A", snapshot.CPUFreq)
	assert.Equal(t, "45.5°C", snapshot.CPUTemp, "a failing field must not poison the others")
}

func TestSamplerStartStop(t *testing.T) {
	gpu := NewGPUReader(&fakeRunner{
		handler: func(string, []string) (string, error) { return "62, 115.30\n", nil },
	})

	ticks := make(chan SensorSnapshot, 16)
	sampler := NewSampler(gpu, "", "", "", 10*time.Millisecond,
		func(snapshot SensorSnapshot) { ticks <- snapshot })

	sampler.Start()
	for i := 0; i < 2; i++ {
		select {
		case <-ticks:
		case <-time.After(2 * time.Second):
			t.Fatal("sampler did not tick in time")
		}
	}

	sampler.Stop()
	sampler.Stop() // idempotent
}
