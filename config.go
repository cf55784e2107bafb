package main

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	defaultListenAddr      = "127.0.0.1:8266"
	defaultRefreshInterval = 2000
	defaultHwmonRoot       = "/sys/class/hwmon"
	defaultCpufreqRoot     = "/sys/devices/system/cpu"
)

type PanelConfig struct {
	Listen          string `json:"listen,omitempty"`
	RefreshInterval int    `json:"refresh_interval,omitempty"`
	LogFile         string `json:"log_file,omitempty"`
	HwmonRoot       string `json:"hwmon_root,omitempty"`
	CpufreqRoot     string `json:"cpufreq_root,omitempty"`
	GpuID           int    `json:"gpu_id,omitempty"`
}

// LoadPanelConfig reads a JSON config file. An empty path yields defaults,
// so the panel runs with no arguments and no file at all.
func LoadPanelConfig(configFile string) (*PanelConfig, error) {
	config := &PanelConfig{}
	if configFile == "" {
		return config, nil
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configFile)
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	return config, nil
}

func (config *PanelConfig) GetListen() string {
	if config.Listen != "" {
		return config.Listen
	}
	return defaultListenAddr
}

// GetRefreshInterval returns the sensor refresh interval in milliseconds.
func (config *PanelConfig) GetRefreshInterval() int {
	if config.RefreshInterval > 0 {
		return config.RefreshInterval
	}
	return defaultRefreshInterval
}

func (config *PanelConfig) GetHwmonRoot() string {
	if config.HwmonRoot != "" {
		return config.HwmonRoot
	}
	return defaultHwmonRoot
}

func (config *PanelConfig) GetGovernorPath() string {
	root := config.CpufreqRoot
	if root == "" {
		root = defaultCpufreqRoot
	}
	return root + "/cpu0/cpufreq/scaling_governor"
}

func (config *PanelConfig) GetCurFreqPath() string {
	root := config.CpufreqRoot
	if root == "" {
		root = defaultCpufreqRoot
	}
	return root + "/cpu0/cpufreq/scaling_cur_freq"
}
