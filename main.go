package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

var (
	Version   = "unknown"
	BuildTime = "unknown"
)

func isPrivilegedUser(euid int) bool {
	return euid == 0
}

func main() {
	// Privilege escalation happens per-batch through pkexec; running the
	// whole panel as root would skip the graphical prompt entirely.
	if isPrivilegedUser(os.Geteuid()) {
		fmt.Fprintln(os.Stderr, "Do not run this program as root.")
		fmt.Fprintln(os.Stderr, "It will ask for permissions graphically when needed.")
		os.Exit(1)
	}

	configFlag := flag.String("config", "", "Configuration file (JSON, optional)")
	flag.Parse()

	config, err := LoadPanelConfig(*configFlag)
	if err != nil {
		initLogger("")
		logFatal("Config load failed: %v", err)
	}
	initLogger(config.LogFile)

	logInfo("Linux Performance Switcher v%s (built %s)", Version, BuildTime)

	if missing := checkDependencies(requiredCommands); len(missing) > 0 {
		logError("Missing required dependencies: %s", strings.Join(missing, ", "))
		logError("Please install them and try again")
		return
	}

	runner := execRunner{}
	gpu := NewGPUReader(runner)
	controller := NewController(gpu, NewBatchRunner(runner), config.GpuID)

	// One-shot discovery; the cached value is never refreshed
	if limit, ok := gpu.MaxPowerLimit(); ok {
		logInfoModule("gpu", "Max GPU power limit: %dW", limit)
	} else {
		logWarnModule("gpu", "Max GPU power limit not found")
	}

	cpuTempSource, err := findCPUTempSource(config.GetHwmonRoot())
	if err != nil {
		logWarnModule("cpu", "%v, CPU temperature will report N/A", err)
	}

	server := NewPanelServer(controller)

	refreshInterval := time.Duration(config.GetRefreshInterval()) * time.Millisecond
	sampler := NewSampler(gpu, cpuTempSource, config.GetGovernorPath(),
		config.GetCurFreqPath(), refreshInterval, server.PushSnapshot)

	listen := config.GetListen()
	go func() {
		if err := server.Start(listen); err != nil {
			logFatal("Panel server failed: %v", err)
		}
	}()

	sampler.Start()

	logInfo("started, pid is %d", os.Getpid())
	logInfo("Panel: http://%s | Refresh: %v", listen, refreshInterval)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	<-signalChan

	logInfo("Shutdown initiated")
	sampler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logWarn("Server shutdown: %v", err)
	}
}
