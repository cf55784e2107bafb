package main

import "os/exec"

// requiredCommands are the external tools the mode batches and sensor
// queries shell out to. All of them must be on PATH before the panel starts.
var requiredCommands = []string{"pkexec", "nvidia-smi", "nvidia-settings", "cpupower"}

// checkDependencies returns the names of required commands that cannot be
// resolved on PATH. A non-empty result blocks startup.
func checkDependencies(commands []string) []string {
	var missing []string
	for _, name := range commands {
		if _, err := exec.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}
