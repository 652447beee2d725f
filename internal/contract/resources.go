// SPDX-License-Identifier: MPL-2.0

package contract

import (
	"os"
	"regexp"
	"runtime"
)

// DefaultHost is the conventional name of the single training host. The local
// launcher always runs a one-host cluster.
const DefaultHost = "algo-1"

var nvidiaDeviceRegex = regexp.MustCompile(`^nvidia[0-9]+$`)

// Resources describes the host resources advertised to the training script.
type Resources struct {
	// CurrentHost is this host's name within the training cluster.
	CurrentHost string
	// Hosts lists all hosts in the cluster.
	Hosts []string
	// NumCPUs is the number of logical CPUs available to the script.
	NumCPUs int
	// NumGPUs is the number of GPUs available to the script.
	NumGPUs int
}

// DetectResources inspects the local host. GPU detection counts nvidia device
// nodes and reports zero on hosts without them; the contract only promises the
// count is advertised, not that a GPU exists.
func DetectResources() Resources {
	return Resources{
		CurrentHost: DefaultHost,
		Hosts:       []string{DefaultHost},
		NumCPUs:     runtime.NumCPU(),
		NumGPUs:     countNvidiaDevices("/dev"),
	}
}

func countNvidiaDevices(devDir string) int {
	entries, err := os.ReadDir(devDir)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if nvidiaDeviceRegex.MatchString(e.Name()) {
			count++
		}
	}
	return count
}
