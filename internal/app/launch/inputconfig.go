// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"smlaunch-cli/internal/contract"
	"smlaunch-cli/pkg/jobfile"
)

// Input configuration documents written under input/config. Scripts that
// predate the SM_* environment variables read these files instead; both views
// describe the same launch.
const (
	hyperparametersDoc = "hyperparameters.json"
	resourceConfigDoc  = "resourceconfig.json"
	inputDataConfigDoc = "inputdataconfig.json"
)

type (
	resourceConfigDocBody struct {
		CurrentHost string   `json:"current_host"`
		Hosts       []string `json:"hosts"`
	}

	channelConfigDocBody struct {
		TrainingInputMode string `json:"training_input_mode"`
	}
)

// writeInputConfig writes the three launch configuration documents into the
// layout's input config dir. Hyperparameter values are serialized as strings,
// the same rendering the argument vector uses.
func writeInputConfig(layout contract.Layout, job *jobfile.Job, resources contract.Resources) error {
	params := make(map[string]string, len(job.Hyperparameters))
	for _, key := range job.Hyperparameters.SortedKeys() {
		value, err := job.Hyperparameters.StringValue(key)
		if err != nil {
			return err
		}
		params[key] = value
	}

	channels := make(map[string]channelConfigDocBody, len(job.Channels))
	for name := range job.Channels {
		channels[string(name)] = channelConfigDocBody{TrainingInputMode: "File"}
	}

	docs := map[string]any{
		hyperparametersDoc: params,
		resourceConfigDoc:  resourceConfigDocBody{CurrentHost: resources.CurrentHost, Hosts: resources.Hosts},
		inputDataConfigDoc: channels,
	}

	for name, body := range docs {
		data, err := json.MarshalIndent(body, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", name, err)
		}
		path := filepath.Join(layout.InputConfigDir(), name)
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}
