// SPDX-License-Identifier: MPL-2.0

package contract

import (
	"encoding/json"
	"fmt"
)

// trainingEnv is the aggregated launch description serialized into
// SM_TRAINING_ENV. Scripts that prefer one JSON document over individual
// variables read this instead.
type trainingEnv struct {
	JobName          string            `json:"job_name"`
	CurrentHost      string            `json:"current_host"`
	Hosts            []string          `json:"hosts"`
	NumCPUs          int               `json:"num_cpus"`
	NumGPUs          int               `json:"num_gpus"`
	ModuleName       string            `json:"module_name"`
	UserEntryPoint   string            `json:"user_entry_point"`
	ModuleDir        string            `json:"module_dir"`
	ModelDir         string            `json:"model_dir"`
	InputDir         string            `json:"input_dir"`
	InputConfigDir   string            `json:"input_config_dir"`
	OutputDir        string            `json:"output_dir"`
	OutputDataDir    string            `json:"output_data_dir"`
	ChannelInputDirs map[string]string `json:"channel_input_dirs"`
	Hyperparameters  map[string]string `json:"hyperparameters"`
	FrameworkName    string            `json:"framework_name"`
	FrameworkVersion string            `json:"framework_version"`
}

func marshalTrainingEnv(in EnvInputs) (string, error) {
	channelDirs := make(map[string]string, len(in.ChannelDirs))
	for name, dir := range in.ChannelDirs {
		channelDirs[string(name)] = dir
	}

	params := make(map[string]string, len(in.Job.Hyperparameters))
	for _, key := range in.Job.Hyperparameters.SortedKeys() {
		value, err := in.Job.Hyperparameters.StringValue(key)
		if err != nil {
			return "", err
		}
		params[key] = value
	}

	doc := trainingEnv{
		JobName:          in.JobName,
		CurrentHost:      in.Resources.CurrentHost,
		Hosts:            emptyAsList(in.Resources.Hosts),
		NumCPUs:          in.Resources.NumCPUs,
		NumGPUs:          in.Resources.NumGPUs,
		ModuleName:       in.Job.ModuleName(),
		UserEntryPoint:   in.Job.EntryPoint,
		ModuleDir:        in.Layout.CodeDir(),
		ModelDir:         in.Layout.ModelDir(),
		InputDir:         in.Layout.InputDir(),
		InputConfigDir:   in.Layout.InputConfigDir(),
		OutputDir:        in.Layout.OutputDir(),
		OutputDataDir:    in.Layout.OutputDataDir(),
		ChannelInputDirs: channelDirs,
		Hyperparameters:  params,
		FrameworkName:    in.Template.Framework,
		FrameworkVersion: in.Template.FrameworkVersion,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize training environment: %w", err)
	}
	return string(data), nil
}
