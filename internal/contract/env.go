// SPDX-License-Identifier: MPL-2.0

package contract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"smlaunch-cli/pkg/jobfile"
)

// Environment variable names fixed by the script-mode contract.
const (
	EnvChannelPrefix = "SM_CHANNEL_"
	EnvHPPrefix      = "SM_HP_"

	EnvChannels       = "SM_CHANNELS"
	EnvModelDir       = "SM_MODEL_DIR"
	EnvInputDir       = "SM_INPUT_DIR"
	EnvInputConfigDir = "SM_INPUT_CONFIG_DIR"
	EnvOutputDir      = "SM_OUTPUT_DIR"
	EnvOutputDataDir  = "SM_OUTPUT_DATA_DIR"
	EnvModuleDir      = "SM_MODULE_DIR"
	EnvModuleName     = "SM_MODULE_NAME"
	EnvUserEntryPoint = "SM_USER_ENTRY_POINT"
	EnvUserArgs       = "SM_USER_ARGS"
	EnvHPs            = "SM_HPS"
	EnvCurrentHost    = "SM_CURRENT_HOST"
	EnvHosts          = "SM_HOSTS"
	EnvNumCPUs        = "SM_NUM_CPUS"
	EnvNumGPUs        = "SM_NUM_GPUS"
	EnvLogLevel       = "SM_LOG_LEVEL"
	EnvTrainingEnv    = "SM_TRAINING_ENV"
	EnvFrameworkName  = "SM_FRAMEWORK_NAME"
	EnvFrameworkVer   = "SM_FRAMEWORK_VERSION"
	EnvJobName        = "SM_TRAINING_JOB_NAME"
)

// EnvInputs collects everything the environment derivation consumes. All
// fields are read-only during derivation; DeriveEnv is a pure function of
// this struct.
type EnvInputs struct {
	Layout   Layout
	Job      *jobfile.Job
	JobName  string
	Template *jobfile.Template

	// ChannelDirs maps each channel name to its materialized local path.
	ChannelDirs map[jobfile.ChannelName]string

	// UserArgs is the derived argument vector (from DeriveArgs).
	UserArgs []string

	Resources Resources
}

// DeriveEnv produces the contract environment for one launch. The result is
// deterministic: map construction is unordered, but every serialized list is
// sorted and json.Marshal orders object keys, so identical inputs yield an
// identical set of variable bindings.
func DeriveEnv(in EnvInputs) (map[string]string, error) {
	env := make(map[string]string)

	// Channel variables: SM_CHANNEL_<NAME> -> materialized path.
	names := make([]string, 0, len(in.ChannelDirs))
	for name, dir := range in.ChannelDirs {
		env[EnvChannelPrefix+name.EnvSuffix()] = dir
		names = append(names, string(name))
	}
	sort.Strings(names)

	channelList, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize channel list: %w", err)
	}
	env[EnvChannels] = string(channelList)

	// Layout variables.
	env[EnvInputDir] = in.Layout.InputDir()
	env[EnvInputConfigDir] = in.Layout.InputConfigDir()
	env[EnvModelDir] = in.Layout.ModelDir()
	env[EnvOutputDir] = in.Layout.OutputDir()
	env[EnvOutputDataDir] = in.Layout.OutputDataDir()
	env[EnvModuleDir] = in.Layout.CodeDir()

	// Entry point and arguments.
	env[EnvModuleName] = in.Job.ModuleName()
	env[EnvUserEntryPoint] = in.Job.EntryPoint
	userArgs, err := json.Marshal(emptyAsList(in.UserArgs))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize user args: %w", err)
	}
	env[EnvUserArgs] = string(userArgs)

	// Hyperparameters: one aggregated JSON document plus one variable per key.
	if err := deriveHyperparameterEnv(env, in.Job.Hyperparameters); err != nil {
		return nil, err
	}

	// Host resources.
	hosts, err := json.Marshal(emptyAsList(in.Resources.Hosts))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize host list: %w", err)
	}
	env[EnvHosts] = string(hosts)
	env[EnvCurrentHost] = in.Resources.CurrentHost
	env[EnvNumCPUs] = strconv.Itoa(in.Resources.NumCPUs)
	env[EnvNumGPUs] = strconv.Itoa(in.Resources.NumGPUs)
	env[EnvLogLevel] = "20"

	// Framework template.
	env[EnvFrameworkName] = in.Template.Framework
	env[EnvFrameworkVer] = in.Template.FrameworkVersion
	env[EnvJobName] = in.JobName

	// Aggregated training environment document.
	trainingEnv, err := marshalTrainingEnv(in)
	if err != nil {
		return nil, err
	}
	env[EnvTrainingEnv] = trainingEnv

	return env, nil
}

// deriveHyperparameterEnv sets SM_HPS plus one SM_HP_<KEY> per entry. Keys are
// uppercased with '-' and '.' folded to '_' for the per-key variables; the
// exact keys survive in SM_HPS.
func deriveHyperparameterEnv(env map[string]string, params jobfile.Hyperparameters) error {
	serialized := make(map[string]string, len(params))
	for _, key := range params.SortedKeys() {
		value, err := params.StringValue(key)
		if err != nil {
			return err
		}
		serialized[key] = value
		env[EnvHPPrefix+jobfile.EnvSuffixForKey(key)] = value
	}

	doc, err := json.Marshal(serialized)
	if err != nil {
		return fmt.Errorf("failed to serialize hyperparameters: %w", err)
	}
	env[EnvHPs] = string(doc)
	return nil
}

// emptyAsList keeps JSON output as "[]" rather than "null" for nil slices.
func emptyAsList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
