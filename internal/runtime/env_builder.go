// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"maps"
	"os"
	"path/filepath"
	"strings"
)

type (
	// EnvBuilder builds the child environment for entry-point execution.
	// The default implementation applies a 5-level precedence hierarchy
	// (higher number wins):
	//
	//  1. Host environment (filtered of stale SM_* values)
	//  2. Derived contract variables (SM_CHANNEL_*, SM_HPS, SM_MODEL_DIR, ...)
	//  3. Jobfile env.files (in order; later files override earlier ones)
	//  4. Jobfile env.vars
	//  5. --env-file then --env-var flags - HIGHEST priority
	//
	// The interface exists so runtimes can be tested with fixed environments.
	EnvBuilder interface {
		Build(ctx *ExecutionContext) (map[string]string, error)
	}

	// DefaultEnvBuilder implements the standard precedence.
	DefaultEnvBuilder struct {
		// Environ returns the host environment as "KEY=VALUE" strings.
		// When nil, os.Environ() is used.
		Environ func() []string
	}

	// MockEnvBuilder returns a fixed environment map for tests.
	MockEnvBuilder struct {
		Env map[string]string
		Err error
	}
)

// NewDefaultEnvBuilder creates a DefaultEnvBuilder reading the real host
// environment.
func NewDefaultEnvBuilder() *DefaultEnvBuilder {
	return &DefaultEnvBuilder{}
}

// Build constructs the environment map following the documented precedence.
func (b *DefaultEnvBuilder) Build(ctx *ExecutionContext) (map[string]string, error) {
	environ := b.Environ
	if environ == nil {
		environ = os.Environ
	}

	// 1. Host environment. Contract variables from an enclosing launch are
	// dropped so a nested invocation cannot inherit stale channel paths.
	env := make(map[string]string)
	for _, e := range FilterContractEnvVars(environ()) {
		key, value, found := strings.Cut(e, "=")
		if !found {
			continue
		}
		env[key] = value
	}

	// 2. Derived contract variables.
	maps.Copy(env, ctx.ContractEnv)

	// 3. Jobfile env.files, resolved against the job file directory.
	basePath := ""
	if ctx.Job != nil {
		basePath = filepath.Dir(ctx.Job.FilePath)
		for _, path := range ctx.Job.Env.GetFiles() {
			if err := LoadEnvFile(env, string(path), basePath); err != nil {
				return nil, err
			}
		}
		// 4. Jobfile env.vars.
		maps.Copy(env, ctx.Job.Env.GetVars())
	}

	// 5a. --env-file flag files, relative to the invocation directory.
	for _, path := range ctx.RuntimeEnvFiles {
		if err := LoadEnvFileFromCwd(env, path, ctx.Cwd); err != nil {
			return nil, err
		}
	}

	// 5b. --env-var flag values (highest priority).
	maps.Copy(env, ctx.RuntimeEnvVars)

	return env, nil
}

// Build returns the mock environment or error.
func (m *MockEnvBuilder) Build(_ *ExecutionContext) (map[string]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make(map[string]string, len(m.Env))
	maps.Copy(result, m.Env)
	return result, nil
}

// FilterContractEnvVars drops SM_* variables from an environment slice so a
// launch never inherits contract values from an enclosing launch.
func FilterContractEnvVars(environ []string) []string {
	result := make([]string, 0, len(environ))
	for _, e := range environ {
		name, _, found := strings.Cut(e, "=")
		if found && strings.HasPrefix(name, "SM_") {
			continue
		}
		result = append(result, e)
	}
	return result
}
