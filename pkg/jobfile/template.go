// SPDX-License-Identifier: MPL-2.0

package jobfile

const (
	// DefaultFramework is the framework name assumed when a job declares none.
	DefaultFramework = "pytorch"
	// DefaultFrameworkVersion is the framework version assumed when a job declares none.
	DefaultFrameworkVersion = "1.1.0"
	// DefaultInterpreter is the interpreter used for .py entry points when a
	// job declares none.
	DefaultInterpreter = "python3"
)

// Template fixes the three framework attributes of a launch. A job that sets
// no template behaves exactly like the base job type with the default values;
// a job may pin any subset to different values. This is a plain value object:
// there is no framework-specific behavior behind it, only defaults.
type Template struct {
	// Framework is the framework name recorded in the training environment
	// (e.g., "pytorch", "tensorflow").
	Framework string `json:"framework,omitempty"`

	// FrameworkVersion is the framework version recorded in the training
	// environment.
	FrameworkVersion string `json:"framework_version,omitempty"`

	// Interpreter is the program used to run the entry point as a module.
	Interpreter string `json:"interpreter,omitempty"`
}

// WithDefaults returns a copy with unset fields filled from the package
// defaults. Safe to call on a nil receiver.
func (t *Template) WithDefaults() *Template {
	out := Template{
		Framework:        DefaultFramework,
		FrameworkVersion: DefaultFrameworkVersion,
		Interpreter:      DefaultInterpreter,
	}
	if t == nil {
		return &out
	}
	if t.Framework != "" {
		out.Framework = t.Framework
	}
	if t.FrameworkVersion != "" {
		out.FrameworkVersion = t.FrameworkVersion
	}
	if t.Interpreter != "" {
		out.Interpreter = t.Interpreter
	}
	return &out
}
