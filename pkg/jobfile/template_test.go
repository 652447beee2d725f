// SPDX-License-Identifier: MPL-2.0

package jobfile

import "testing"

func TestTemplateWithDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   *Template
		want Template
	}{
		{
			name: "nil template yields all defaults",
			in:   nil,
			want: Template{Framework: DefaultFramework, FrameworkVersion: DefaultFrameworkVersion, Interpreter: DefaultInterpreter},
		},
		{
			name: "partial template keeps overrides",
			in:   &Template{Framework: "tensorflow", FrameworkVersion: "1.12"},
			want: Template{Framework: "tensorflow", FrameworkVersion: "1.12", Interpreter: DefaultInterpreter},
		},
		{
			name: "full template unchanged",
			in:   &Template{Framework: "mxnet", FrameworkVersion: "1.3", Interpreter: "python3.6"},
			want: Template{Framework: "mxnet", FrameworkVersion: "1.3", Interpreter: "python3.6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.in.WithDefaults()
			if *got != tt.want {
				t.Errorf("WithDefaults() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestJobGetTemplateNeverNil(t *testing.T) {
	t.Parallel()

	j := &Job{}
	if j.GetTemplate() == nil {
		t.Fatal("GetTemplate() returned nil")
	}
}
