// SPDX-License-Identifier: MPL-2.0

package jobfile

import (
	_ "embed"
	"fmt"
	"os"

	"smlaunch-cli/pkg/cueutil"
)

// DefaultFileName is the conventional job file name.
const DefaultFileName = "smjob.cue"

//go:embed smjob_schema.cue
var jobSchema string

// Parse reads and parses a job definition from the given path.
func Parse(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses job definition content from bytes.
// Uses cueutil.ParseAndDecodeString for the 3-step CUE parsing flow:
// compile schema, compile user data, validate and decode.
func ParseBytes(data []byte, path string) (*Job, error) {
	result, err := cueutil.ParseAndDecodeString[Job](
		jobSchema,
		data,
		"#Job",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	job := result.Value
	job.FilePath = path

	if errs := job.Validate(); len(errs) > 0 {
		return nil, errs
	}

	return job, nil
}
