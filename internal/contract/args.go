// SPDX-License-Identifier: MPL-2.0

package contract

import (
	"smlaunch-cli/pkg/jobfile"
)

// DeriveArgs converts the hyperparameter mapping into the entry point's full
// argument vector. Each entry {key: value} becomes two tokens: "--<key>" and
// the value serialized as a string. Keys keep their underscores verbatim and
// are emitted in sorted order, so the derived command line is identical for
// identical mappings. An empty mapping derives an empty vector.
//
// A value that cannot be serialized as a scalar fails here, before any
// process is started.
func DeriveArgs(params jobfile.Hyperparameters) ([]string, error) {
	args := make([]string, 0, len(params)*2)
	for _, key := range params.SortedKeys() {
		value, err := params.StringValue(key)
		if err != nil {
			return nil, err
		}
		args = append(args, "--"+key, value)
	}
	return args, nil
}
