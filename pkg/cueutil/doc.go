// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Both the launcher config and job definition files are CUE documents validated
// against embedded schemas. This package consolidates the 3-step parsing flow
// used by those packages:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed smjob_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[Job](
//	    schemaBytes,
//	    userFileBytes,
//	    "#Job",
//	    cueutil.WithFilename("smjob.cue"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes the CUE path to the offending field
//	}
//	return result.Value, nil
package cueutil
