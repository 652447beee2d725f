// SPDX-License-Identifier: MPL-2.0

// Package jobfile defines the training job definition file format.
//
// A job definition ("smjob.cue") is a CUE document that declares everything a
// launch needs: the entry-point script, the source directory to install, the
// hyperparameter mapping, the named data channels, environment configuration,
// and an optional framework template. Files are validated against an embedded
// CUE schema and then against Go-level rules the schema cannot express
// (channel-name injectivity, hyperparameter flag collisions).
package jobfile
