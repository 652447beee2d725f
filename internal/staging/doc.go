// SPDX-License-Identifier: MPL-2.0

// Package staging materializes named data channels into the execution
// environment and retains artifacts after a launch.
//
// Each channel binds a logical input role (e.g., "training") to a physical
// data location: a local directory, which is copied, or an object-store URI
// ("s3://bucket/prefix"), which is downloaded. Data lands under the layout's
// fixed input-data root so the launched script finds it at the path advertised
// by SM_CHANNEL_<NAME>. After a successful run the model directory can be
// uploaded back to the object store.
package staging
