// SPDX-License-Identifier: MPL-2.0

package jobfile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidChannelName is the sentinel error wrapped by InvalidChannelNameError.
	ErrInvalidChannelName = errors.New("invalid channel name")

	// ErrInvalidChannelSource is the sentinel error wrapped by InvalidChannelSourceError.
	ErrInvalidChannelSource = errors.New("invalid channel source")

	// channelNameRegex validates channel names. Names are lowercase so the
	// uppercase transform into SM_CHANNEL_<NAME> is injective: two distinct
	// valid names can never collide on the same environment variable.
	channelNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// ObjectStoreScheme is the URI scheme marking a channel source as remote.
const ObjectStoreScheme = "s3://"

type (
	// ChannelName is a logical input-data role (e.g., "training", "validation").
	ChannelName string

	// ChannelSource is the physical data location bound to a channel: either a
	// local directory path or an object-store URI of the form
	// "s3://bucket/prefix".
	ChannelSource string

	// InvalidChannelNameError is returned when a ChannelName is empty or not a
	// valid lowercase identifier.
	InvalidChannelNameError struct {
		Value ChannelName
	}

	// InvalidChannelSourceError is returned when a ChannelSource is empty or a
	// malformed object-store URI.
	InvalidChannelSourceError struct {
		Value  ChannelSource
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidChannelNameError) Error() string {
	return fmt.Sprintf("invalid channel name %q (must match [a-z][a-z0-9_]*)", e.Value)
}

// Unwrap returns ErrInvalidChannelName for errors.Is compatibility.
func (e *InvalidChannelNameError) Unwrap() error { return ErrInvalidChannelName }

// Error implements the error interface.
func (e *InvalidChannelSourceError) Error() string {
	return fmt.Sprintf("invalid channel source %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidChannelSource for errors.Is compatibility.
func (e *InvalidChannelSourceError) Unwrap() error { return ErrInvalidChannelSource }

// Validate returns nil if the ChannelName is a valid lowercase identifier.
func (n ChannelName) Validate() error {
	if !channelNameRegex.MatchString(string(n)) {
		return &InvalidChannelNameError{Value: n}
	}
	return nil
}

// String returns the string representation of the ChannelName.
func (n ChannelName) String() string { return string(n) }

// EnvSuffix returns the uppercase transform used in SM_CHANNEL_<NAME>.
// For valid names the transform is injective.
func (n ChannelName) EnvSuffix() string {
	return strings.ToUpper(string(n))
}

// IsRemote returns true if the source is an object-store URI.
func (s ChannelSource) IsRemote() bool {
	return strings.HasPrefix(string(s), ObjectStoreScheme)
}

// String returns the string representation of the ChannelSource.
func (s ChannelSource) String() string { return string(s) }

// BucketPrefix splits an object-store URI into bucket and key prefix.
// The prefix may be empty ("s3://bucket" and "s3://bucket/" both yield "").
func (s ChannelSource) BucketPrefix() (bucket, prefix string, err error) {
	if !s.IsRemote() {
		return "", "", &InvalidChannelSourceError{Value: s, Reason: "not an object-store URI"}
	}
	rest := strings.TrimPrefix(string(s), ObjectStoreScheme)
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", &InvalidChannelSourceError{Value: s, Reason: "missing bucket name"}
	}
	return bucket, strings.TrimSuffix(prefix, "/"), nil
}

// Validate returns nil if the ChannelSource is non-empty and, when remote,
// carries a bucket name.
func (s ChannelSource) Validate() error {
	if strings.TrimSpace(string(s)) == "" {
		return &InvalidChannelSourceError{Value: s, Reason: "empty source"}
	}
	if s.IsRemote() {
		if _, _, err := s.BucketPrefix(); err != nil {
			return err
		}
	}
	return nil
}
