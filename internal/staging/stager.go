// SPDX-License-Identifier: MPL-2.0

package staging

import (
	"context"
	"fmt"
	"os"
	"sort"

	"smlaunch-cli/internal/contract"
	"smlaunch-cli/pkg/jobfile"
)

type (
	// ObjectStore abstracts the object-store operations staging needs.
	// *MinIOStore is the production implementation; tests substitute fakes.
	ObjectStore interface {
		// DownloadPrefix fetches every object under bucket/prefix into destDir,
		// preserving the key structure below the prefix. Returns the number of
		// objects downloaded.
		DownloadPrefix(ctx context.Context, bucket, prefix, destDir string) (int, error)

		// UploadDir uploads every file under srcDir to bucket/prefix.
		// Returns the number of objects uploaded.
		UploadDir(ctx context.Context, bucket, prefix, srcDir string) (int, error)

		// EnsureBucket creates the bucket if it does not exist.
		EnsureBucket(ctx context.Context, bucket string) error
	}

	// Stager materializes channels for one launch.
	Stager struct {
		// Store handles remote channel sources. May be nil when every channel
		// is local; a remote source with a nil store is a staging error.
		Store ObjectStore
	}
)

// Stage materializes every channel into its layout directory and returns the
// channel-name -> local-path mapping consumed by environment derivation.
// Channels are processed in name order so log output and failures are stable.
// A channel with no consumer in the script is not an error; it is simply
// materialized and left unused.
func (s *Stager) Stage(ctx context.Context, channels map[jobfile.ChannelName]jobfile.ChannelSource, layout contract.Layout) (map[jobfile.ChannelName]string, error) {
	dirs := make(map[jobfile.ChannelName]string, len(channels))

	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, string(name))
	}
	sort.Strings(names)

	for _, raw := range names {
		name := jobfile.ChannelName(raw)
		source := channels[name]
		dest := layout.ChannelDir(name)

		if err := os.MkdirAll(dest, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create channel directory %s: %w", dest, err)
		}

		if source.IsRemote() {
			if err := s.stageRemote(ctx, name, source, dest); err != nil {
				return nil, err
			}
		} else {
			if err := stageLocal(name, source, dest); err != nil {
				return nil, err
			}
		}

		dirs[name] = dest
	}

	return dirs, nil
}

func (s *Stager) stageRemote(ctx context.Context, name jobfile.ChannelName, source jobfile.ChannelSource, dest string) error {
	if s.Store == nil {
		return fmt.Errorf("channel %q has remote source %s but no object store is configured", name, source)
	}

	bucket, prefix, err := source.BucketPrefix()
	if err != nil {
		return fmt.Errorf("channel %q: %w", name, err)
	}

	count, err := s.Store.DownloadPrefix(ctx, bucket, prefix, dest)
	if err != nil {
		return fmt.Errorf("failed to stage channel %q from %s: %w", name, source, err)
	}
	if count == 0 {
		return fmt.Errorf("channel %q source %s matched no objects", name, source)
	}
	return nil
}

func stageLocal(name jobfile.ChannelName, source jobfile.ChannelSource, dest string) error {
	info, err := os.Stat(string(source))
	if err != nil {
		return fmt.Errorf("channel %q source %s is not readable: %w", name, source, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("channel %q source %s is not a directory", name, source)
	}
	if err := CopyTree(string(source), dest); err != nil {
		return fmt.Errorf("failed to stage channel %q from %s: %w", name, source, err)
	}
	return nil
}

// CollectArtifacts uploads the model directory to bucket/prefix after a
// successful run. The bucket is created on first use.
func (s *Stager) CollectArtifacts(ctx context.Context, layout contract.Layout, bucket, prefix string) (int, error) {
	if s.Store == nil {
		return 0, fmt.Errorf("artifact upload requested but no object store is configured")
	}
	if err := s.Store.EnsureBucket(ctx, bucket); err != nil {
		return 0, fmt.Errorf("failed to ensure artifact bucket %s: %w", bucket, err)
	}
	count, err := s.Store.UploadDir(ctx, bucket, prefix, layout.ModelDir())
	if err != nil {
		return 0, fmt.Errorf("failed to upload artifacts to %s/%s: %w", bucket, prefix, err)
	}
	return count, nil
}
