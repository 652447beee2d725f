// SPDX-License-Identifier: MPL-2.0

package staging

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type (
	// StoreConfig holds object-store connection settings. Resolved once at
	// process start from the launcher config; there is no ambient credential
	// lookup at staging time.
	StoreConfig struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Region    string
		UseSSL    bool
	}

	// MinIOStore is the production ObjectStore backed by an S3-compatible
	// endpoint.
	MinIOStore struct {
		client *minio.Client
	}
)

// Validate checks that the config is sufficient to build a client.
func (c StoreConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("object store endpoint must not be empty")
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("object store credentials must not be empty")
	}
	return nil
}

// NewMinIOStore builds an ObjectStore from the given config.
func NewMinIOStore(cfg StoreConfig) (*MinIOStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}
	return &MinIOStore{client: client}, nil
}

// DownloadPrefix implements ObjectStore.
func (s *MinIOStore) DownloadPrefix(ctx context.Context, bucket, prefix, destDir string) (int, error) {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return 0, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		return 0, fmt.Errorf("bucket %s does not exist", bucket)
	}

	listPrefix := prefix
	if listPrefix != "" && !strings.HasSuffix(listPrefix, "/") {
		listPrefix += "/"
	}

	count := 0
	for object := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return count, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, object.Err)
		}
		if strings.HasSuffix(object.Key, "/") {
			continue // directory marker
		}

		rel := strings.TrimPrefix(object.Key, listPrefix)
		target := filepath.Join(destDir, filepath.FromSlash(rel))
		if err := s.client.FGetObject(ctx, bucket, object.Key, target, minio.GetObjectOptions{}); err != nil {
			return count, fmt.Errorf("failed to download %s/%s: %w", bucket, object.Key, err)
		}
		count++
	}
	return count, nil
}

// UploadDir implements ObjectStore.
func (s *MinIOStore) UploadDir(ctx context.Context, bucket, prefix, srcDir string) (int, error) {
	count := 0
	err := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		key := path.Join(prefix, filepath.ToSlash(rel))
		if _, err := s.client.FPutObject(ctx, bucket, key, p, minio.PutObjectOptions{}); err != nil {
			return fmt.Errorf("failed to upload %s: %w", key, err)
		}
		count++
		return nil
	})
	return count, err
}

// EnsureBucket implements ObjectStore.
func (s *MinIOStore) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
