// SPDX-License-Identifier: MPL-2.0

// Integration tests for the MinIO-backed object store. These spin up a real
// MinIO container via testcontainers-go and exercise the full
// download/upload round trip.
package staging

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// checkTestcontainersAvailable safely checks if testcontainers can be used.
func checkTestcontainersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

func TestMinIOStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !checkTestcontainersAvailable() {
		t.Skip("skipping object store integration tests: testcontainers provider not available")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     "testaccess",
			"MINIO_ROOT_PASSWORD": "testsecret",
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForListeningPort("9000/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("skipping: could not start MinIO container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.PortEndpoint(ctx, "9000/tcp", "")
	if err != nil {
		t.Fatal(err)
	}

	store, err := NewMinIOStore(StoreConfig{
		Endpoint:  endpoint,
		AccessKey: "testaccess",
		SecretKey: "testsecret",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Upload a small tree, then download it under a fresh destination and
	// compare contents.
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "raw"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "corpus.txt"), []byte("sherlock"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "raw", "part-0"), []byte("chapter one"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := store.EnsureBucket(ctx, "data"); err != nil {
		t.Fatalf("EnsureBucket() error: %v", err)
	}
	uploaded, err := store.UploadDir(ctx, "data", "sherlock", src)
	if err != nil {
		t.Fatalf("UploadDir() error: %v", err)
	}
	if uploaded != 2 {
		t.Errorf("uploaded %d objects, want 2", uploaded)
	}

	dest := t.TempDir()
	downloaded, err := store.DownloadPrefix(ctx, "data", "sherlock", dest)
	if err != nil {
		t.Fatalf("DownloadPrefix() error: %v", err)
	}
	if downloaded != 2 {
		t.Errorf("downloaded %d objects, want 2", downloaded)
	}

	data, err := os.ReadFile(filepath.Join(dest, "corpus.txt"))
	if err != nil || string(data) != "sherlock" {
		t.Errorf("corpus.txt = %q, %v", data, err)
	}
	data, err = os.ReadFile(filepath.Join(dest, "raw", "part-0"))
	if err != nil || string(data) != "chapter one" {
		t.Errorf("raw/part-0 = %q, %v", data, err)
	}

	// Missing bucket surfaces as an error, not an empty download.
	if _, err := store.DownloadPrefix(ctx, "nonexistent", "x", t.TempDir()); err == nil {
		t.Error("expected error for missing bucket, got nil")
	}
}
