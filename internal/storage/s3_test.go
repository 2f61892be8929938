package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testS3Config(endpoint string) S3Config {
	return S3Config{
		Bucket:          "test-bucket",
		Region:          "us-east-1",
		Endpoint:        endpoint,
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
	}
}

func TestNewS3Store(t *testing.T) {
	scratch := filepath.Join(t.TempDir(), "scratch")

	store, err := NewS3Store(scratch, testS3Config("http://localhost:4566"))
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}

	if store.bucket != "test-bucket" {
		t.Errorf("bucket = %v, want test-bucket", store.bucket)
	}
	if store.region != "us-east-1" {
		t.Errorf("region = %v, want us-east-1", store.region)
	}
	if store.ScratchDir() != scratch {
		t.Errorf("ScratchDir() = %v, want %v", store.ScratchDir(), scratch)
	}
}

func TestS3Store_Publish_MockServer(t *testing.T) {
	var gotPath string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT method, got %s", r.Method)
		}
		gotPath = r.URL.Path

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read body: %v", err)
		}
		gotBody = body

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testS3Config(server.URL)
	cfg.KeyPrefix = "chunks"

	store, err := NewS3Store(t.TempDir(), cfg)
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}

	local := filepath.Join(t.TempDir(), "song-part-001.mp3")
	if err := os.WriteFile(local, []byte("encoded audio"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	url, err := store.Publish(context.Background(), local)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	wantURL := "https://test-bucket.s3.us-east-1.amazonaws.com/chunks/song-part-001.mp3"
	if url != wantURL {
		t.Errorf("url = %v, want %v", url, wantURL)
	}

	// Path-style addressing puts the bucket and key in the request path.
	if !strings.Contains(gotPath, "test-bucket") || !strings.Contains(gotPath, "chunks/song-part-001.mp3") {
		t.Errorf("unexpected upload path: %s", gotPath)
	}
	if string(gotBody) != "encoded audio" {
		t.Errorf("uploaded body = %q, want %q", gotBody, "encoded audio")
	}

	// The local copy is kept after a successful upload.
	if _, err := os.Stat(local); err != nil {
		t.Errorf("local copy missing after publish: %v", err)
	}
}

func TestS3Store_Publish_MissingLocalFile(t *testing.T) {
	store, err := NewS3Store(t.TempDir(), testS3Config("http://localhost:4566"))
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}

	_, err = store.Publish(context.Background(), filepath.Join(t.TempDir(), "nope.mp3"))
	if err == nil {
		t.Error("expected error for missing local file")
	}
}
