package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChecksumBytes(t *testing.T) {
	data := []byte("hello world")

	tests := []struct {
		algo Algorithm
		want string
	}{
		{MD5, "5eb63bbbe01eeed093cb22bb8f5acdc3"},
		{SHA1, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"},
		{SHA256, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
	}

	for _, tt := range tests {
		got, err := ChecksumBytes(data, tt.algo)
		if err != nil {
			t.Fatalf("ChecksumBytes(%s) failed: %v", tt.algo, err)
		}
		if got != tt.want {
			t.Errorf("ChecksumBytes(%s) = %s, want %s", tt.algo, got, tt.want)
		}
	}
}

func TestChecksumBlake2b(t *testing.T) {
	// blake2b-256 digest is 64 hex characters.
	got, err := ChecksumBytes([]byte("hello world"), BLAKE2b)
	if err != nil {
		t.Fatalf("ChecksumBytes(blake2b) failed: %v", err)
	}
	if len(got) != 64 {
		t.Errorf("blake2b digest length = %d, want 64", len(got))
	}

	again, _ := ChecksumBytes([]byte("hello world"), BLAKE2b)
	if got != again {
		t.Error("blake2b digest should be deterministic")
	}
}

func TestChecksumFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "fsutil_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "sum.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	got, err := Checksum(path, SHA256)
	if err != nil {
		t.Fatalf("Checksum failed: %v", err)
	}
	want, _ := ChecksumBytes([]byte("hello world"), SHA256)
	if got != want {
		t.Errorf("File checksum = %s, want %s", got, want)
	}
}

func TestChecksumUnsupported(t *testing.T) {
	if _, err := ChecksumBytes([]byte("x"), Algorithm("crc32")); err == nil {
		t.Error("Unknown algorithm should fail")
	}
}

func TestChecksumMissingFile(t *testing.T) {
	if _, err := Checksum("/no/such/file", SHA256); err == nil {
		t.Error("Checksum of a missing file should fail")
	}
}

func TestAlgorithms(t *testing.T) {
	algos := Algorithms()
	if len(algos) != 4 {
		t.Errorf("Expected 4 algorithms, got %d: %v", len(algos), algos)
	}
}

func BenchmarkChecksumSHA256(b *testing.B) {
	data := make([]byte, 64*1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ChecksumBytes(data, SHA256)
	}
}

func BenchmarkChecksumBlake2b(b *testing.B) {
	data := make([]byte, 64*1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ChecksumBytes(data, BLAKE2b)
	}
}
