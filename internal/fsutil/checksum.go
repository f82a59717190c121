package fsutil

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// Algorithm identifies a supported digest algorithm.
type Algorithm string

const (
	MD5     Algorithm = "md5"
	SHA1    Algorithm = "sha1"
	SHA256  Algorithm = "sha256"
	BLAKE2b Algorithm = "blake2b"
)

// Algorithms lists the supported digest algorithms.
func Algorithms() []string {
	return []string{string(MD5), string(SHA1), string(SHA256), string(BLAKE2b)}
}

func newHash(algo Algorithm) (hash.Hash, error) {
	switch algo {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case BLAKE2b:
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algo)
	}
}

// Checksum computes the hex digest of the full file content at path.
func Checksum(path string, algo Algorithm) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := newHash(algo)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ChecksumBytes computes the hex digest of in-memory content.
func ChecksumBytes(data []byte, algo Algorithm) (string, error) {
	h, err := newHash(algo)
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
