// Package hasher computes content digests for duplicate detection.
//
// Files are streamed in fixed-size chunks so large contracts never need to fit
// in memory. Collision resistance is not a security requirement here; the
// digest only has to tell accidental copies apart from different documents.
package hasher

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/harrison/archivetidy/internal/models"
	"github.com/spf13/afero"
)

// Supported algorithms.
const (
	AlgorithmMD5    = "md5"
	AlgorithmSHA256 = "sha256"
)

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 4096

// Hasher computes and memoizes content digests for files on a filesystem.
type Hasher struct {
	fs        afero.Fs
	algorithm string
	chunkSize int
	cache     map[string]string
}

// New creates a Hasher for the given algorithm ("md5" or "sha256").
// A chunkSize <= 0 selects DefaultChunkSize.
func New(fs afero.Fs, algorithm string, chunkSize int) (*Hasher, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	if algorithm == "" {
		algorithm = AlgorithmMD5
	}
	if algorithm != AlgorithmMD5 && algorithm != AlgorithmSHA256 {
		return nil, fmt.Errorf("unsupported hash algorithm %q (expected %s or %s)", algorithm, AlgorithmMD5, AlgorithmSHA256)
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Hasher{
		fs:        fs,
		algorithm: algorithm,
		chunkSize: chunkSize,
		cache:     make(map[string]string),
	}, nil
}

// Algorithm returns the configured algorithm name.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Digest returns the hex digest of the file at path.
// Read failures are returned as *models.OpError of kind HashError; the caller
// is expected to skip the file and keep going.
func (h *Hasher) Digest(path string) (string, error) {
	if d, ok := h.cache[path]; ok {
		return d, nil
	}

	f, err := h.fs.Open(path)
	if err != nil {
		return "", models.NewOpError(models.HashError, path, err)
	}
	defer f.Close()

	sum := h.newHash()
	buf := make([]byte, h.chunkSize)
	if _, err := io.CopyBuffer(sum, onlyReader{f}, buf); err != nil {
		return "", models.NewOpError(models.HashError, path, err)
	}

	d := hex.EncodeToString(sum.Sum(nil))
	h.cache[path] = d
	return d, nil
}

// Fill returns a copy of rec carrying its content digest.
func (h *Hasher) Fill(rec models.FileRecord) (models.FileRecord, error) {
	if rec.HasHash() {
		return rec, nil
	}
	d, err := h.Digest(rec.Path)
	if err != nil {
		return rec, err
	}
	return rec.WithHash(d), nil
}

func (h *Hasher) newHash() hash.Hash {
	if h.algorithm == AlgorithmSHA256 {
		return sha256.New()
	}
	return md5.New()
}

// onlyReader hides any WriterTo implementation so CopyBuffer reads in
// chunkSize pieces.
type onlyReader struct {
	r io.Reader
}

func (o onlyReader) Read(p []byte) (int, error) {
	return o.r.Read(p)
}
