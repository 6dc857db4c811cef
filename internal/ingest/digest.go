package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
)

// Reader passes bytes through while keeping a running sha256 and byte count,
// so a download can be summarised without buffering it.
type Reader struct {
	src   io.Reader
	sum   hash.Hash
	count int64
}

// NewReader wraps src.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src, sum: sha256.New()}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	if n > 0 {
		r.sum.Write(p[:n]) //nolint:errcheck
		r.count += int64(n)
	}
	return n, err
}

// SHA256 is the hex digest of the bytes read so far.
func (r *Reader) SHA256() string {
	return hex.EncodeToString(r.sum.Sum(nil))
}

// Size is the number of bytes read so far.
func (r *Reader) Size() int64 { return r.count }

// Summary renders size and digest for log lines.
func (r *Reader) Summary() string {
	return fmt.Sprintf("%d bytes, sha256 %s", r.count, r.SHA256())
}
