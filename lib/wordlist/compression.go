package wordlist

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a wordlist file is compressed. It is chosen
// from the file extension.
type Compression uint8

const (
	// CompressionNone is a plain text wordlist.
	CompressionNone Compression = iota
	// CompressionGzip is a .gz wordlist.
	CompressionGzip
	// CompressionZstd is a .zst or .zstd wordlist.
	CompressionZstd
	// CompressionLZ4 is a .lz4 frame wordlist.
	CompressionLZ4
)

// String returns the human-readable name of a compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// DetectCompression returns the compression implied by path's extension.
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// decompress wraps r in a decompressor for c. The returned closer releases
// decoder resources; it does not close r.
func decompress(r io.Reader, c Compression) (io.Reader, io.Closer, error) {
	switch c {
	case CompressionNone:
		return r, io.NopCloser(nil), nil

	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}

		return zr, zr, nil

	case CompressionZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}

		return zr, zr.IOReadCloser(), nil

	case CompressionLZ4:
		return lz4.NewReader(r), io.NopCloser(nil), nil

	default:
		return nil, nil, fmt.Errorf("unsupported compression: %s", c)
	}
}
