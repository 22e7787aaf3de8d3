package compression

import (
	"fmt"

	"github.com/pierrec/lz4"
)

// NoCompressor passes data through unchanged.
type NoCompressor struct{}

func (c *NoCompressor) Name() string { return "none" }

func (c *NoCompressor) Compress(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

func (c *NoCompressor) Decompress(data []byte, originalSize int) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

func (c *NoCompressor) Bound(n int) int { return n }

// LZ4Compressor implements lz4 block compression.
type LZ4Compressor struct{}

func (c *LZ4Compressor) Name() string { return "lz4" }

func (c *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	out := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, out, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 {
		// Incompressible input: CompressBlock signals this with n == 0.
		return nil, errIncompressible
	}
	return out[:n], nil
}

func (c *LZ4Compressor) Decompress(data []byte, originalSize int) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	out := make([]byte, originalSize)
	n, err := lz4.UncompressBlock(data, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	return out[:n], nil
}

func (c *LZ4Compressor) Bound(n int) int { return lz4.CompressBlockBound(n) }

// errIncompressible tells the caller to store the value uncompressed.
var errIncompressible = fmt.Errorf("lz4: incompressible input")

// IsIncompressible reports whether err means the input did not shrink and
// should be stored raw.
func IsIncompressible(err error) bool { return err == errIncompressible }
