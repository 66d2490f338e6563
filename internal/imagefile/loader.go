package imagefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/ironsheep/image-gradient/internal/netpbm"
	"github.com/ironsheep/image-gradient/internal/raster"
)

// CompressedExt marks Zstandard-compressed raster files.
const CompressedExt = ".zst"

// maxDecompressedSize caps the memory a compressed input may expand to.
const maxDecompressedSize = 1 << 30

// File is a decoded image together with how it was stored.
type File struct {
	// Path is the file the image was read from.
	Path string

	// Image is the decoded raster.
	Image *raster.Image

	// Format is the PGM variant of the raster.
	Format netpbm.Format

	// Compressed is true when the file was Zstandard-compressed.
	Compressed bool

	// SizeBytes is the size of the file on disk.
	SizeBytes int64
}

// Load reads and decodes the PGM image at path.
//
// Returns:
//   - *File: The decoded image and its storage details.
//   - error: Non-nil if the file cannot be read or decompressed, or if its
//     contents are not a valid PGM image. Decoding failures keep their
//     *netpbm.DecodeError in the error chain.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	size := int64(len(data))

	compressed := IsCompressed(path)
	if compressed {
		data, err = decompress(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
	}

	img, format, err := netpbm.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &File{
		Path:       path,
		Image:      img,
		Format:     format,
		Compressed: compressed,
		SizeBytes:  size,
	}, nil
}

// IsCompressed reports whether path names a Zstandard-compressed file.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CompressedExt)
}

// Ext returns the raster extension of path, keeping a trailing compression
// suffix:
//   - "image/boats.pgm" -> ".pgm"
//   - "image/boats.pgm.zst" -> ".pgm.zst"
//   - "image/boats" -> ""
func Ext(path string) string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, CompressedExt) {
		return filepath.Ext(strings.TrimSuffix(path, ext)) + ext
	}
	return ext
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxDecompressedSize),
	)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return dec.DecodeAll(data, nil)
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	return enc.EncodeAll(data, nil), nil
}
