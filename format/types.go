// Package format defines the small enumerations shared between the
// compress and document packages: which compression algorithm a document
// or entry was encoded with.
package format

// CompressionType identifies the compression algorithm configured for a
// Document or Entry's data section (by a schema or by encode options). It
// is not the envelope's compress_marker byte, which is the separate
// document.CompressMarker.
type CompressionType uint8

const (
	CompressionNone     CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd     CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2       CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4      CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression, the fast envelope tier.
	CompressionDictZstd CompressionType = 0x5 // CompressionDictZstd represents Zstandard compression against a schema-trained dictionary.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionDictZstd:
		return "DictZstd"
	default:
		return "Unknown"
	}
}
