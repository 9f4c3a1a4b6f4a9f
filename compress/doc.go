// Package compress provides compression and decompression codecs for
// fog-pack Document and Entry data sections.
//
// # Overview
//
// A Document or Entry's compress_marker byte names the algorithm its data
// section was compressed with (format.CompressionType); Decode dispatches
// to the matching Decompressor automatically. Encode consults the owning
// schema's configured algorithm, falling back to None for schema-less
// values.
//
// Supported algorithms:
//   - None: no compression, used for already-incompressible data
//   - Zstd: best ratio, used as the default for cold/archival documents
//   - DictZstd: Zstd against a schema-trained dictionary (see the
//     dictionary package), best ratio for small documents that share
//     structure with many siblings under the same schema
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression, used for the "fast" envelope tier on
//     hot write paths ahead of a later recompression pass
//
// # Architecture
//
// Three interfaces compose the package surface:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// CreateCodec and GetCodec build or retrieve a Codec for one of the
// dictionary-free algorithms by format.CompressionType; dictionary-backed
// Zstd codecs are constructed directly by the dictionary package, since
// they need a trained dictionary as an extra input.
//
// # Zstd backend selection
//
// zstd_pure.go (no cgo) and zstd_cgo.go (cgo, via valyala/gozstd) both
// implement ZstdCompressor's methods, gated by build tags, so a build
// can trade the pure-Go backend's portability for the cgo backend's
// throughput without changing call sites.
package compress
