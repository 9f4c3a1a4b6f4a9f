// Package document implements the Document/Entry envelope: canonical
// bytes plus a running BLAKE2b hash chain, attached Ed25519 signatures,
// and schema-directed compression, tying the parser, emitter, crypto, and
// schema layers together into one header-plus-payload-plus-codec unit.
package document

import (
	"encoding/binary"
	"fmt"

	"github.com/fogpack/fogpack/compress"
	"github.com/fogpack/fogpack/crypto"
	"github.com/fogpack/fogpack/dictionary"
	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/emitter"
	"github.com/fogpack/fogpack/format"
	"github.com/fogpack/fogpack/internal/pool"
	"github.com/fogpack/fogpack/parser"
	"github.com/fogpack/fogpack/schema"
	"github.com/fogpack/fogpack/validator"
	"github.com/fogpack/fogpack/value"
	"github.com/fogpack/fogpack/xcodec"
)

// dictCache holds one dictionary.Codec per trained-dictionary fingerprint,
// shared across every schema compressBody consults.
var dictCache = dictionary.NewCache()

// CompressMarker is the envelope's leading byte, naming how data_bytes was
// produced (§6 "Document/entry envelope").
type CompressMarker uint8

const (
	Uncompressed       CompressMarker = 0
	CompressedNoSchema CompressMarker = 1
	Compressed         CompressMarker = 2
	DictCompressed     CompressMarker = 3
)

// Resource bounds from §5.
const (
	MaxDocumentSize = 1<<20 - 1 // just under 1 MiB
	MaxEntrySize    = 1<<16 - 1 // just under 64 KiB
)

const signatureWireSize = 1 + xcodec.IdentitySize + crypto.SignatureSize

// Document is a decoded or newly-built top-level fog-pack value together
// with its hash chain and attached signatures.
type Document struct {
	raw        []byte // canonical bytes, uncompressed, schema field included if present
	hasSchema  bool
	schemaHash xcodec.Hash

	dataHash xcodec.Hash // hash over raw, before any signature
	hash     xcodec.Hash // hash after every attached signature
	hasher   *crypto.Hasher

	signatures []crypto.Signature

	compressMarker CompressMarker
	compressed     []byte // cached envelope body for compressMarker, or nil
}

// EncodeOptions configures how NewDocument compresses its output.
type EncodeOptions struct {
	// Schema, when non-nil, supplies the compression algorithm and
	// dictionary a Document/Entry under it should use.
	Schema *schema.Schema

	// FastCompression requests the LZ4 envelope tier instead of the
	// schema's configured algorithm, for hot write paths that will be
	// recompressed later.
	FastCompression bool
}

// NewDocument builds a Document from v, a Map Value whose "" field (if
// present) is the schema Hash this document claims to satisfy.
func NewDocument(v value.Value) (*Document, error) {
	if v.Kind() != element.KindMap {
		return nil, fmt.Errorf("document: root value must be a map, got %v", v.Kind())
	}

	e := emitter.New()
	defer e.Finish()
	if err := v.Encode(e); err != nil {
		return nil, fmt.Errorf("document: encode root value: %w", err)
	}
	raw := append([]byte(nil), e.Bytes()...)
	if len(raw) > MaxDocumentSize {
		return nil, fmt.Errorf("document: encoded size %d exceeds maximum %d", len(raw), MaxDocumentSize)
	}

	d := &Document{raw: raw}
	schemaField := v.Field("")
	if schemaField.Kind() == element.KindHash {
		d.hasSchema = true
		d.schemaHash = schemaField.Hash()
	}

	d.hasher = crypto.NewHasher()
	d.hasher.Update(raw)
	d.dataHash = d.hasher.Finalize()
	d.hash = d.dataHash

	return d, nil
}

// Sign appends a signature over the document's data hash (the hash state
// before any signature, never the overall hash, per §4.5), advances the
// persistent hash state over only the newly-appended signature bytes, and
// invalidates any cached compressed form. Per the original implementation's
// HashState discipline, this keeps one continuous digest over
// raw || sig1 || sig2 || ... rather than re-hashing the hash at each step.
// If the resulting size would exceed MaxDocumentSize, the document is left
// unchanged and an error is returned.
func (d *Document) Sign(key crypto.SigningKey) error {
	sig := crypto.Sign(key, d.dataHash)

	if len(d.raw)+len(d.signatures)*signatureWireSize+signatureWireSize > MaxDocumentSize {
		return fmt.Errorf("document: signing would exceed maximum size %d", MaxDocumentSize)
	}

	d.signatures = append(d.signatures, sig)
	d.hasher.Update(sigWireBytes(sig))
	d.hash = d.hasher.Finalize()
	d.compressed = nil

	return nil
}

// DataHash returns the hash computed before any signature was attached —
// what Sign actually signs.
func (d *Document) DataHash() xcodec.Hash { return d.dataHash }

// Hash returns the overall hash, folding in every attached signature.
func (d *Document) Hash() xcodec.Hash { return d.hash }

// Signatures returns the attached signatures, in append order.
func (d *Document) Signatures() []crypto.Signature { return d.signatures }

// SchemaHash reports the schema Hash this document's leading "" field
// names, if any.
func (d *Document) SchemaHash() (h xcodec.Hash, ok bool) { return d.schemaHash, d.hasSchema }

// Value decodes the document's raw canonical bytes into a ValueRef tree.
func (d *Document) Value() (value.ValueRef, error) {
	return value.Decode(parser.New(d.raw))
}

// Bytes assembles the envelope: compress_marker, 3-byte little-endian data
// length, data bytes, and signature bytes, compressing the data section
// per opts. The result is cached until the next Sign call.
func (d *Document) Bytes(opts EncodeOptions) ([]byte, error) {
	marker, body, err := d.compressBody(opts)
	if err != nil {
		return nil, err
	}

	buf := pool.GetEnvelopeBuffer()
	defer pool.PutEnvelopeBuffer(buf)
	buf.Reset()

	var lenField [3]byte
	putUint24LE(lenField[:], len(body))

	buf.MustWrite([]byte{byte(marker)})
	buf.MustWrite(lenField[:])
	buf.MustWrite(body)
	for _, sig := range d.signatures {
		buf.MustWrite(xcodec.EncodeIdentity(sig.Signer))
		buf.MustWrite(sig.Bytes())
	}

	out := append([]byte(nil), buf.Bytes()...)
	d.compressMarker = marker
	d.compressed = body

	return out, nil
}

func (d *Document) compressBody(opts EncodeOptions) (CompressMarker, []byte, error) {
	algo := format.CompressionNone
	var dict []byte
	if opts.Schema != nil {
		algo = opts.Schema.DocCompression
		dict = opts.Schema.Dictionary
	}
	if opts.FastCompression {
		algo = format.CompressionLZ4
	}

	if algo == format.CompressionNone {
		return Uncompressed, d.raw, nil
	}

	// When a schema is in play, the leading "" field stays unencoded;
	// only the remainder of the canonical bytes is compressed.
	head, tail := []byte(nil), d.raw
	marker := CompressedNoSchema
	if d.hasSchema {
		split, err := schemaFieldSplit(d.raw)
		if err != nil {
			return 0, nil, err
		}
		head, tail = split, d.raw[len(split):]
		marker = Compressed
	}

	if algo == format.CompressionDictZstd && len(dict) > 0 {
		marker = DictCompressed
	}

	codec, err := compressorFor(algo, dict)
	if err != nil {
		return 0, nil, err
	}

	toCompress := tail
	if !d.hasSchema {
		toCompress = d.raw
	}

	compressed, err := codec.Compress(toCompress)
	if err != nil {
		return 0, nil, fmt.Errorf("document: compress: %w", err)
	}

	body := append(append([]byte(nil), head...), compressed...)

	return marker, body, nil
}

func compressorFor(algo format.CompressionType, dict []byte) (compress.Codec, error) {
	if algo == format.CompressionDictZstd && len(dict) > 0 {
		return dictCache.Get(dict), nil
	}

	return compress.GetCodec(algo)
}

// DecodeMode selects how DecodeDocument treats hashing and signatures.
type DecodeMode uint8

const (
	// Trusted skips signature verification entirely. It takes no
	// caller-supplied hash: the hash is recomputed from the envelope bytes
	// just as in Validated mode.
	Trusted DecodeMode = iota
	// Validated recomputes the hash from scratch and verifies every
	// attached signature against the data hash.
	Validated
)

// DecodeDocument parses an envelope produced by Bytes back into a
// Document. In Validated mode, every attached signature must verify
// against the recomputed data hash or decoding fails with an error
// wrapping a bad-signature condition. s may be nil for a document known
// not to use DictZstd compression; decoding a DictCompressed envelope
// without the schema that trained its dictionary fails.
func DecodeDocument(raw []byte, mode DecodeMode, s *schema.Schema) (*Document, error) {
	marker, body, sigBytes, err := splitEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var dict []byte
	if s != nil {
		dict = s.Dictionary
	}
	data, err := decompressBody(marker, body, dict)
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("document: decompressed size %d exceeds maximum %d", len(data), MaxDocumentSize)
	}

	d := &Document{raw: data}
	v, err := value.Decode(parser.New(data))
	if err != nil {
		return nil, fmt.Errorf("document: decode canonical form: %w", err)
	}
	if v.Kind() == element.KindMap {
		schemaField := v.Field("")
		if schemaField.Kind() == element.KindHash {
			d.hasSchema = true
			d.schemaHash = schemaField.Hash()
		}
	}

	d.hasher = crypto.NewHasher()
	d.hasher.Update(data)
	d.dataHash = d.hasher.Finalize()
	sigs, err := parseSignatures(sigBytes)
	if err != nil {
		return nil, err
	}
	for _, sig := range sigs {
		if mode == Validated && !crypto.Verify(sig, d.dataHash) {
			return nil, fmt.Errorf("document: signature from signer failed verification")
		}
		d.hasher.Update(sigWireBytes(sig))
	}
	d.signatures = sigs
	d.hash = d.hasher.Finalize()

	return d, nil
}

// sigWireBytes returns exactly the bytes Bytes appends to the envelope for
// sig (signer identity then raw signature) — the "newly-appended bytes"
// the running hash state folds in per §4.5, mirroring the original
// implementation's hash_state.update(&self.doc[len..]) over only the tail
// that changed.
func sigWireBytes(sig crypto.Signature) []byte {
	out := make([]byte, 0, signatureWireSize)
	out = append(out, xcodec.EncodeIdentity(sig.Signer)...)
	out = append(out, sig.Bytes()...)

	return out
}

// Validate runs s's root validator against the document's canonical bytes
// and reports whether the checklist it produces is complete (no pending
// cross-document Hash obligations remain undischarged).
func (d *Document) Validate(s *schema.Schema) (*validator.Checklist, error) {
	cl := validator.NewChecklist()
	p := parser.New(d.raw)
	if err := s.Doc.Validate(s.Context(), p, cl); err != nil {
		return nil, err
	}

	return cl, nil
}

// DecodeUnschema performs a schema-less structural decode: canonical-form
// well-formedness, map-key ordering, depth, and UTF-8 validity are
// enforced by the parser and value.Decode, but no validator tree runs. It
// cannot decode a DictCompressed envelope, since doing so requires the
// training schema's dictionary.
func DecodeUnschema(raw []byte, mode DecodeMode) (*Document, value.ValueRef, error) {
	d, err := DecodeDocument(raw, mode, nil)
	if err != nil {
		return nil, value.ValueRef{}, err
	}
	v, err := value.Decode(parser.New(d.raw))
	if err != nil {
		return nil, value.ValueRef{}, err
	}

	return d, v, nil
}

func putUint24LE(dst []byte, n int) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(n))
	copy(dst, buf[:3])
}

func readUint24LE(src []byte) int {
	var buf [4]byte
	copy(buf[:3], src)

	return int(binary.LittleEndian.Uint32(buf[:]))
}

func splitEnvelope(raw []byte) (CompressMarker, []byte, []byte, error) {
	if len(raw) < 4 {
		return 0, nil, nil, fmt.Errorf("document: envelope too short")
	}
	marker := CompressMarker(raw[0])
	dataLen := readUint24LE(raw[1:4])
	if 4+dataLen > len(raw) {
		return 0, nil, nil, fmt.Errorf("document: envelope data length %d exceeds buffer", dataLen)
	}

	return marker, raw[4 : 4+dataLen], raw[4+dataLen:], nil
}

func decompressBody(marker CompressMarker, body []byte, dict []byte) ([]byte, error) {
	switch marker {
	case Uncompressed:
		return body, nil
	case CompressedNoSchema:
		codec, err := compress.GetCodec(format.CompressionZstd)
		if err != nil {
			return nil, err
		}

		return codec.Decompress(body)
	case Compressed, DictCompressed:
		head, err := schemaFieldSplit(body)
		if err != nil {
			return nil, err
		}

		var codec compress.Codec
		if marker == DictCompressed {
			if len(dict) == 0 {
				return nil, fmt.Errorf("document: DictCompressed envelope requires the training schema's dictionary")
			}
			codec = dictCache.Get(dict)
		} else {
			codec, err = compress.GetCodec(format.CompressionZstd)
			if err != nil {
				return nil, err
			}
		}

		tail, err := codec.Decompress(body[len(head):])
		if err != nil {
			return nil, fmt.Errorf("document: decompress: %w", err)
		}

		return append(append([]byte(nil), head...), tail...), nil
	default:
		return nil, fmt.Errorf("document: unknown compress marker %d", marker)
	}
}

// schemaFieldSplit returns the prefix of raw spanning the map header, the
// "" key element, and its Hash value element — the portion left unencoded
// ahead of compression when a schema is in play.
func schemaFieldSplit(raw []byte) ([]byte, error) {
	p := parser.New(raw)
	before := p.Remaining()

	mapEl, err := p.Next()
	if err != nil || mapEl.Kind != element.KindMap || mapEl.Len == 0 {
		return nil, fmt.Errorf("document: expected a non-empty map with a leading schema field")
	}

	keyEl, err := p.Next()
	if err != nil || keyEl.Kind != element.KindStr || keyEl.Str != "" {
		return nil, fmt.Errorf("document: expected leading \"\" schema field")
	}
	if _, err := p.Next(); err != nil {
		return nil, fmt.Errorf("document: decode schema hash field: %w", err)
	}

	after := p.Remaining()

	return before[:len(before)-len(after)], nil
}

func parseSignatures(raw []byte) ([]crypto.Signature, error) {
	if len(raw)%signatureWireSize != 0 {
		return nil, fmt.Errorf("document: trailing signature bytes are not a multiple of %d", signatureWireSize)
	}

	n := len(raw) / signatureWireSize
	out := make([]crypto.Signature, 0, n)
	for i := 0; i < n; i++ {
		chunk := raw[i*signatureWireSize : (i+1)*signatureWireSize]
		id, err := xcodec.DecodeIdentity(chunk[:1+xcodec.IdentitySize])
		if err != nil {
			return nil, fmt.Errorf("document: decode signer identity: %w", err)
		}
		sig, err := crypto.NewSignatureFromBytes(id, chunk[1+xcodec.IdentitySize:])
		if err != nil {
			return nil, err
		}
		out = append(out, sig)
	}

	return out, nil
}
