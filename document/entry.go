package document

import (
	"fmt"

	"github.com/fogpack/fogpack/crypto"
	"github.com/fogpack/fogpack/emitter"
	"github.com/fogpack/fogpack/parser"
	"github.com/fogpack/fogpack/schema"
	"github.com/fogpack/fogpack/validator"
	"github.com/fogpack/fogpack/value"
	"github.com/fogpack/fogpack/xcodec"
)

// Entry is a subordinate value attached to a parent Document under a field
// string. Its hash chain starts from the parent document's hash rather than
// from scratch, per §4.5: parent hash, then field key, then entry bytes,
// then signatures.
type Entry struct {
	field  string
	raw    []byte
	parent xcodec.Hash

	dataHash xcodec.Hash
	hash     xcodec.Hash
	hasher   *crypto.Hasher

	signatures []crypto.Signature
}

// NewEntry builds an Entry attached to parent under field, from a value
// tree v.
func NewEntry(parent *Document, field string, v value.Value) (*Entry, error) {
	e := emitter.New()
	defer e.Finish()
	if err := v.Encode(e); err != nil {
		return nil, fmt.Errorf("document: encode entry value: %w", err)
	}
	raw := append([]byte(nil), e.Bytes()...)
	if len(raw) > MaxEntrySize {
		return nil, fmt.Errorf("document: encoded entry size %d exceeds maximum %d", len(raw), MaxEntrySize)
	}

	h := crypto.NewHasher()
	h.Update(parent.Hash().Bytes())
	h.Update(encodeFieldKey(field))
	h.Update(raw)
	dataHash := h.Finalize()

	return &Entry{
		field:    field,
		raw:      raw,
		parent:   parent.Hash(),
		dataHash: dataHash,
		hash:     dataHash,
		hasher:   h,
	}, nil
}

// Field returns the field name this entry is attached under.
func (en *Entry) Field() string { return en.field }

// ParentHash returns the parent document's hash at the time this entry was
// constructed or decoded.
func (en *Entry) ParentHash() xcodec.Hash { return en.parent }

// DataHash returns the hash computed before any signature was attached.
func (en *Entry) DataHash() xcodec.Hash { return en.dataHash }

// Hash returns the overall hash, folding in every attached signature.
func (en *Entry) Hash() xcodec.Hash { return en.hash }

// Signatures returns the attached signatures, in append order.
func (en *Entry) Signatures() []crypto.Signature { return en.signatures }

// Sign appends a signature over the entry's data hash, advancing the
// persistent hash state over only the newly-appended signature bytes, the
// same continuous-digest discipline Document.Sign uses.
func (en *Entry) Sign(key crypto.SigningKey) error {
	sig := crypto.Sign(key, en.dataHash)

	if len(en.raw)+len(en.signatures)*signatureWireSize+signatureWireSize > MaxEntrySize {
		return fmt.Errorf("document: signing entry would exceed maximum size %d", MaxEntrySize)
	}

	en.signatures = append(en.signatures, sig)
	en.hasher.Update(sigWireBytes(sig))
	en.hash = en.hasher.Finalize()

	return nil
}

// Value decodes the entry's raw canonical bytes into a ValueRef tree.
func (en *Entry) Value() (value.ValueRef, error) {
	return value.Decode(parser.New(en.raw))
}

// Bytes assembles the entry envelope identically to Document.Bytes,
// dispatching through the same compressBody logic with the schema's entry
// (rather than document) compression algorithm and dictionary.
func (en *Entry) Bytes(opts EncodeOptions) ([]byte, error) {
	d := &Document{raw: en.raw, dataHash: en.dataHash, hash: en.hash, signatures: en.signatures}

	docOpts := opts
	if opts.Schema != nil {
		entrySchema := *opts.Schema
		entrySchema.DocCompression = opts.Schema.EntryCompression
		docOpts.Schema = &entrySchema
	}

	return d.Bytes(docOpts)
}

// DecodeEntry parses an envelope produced by Entry.Bytes back into an
// Entry attached to parent under field. s supplies the dictionary needed
// to decode a DictCompressed envelope and may be nil otherwise.
func DecodeEntry(parent *Document, field string, raw []byte, mode DecodeMode, s *schema.Schema) (*Entry, error) {
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
	if len(data) > MaxEntrySize {
		return nil, fmt.Errorf("document: decompressed entry size %d exceeds maximum %d", len(data), MaxEntrySize)
	}

	h := crypto.NewHasher()
	h.Update(parent.Hash().Bytes())
	h.Update(encodeFieldKey(field))
	h.Update(data)
	dataHash := h.Finalize()

	sigs, err := parseSignatures(sigBytes)
	if err != nil {
		return nil, err
	}
	for _, sig := range sigs {
		if mode == Validated && !crypto.Verify(sig, dataHash) {
			return nil, fmt.Errorf("document: entry signature from signer failed verification")
		}
		h.Update(sigWireBytes(sig))
	}

	return &Entry{
		field:      field,
		raw:        data,
		parent:     parent.Hash(),
		dataHash:   dataHash,
		hash:       h.Finalize(),
		signatures: sigs,
	}, nil
}

// Validate runs the named entry validator from s against this entry's
// canonical bytes.
func (en *Entry) Validate(s *schema.Schema) (*validator.Checklist, error) {
	v, err := s.EntryValidator(en.field)
	if err != nil {
		return nil, err
	}

	cl := validator.NewChecklist()
	p := parser.New(en.raw)
	if err := v.Validate(s.Context(), p, cl); err != nil {
		return nil, err
	}

	return cl, nil
}

func encodeFieldKey(field string) []byte {
	e := emitter.New()
	defer e.Finish()
	_ = e.WriteStr(field)

	return append([]byte(nil), e.Bytes()...)
}
