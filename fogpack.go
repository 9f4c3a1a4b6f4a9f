// Package fogpack provides a canonical, schema-validated, cryptographically
// signed binary document format.
//
// fog-pack documents are built from a small set of canonical value kinds —
// null, bool, integer, float32/float64, string, binary, array, map,
// timestamp, and a family of cryptographic tokens (hash, identity, lock,
// stream, lockbox) — encoded so that a given logical value has exactly one
// valid byte sequence. That canonical-form law is what makes hashing and
// signing meaningful: two documents with the same content always produce
// the same bytes and the same hash.
//
// A Document carries an optional schema reference (its "" field) naming
// the Hash of a schema document that governs its shape. Schemas compile
// into a tree of validators; validating a document walks that tree against
// the document's canonical bytes without ever building an intermediate
// value tree, the same way a streaming parser would.
//
// # Basic usage
//
// Building and signing a document:
//
//	import "github.com/fogpack/fogpack/value"
//
//	root := value.NewMapSorted(
//	    []string{"count", "name"},
//	    []value.Value{value.NewInt(element.Signed(7)), value.NewStr("widget")},
//	)
//	doc, err := fogpack.NewDocument(root)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	key, _ := fogpack.GenerateSigningKey()
//	if err := doc.Sign(key); err != nil {
//	    log.Fatal(err)
//	}
//
//	wire, err := doc.Bytes(document.EncodeOptions{})
//
// Decoding and validating against a schema:
//
//	decoded, err := fogpack.DecodeDocument(wire, document.Validated, sch)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	checklist, err := decoded.Validate(sch)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !checklist.Complete() {
//	    log.Fatal("document references unresolved schema checks")
//	}
//
// # Package structure
//
// This file provides convenient top-level wrappers around the document,
// schema, and crypto packages for the most common use cases. Advanced
// validator construction, raw canonical codec access, and dictionary
// training use their respective packages directly.
package fogpack

import (
	"github.com/fogpack/fogpack/crypto"
	"github.com/fogpack/fogpack/document"
	"github.com/fogpack/fogpack/schema"
	"github.com/fogpack/fogpack/validator"
	"github.com/fogpack/fogpack/value"
)

// NewDocument builds a Document from a Map value. If the map carries a ""
// field holding a Hash, the document is considered to declare that schema.
func NewDocument(root value.Value) (*document.Document, error) {
	return document.NewDocument(root)
}

// DecodeDocument parses a document envelope produced by Document.Bytes.
// s supplies the dictionary needed to decode a DictZstd-compressed
// envelope and may be nil for documents known not to use one.
func DecodeDocument(raw []byte, mode document.DecodeMode, s *schema.Schema) (*document.Document, error) {
	return document.DecodeDocument(raw, mode, s)
}

// DecodeUnschema performs a structural-only decode: canonical-form
// well-formedness and ordering are enforced, but no validator tree runs.
func DecodeUnschema(raw []byte, mode document.DecodeMode) (*document.Document, value.ValueRef, error) {
	return document.DecodeUnschema(raw, mode)
}

// NewEntry attaches a subordinate value to parent under field.
func NewEntry(parent *document.Document, field string, v value.Value) (*document.Entry, error) {
	return document.NewEntry(parent, field, v)
}

// DecodeEntry parses an entry envelope attached to parent under field.
func DecodeEntry(parent *document.Document, field string, raw []byte, mode document.DecodeMode, s *schema.Schema) (*document.Entry, error) {
	return document.DecodeEntry(parent, field, raw, mode, s)
}

// NewSchema builds a Schema from a root validator and options, for
// governing the shape of documents that reference it.
func NewSchema(doc validator.Validator, opts ...schema.Option) (*schema.Schema, error) {
	return schema.New(doc, opts...)
}

// GenerateSigningKey creates a fresh Ed25519 keypair for signing documents
// and entries.
func GenerateSigningKey() (crypto.SigningKey, error) {
	return crypto.GenerateSigningKey()
}
