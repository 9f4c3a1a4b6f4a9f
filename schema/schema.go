// Package schema represents a fog-pack schema document: a root
// validator, named entry validators, a reusable named-type table for
// Ref(name) resolution, and the per-document/per-entry compression policy
// the document package consults when encoding values under this schema.
//
// Construction mirrors the functional-options shape used throughout this
// module: a Schema is built once via New, then used read-only for the
// lifetime of every Document/Entry it governs. The package does not decode
// a schema from encoded bytes.
package schema

import (
	"fmt"

	"github.com/fogpack/fogpack/format"
	"github.com/fogpack/fogpack/internal/options"
	"github.com/fogpack/fogpack/validator"
	"github.com/fogpack/fogpack/xcodec"
)

// Schema is an in-memory schema document: a root validator, a map of named
// entry validators, a map of reusable named sub-validators, and the
// compression configuration new Documents/Entries under this schema use.
type Schema struct {
	// Hash identifies this schema document itself, so documents can
	// reference it from their leading "" field.
	Hash xcodec.Hash

	Doc     validator.Validator
	Entries map[string]validator.Validator
	Types   map[string]validator.Validator

	DocCompression   format.CompressionType
	EntryCompression format.CompressionType

	// Dictionary, when non-nil, is the trained zstd dictionary referenced
	// by the DictZstd compression marker for entries under this schema.
	Dictionary []byte
}

// Option configures a Schema during construction.
type Option = options.Option[*Schema]

// New builds a Schema from a root validator and options. The returned
// Schema's Context resolves Ref(name) against its own Types map.
func New(doc validator.Validator, opts ...Option) (*Schema, error) {
	s := &Schema{
		Doc:              doc,
		Entries:          map[string]validator.Validator{},
		Types:            map[string]validator.Validator{},
		DocCompression:   format.CompressionNone,
		EntryCompression: format.CompressionNone,
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// WithHash sets the schema's self-identifying Hash.
func WithHash(h xcodec.Hash) Option {
	return options.NoError(func(s *Schema) { s.Hash = h })
}

// WithEntry registers a named entry validator.
func WithEntry(name string, v validator.Validator) Option {
	return options.NoError(func(s *Schema) { s.Entries[name] = v })
}

// WithType registers a named reusable sub-validator, resolvable via
// Ref(name) from anywhere in this schema's validator tree.
func WithType(name string, v validator.Validator) Option {
	return options.NoError(func(s *Schema) { s.Types[name] = v })
}

// WithDocCompression sets the algorithm new Documents under this schema
// compress their data section with.
func WithDocCompression(c format.CompressionType) Option {
	return options.NoError(func(s *Schema) { s.DocCompression = c })
}

// WithEntryCompression sets the algorithm new Entries under this schema
// compress their data section with.
func WithEntryCompression(c format.CompressionType) Option {
	return options.NoError(func(s *Schema) { s.EntryCompression = c })
}

// WithDictionary attaches a trained zstd dictionary, enabling the
// DictZstd compression marker for entries under this schema.
func WithDictionary(dict []byte) Option {
	return options.NoError(func(s *Schema) { s.Dictionary = dict })
}

// Context builds a validator.Context over this schema's Types map, for use
// validating the root document or any entry.
func (s *Schema) Context() *validator.Context {
	return validator.NewContext(s.Types)
}

// EntryValidator looks up the validator for a named entry.
func (s *Schema) EntryValidator(name string) (validator.Validator, error) {
	v, ok := s.Entries[name]
	if !ok {
		return nil, fmt.Errorf("schema: unknown entry %q", name)
	}

	return v, nil
}

// HasDictionary reports whether this schema carries a trained compression
// dictionary.
func (s *Schema) HasDictionary() bool { return len(s.Dictionary) > 0 }
