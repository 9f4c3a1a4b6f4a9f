// Package dictionary trains and serves zstd compression dictionaries for
// schemas whose entries share enough structure to benefit from one: many
// small, similarly-shaped payloads compress far better against a shared
// dictionary than independently. Training runs offline, over a batch of
// historical entry payloads already on hand; the trained dictionary is
// then stored in the schema and referenced by the DictZstd compress marker.
package dictionary

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/fogpack/fogpack/compress"
	"github.com/fogpack/fogpack/format"
	"github.com/fogpack/fogpack/internal/hash"
)

// DefaultSize is the dictionary size used by Train when no explicit size is
// requested, matching zstd's own default training target.
const DefaultSize = 112 * 1024

// Train builds a zstd dictionary from samples, a batch of historical entry
// payloads drawn from documents under the same schema. It returns an error
// if fewer than two samples are given; zstd's trainer cannot produce a
// meaningful dictionary from less.
func Train(samples [][]byte, size int) ([]byte, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("dictionary: need at least 2 samples to train, got %d", len(samples))
	}
	if size <= 0 {
		size = DefaultSize
	}

	dict := zstd.BuildDict(zstd.BuildDictOptions{
		Contents:   samples,
		MaxDictLen: size,
	})
	if len(dict) == 0 {
		return nil, fmt.Errorf("dictionary: training produced an empty dictionary")
	}

	return dict, nil
}

// Fingerprint returns a short, stable identifier for a trained dictionary,
// used as a cache key alongside the owning schema's Hash so a process
// holding many schemas does not rebuild zstd encoders/decoders for a
// dictionary it already has loaded.
func Fingerprint(dict []byte) uint64 {
	return hash.Bytes(dict)
}

// Codec is a compress.Codec bound to one trained dictionary, used for the
// DictZstd compression marker.
type Codec struct {
	dict []byte

	encOnce sync.Once
	enc     *zstd.Encoder
	encErr  error

	decOnce sync.Once
	dec     *zstd.Decoder
	decErr  error
}

var _ compress.Codec = (*Codec)(nil)

// New wraps a trained dictionary as a Codec. The underlying zstd
// encoder/decoder are built lazily on first use and reused afterward.
func New(dict []byte) *Codec {
	return &Codec{dict: append([]byte(nil), dict...)}
}

// Algorithm reports the compress marker this codec implements.
func (c *Codec) Algorithm() format.CompressionType { return format.CompressionDictZstd }

// Fingerprint returns this codec's dictionary fingerprint.
func (c *Codec) Fingerprint() uint64 { return Fingerprint(c.dict) }

func (c *Codec) encoder() (*zstd.Encoder, error) {
	c.encOnce.Do(func() {
		c.enc, c.encErr = zstd.NewWriter(nil, zstd.WithEncoderDict(c.dict))
	})

	return c.enc, c.encErr
}

func (c *Codec) decoder() (*zstd.Decoder, error) {
	c.decOnce.Do(func() {
		c.dec, c.decErr = zstd.NewReader(nil, zstd.WithDecoderDicts(c.dict))
	})

	return c.dec, c.decErr
}

// Compress compresses data against this codec's trained dictionary.
func (c *Codec) Compress(data []byte) ([]byte, error) {
	enc, err := c.encoder()
	if err != nil {
		return nil, fmt.Errorf("dictionary: build encoder: %w", err)
	}

	return enc.EncodeAll(data, nil), nil
}

// Decompress decompresses data that was compressed against this codec's
// trained dictionary.
func (c *Codec) Decompress(data []byte) ([]byte, error) {
	dec, err := c.decoder()
	if err != nil {
		return nil, fmt.Errorf("dictionary: build decoder: %w", err)
	}

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("dictionary: decompress: %w", err)
	}

	return out, nil
}

// Cache keeps one Codec per distinct dictionary fingerprint, so a process
// serving many schemas that happen to share a dictionary (or repeatedly
// reopens the same schema) builds each trained encoder/decoder pair once.
type Cache struct {
	mu    sync.Mutex
	byFP  map[uint64]*Codec
}

// NewCache creates an empty dictionary Codec cache.
func NewCache() *Cache {
	return &Cache{byFP: map[uint64]*Codec{}}
}

// Get returns the cached Codec for dict's fingerprint, building and storing
// one if this is the first time dict has been seen.
func (c *Cache) Get(dict []byte) *Codec {
	fp := Fingerprint(dict)

	c.mu.Lock()
	defer c.mu.Unlock()

	if codec, ok := c.byFP[fp]; ok {
		return codec
	}
	codec := New(dict)
	c.byFP[fp] = codec

	return codec
}
