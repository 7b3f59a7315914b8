package ogma

import (
	"encoding/json"
	"io"
	"os"
)

// DefaultStorePath is the store file location used when none is
// configured.
const DefaultStorePath = "./store.ogma"

// StoreOptions define store specific options.
type StoreOptions struct {
	// Path is the store file location.
	// Default: "./store.ogma".
	Path string

	// CompressionLevel is the brotli quality setting used when saving,
	// see Options.CompressionLevel.
	// Default: 5.
	CompressionLevel int
}

func (o *StoreOptions) norm() *StoreOptions {
	var oo StoreOptions
	if o != nil {
		oo = *o
	}

	if oo.Path == "" {
		oo.Path = DefaultStorePath
	}
	oo.CompressionLevel = (&Options{CompressionLevel: oo.CompressionLevel}).norm().CompressionLevel

	return &oo
}

// --------------------------------------------------------------------

// The persisted payload document. It only carries the records for now;
// metadata fields could be added alongside later.
type document[K comparable, V any] struct {
	Store []record[K, V] `json:"Store"`
}

type record[K comparable, V any] struct {
	Key   K `json:"Key"`
	Value V `json:"Value"`
}

// --------------------------------------------------------------------

// Store is an in-memory key/value map persisted as a single container.
// The container payload is a JSON document of records, compressed like
// any other payload; Save and Open are the only operations that touch
// disk. Store instances are not safe for concurrent use.
type Store[K comparable, V any] struct {
	m    map[K]V
	o    *StoreOptions
	csum []byte
}

// NewStore inits an empty store.
func NewStore[K comparable, V any](o *StoreOptions) *Store[K, V] {
	return &Store[K, V]{
		m: make(map[K]V),
		o: o.norm(),
	}
}

// OpenStore loads a store from its configured path. A missing file is
// not an error; it yields an empty store which will create the file on
// the first Save.
func OpenStore[K comparable, V any](o *StoreOptions) (*Store[K, V], error) {
	s := NewStore[K, V](o)

	fi, err := os.Stat(s.o.Path)
	if os.IsNotExist(err) || (err == nil && fi.IsDir()) {
		return s, nil
	} else if err != nil {
		return nil, err
	}

	f, err := os.Open(s.o.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hr := NewHashReader(f)
	cr, err := NewReader(hr)
	if err != nil {
		return nil, err
	}

	var doc document[K, V]
	if err := json.NewDecoder(cr).Decode(&doc); err != nil {
		return nil, err
	}

	// The decoder stops at the end of the document; drain the rest so
	// the checksum covers the full container.
	if _, err := io.Copy(io.Discard, hr); err != nil {
		return nil, err
	}

	for _, rec := range doc.Store {
		s.m[rec.Key] = rec.Value
	}
	s.csum = hr.Sum()
	return s, nil
}

// Save writes the store to its configured path. The container is
// written to a temporary sibling file first and renamed over the
// destination, so a crash mid-save never clobbers the previous state.
func (s *Store[K, V]) Save() error {
	temp := s.o.Path + ".tmp"

	f, err := os.Create(temp)
	if err != nil {
		return err
	}

	hw := NewHashWriter(f)
	w, err := NewWriter(hw, &Options{CompressionLevel: s.o.CompressionLevel})
	if err != nil {
		_ = f.Close()
		_ = os.Remove(temp)
		return err
	}

	doc := document[K, V]{Store: make([]record[K, V], 0, len(s.m))}
	for key, value := range s.m {
		doc.Store = append(doc.Store, record[K, V]{Key: key, Value: value})
	}

	if err := json.NewEncoder(w).Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(temp)
		return err
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		_ = os.Remove(temp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(temp)
		return err
	}

	if err := os.Rename(temp, s.o.Path); err != nil {
		_ = os.Remove(temp)
		return err
	}
	s.csum = hw.Sum()
	return nil
}

// Checksum returns the BLAKE3 digest of the container bytes last read
// by OpenStore or written by Save, or nil if the store has never
// touched disk.
func (s *Store[K, V]) Checksum() []byte { return s.csum }

// Get retrieves the value for a key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	value, ok := s.m[key]
	return value, ok
}

// Set stores a value under a key, returning the previous value if one
// was replaced.
func (s *Store[K, V]) Set(key K, value V) (V, bool) {
	prev, ok := s.m[key]
	s.m[key] = value
	return prev, ok
}

// Delete removes a key, returning the removed value if it existed.
func (s *Store[K, V]) Delete(key K) (V, bool) {
	prev, ok := s.m[key]
	delete(s.m, key)
	return prev, ok
}

// Contains reports whether a key exists.
func (s *Store[K, V]) Contains(key K) bool {
	_, ok := s.m[key]
	return ok
}

// Len returns the number of stored records.
func (s *Store[K, V]) Len() int { return len(s.m) }

// Clear removes all records.
func (s *Store[K, V]) Clear() { clear(s.m) }

// Keys returns all keys in unspecified order.
func (s *Store[K, V]) Keys() []K {
	keys := make([]K, 0, len(s.m))
	for key := range s.m {
		keys = append(keys, key)
	}
	return keys
}

// Values returns all values in unspecified order.
func (s *Store[K, V]) Values() []V {
	values := make([]V, 0, len(s.m))
	for _, value := range s.m {
		values = append(values, value)
	}
	return values
}
