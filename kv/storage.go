package kv

import (
	"iter"
	"slices"
	"strings"

	"github.com/indigo-web/utils/strcomp"
	"github.com/samber/lo"
)

type Pair struct {
	Key, Value string
}

// Storage is an ordered associative structure for (string, string) pairs. Keys are
// compared case-insensitively, but kept as they were inserted. Lookups are linear.
type Storage struct {
	pairs []Pair
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// Add appends a new pair regardless of whether the key is already present.
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Set overrides the value of the first pair with a matching key and drops the rest of
// them. The key is stored in its new spelling. If there are no matching pairs, the pair
// is appended.
func (s *Storage) Set(key, value string) *Storage {
	idx := s.index(key)
	if idx == -1 {
		return s.Add(key, value)
	}

	s.pairs[idx] = Pair{Key: key, Value: value}
	tail := s.pairs[idx+1:]
	tail = slices.DeleteFunc(tail, func(p Pair) bool {
		return strcomp.EqualFold(p.Key, key)
	})
	s.pairs = s.pairs[:idx+1+len(tail)]

	return s
}

// Delete removes all pairs with a matching key.
func (s *Storage) Delete(key string) *Storage {
	s.pairs = slices.DeleteFunc(s.pairs, func(p Pair) bool {
		return strcomp.EqualFold(p.Key, key)
	})
	return s
}

// Value returns the first value, corresponding to the key. Otherwise, empty string is returned
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or custom value, defined
// via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found.
func (s *Storage) Get(key string) (value string, found bool) {
	if idx := s.index(key); idx != -1 {
		return s.pairs[idx].Value, true
	}

	return "", false
}

// Values iterates over all the values of the key.
func (s *Storage) Values(key string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, pair := range s.pairs {
			if strcomp.EqualFold(pair.Key, key) && !yield(pair.Value) {
				return
			}
		}
	}
}

// Keys iterates over unique keys in order of their first appearance.
func (s *Storage) Keys() iter.Seq[string] {
	keys := lo.UniqBy(lo.Map(s.pairs, func(p Pair, _ int) string {
		return p.Key
	}), strings.ToLower)

	return slices.Values(keys)
}

// Pairs iterates over all the pairs in insertion order.
func (s *Storage) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	return s.index(key) != -1
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Clone creates a deep copy.
func (s *Storage) Clone() *Storage {
	return &Storage{pairs: slices.Clone(s.pairs)}
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear all the entries. However, all the allocated space won't be freed.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}

func (s *Storage) index(key string) int {
	return slices.IndexFunc(s.pairs, func(p Pair) bool {
		return strcomp.EqualFold(p.Key, key)
	})
}
