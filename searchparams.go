// Package searchparams implements an insertion-ordered multi-map over the
// key/value pairs of a URL query string, in the spirit of the web's
// URLSearchParams. Parsing decodes percent-escapes and treats plus signs as
// spaces; serialization always writes spaces back as %20.
package searchparams

import (
	"iter"
	"slices"
	"strings"

	"github.com/indigo-web/searchparams/internal/urlenc"
	"github.com/indigo-web/utils/uf"
)

// ErrDecoding is returned by Parse when the input contains a malformed
// percent-escape: a truncated sequence or non-hexadecimal digits in it.
var ErrDecoding = urlenc.ErrDecoding

type entry struct {
	key    string
	values []string
}

// Params is an ordered collection of query parameters. Keys keep the order
// they were first seen in, values of a repeated key keep the order they were
// added in. The zero value is ready to use, although New is preferred.
//
// Params isn't safe for concurrent use. Guard it externally if shared.
type Params struct {
	entries []entry
	raw     string
}

// New returns an empty Params, for building a query programmatically.
func New() *Params {
	return new(Params)
}

// Prealloc returns an empty Params with room for n distinct keys.
func Prealloc(n int) *Params {
	return &Params{
		entries: make([]entry, 0, n),
	}
}

// FromMap returns a new instance with already inserted values from given map.
// Note: as maps are unordered, the resulting order of keys is unspecified.
func FromMap(m map[string][]string) *Params {
	p := Prealloc(len(m))

	for key, values := range m {
		for _, value := range values {
			p.Append(key, value)
		}
	}

	return p
}

// Parse parses a raw query string, e.g. "a=1&b=hello%20world". A single
// leading question mark is stripped, so passing the query component straight
// from a URL works as well. Splitting happens on every ampersand; each
// segment is split at its first equals sign, and both halves are decoded
// (plus signs become spaces, then percent-escapes are resolved).
//
// A segment without an equals sign is recorded with an empty value, and its
// key is kept verbatim, undecoded. This asymmetry is deliberate, for
// compatibility with consumers relying on it.
//
// A malformed percent-escape fails the whole parse with ErrDecoding; no
// partially filled Params is ever returned.
func Parse(raw string) (*Params, error) {
	p := &Params{raw: raw}
	data := strings.TrimPrefix(raw, "?")
	if len(data) == 0 {
		return p, nil
	}

	var buff []byte

	for more := true; more; {
		var segment string
		segment, data, more = strings.Cut(data, "&")

		rawKey, rawValue, hasValue := strings.Cut(segment, "=")
		if !hasValue {
			p.add(rawKey, "")
			continue
		}

		var key, value string
		var err error

		key, buff, err = urlenc.DecodeString(rawKey, buff)
		if err != nil {
			return nil, err
		}

		value, buff, err = urlenc.DecodeString(rawValue, buff)
		if err != nil {
			return nil, err
		}

		p.add(key, value)
	}

	return p, nil
}

// Get returns the first value of the key and whether the key is present.
func (p *Params) Get(key string) (value string, found bool) {
	e := p.lookup(key)
	if e == nil {
		return "", false
	}

	return e.values[0], true
}

// Value returns the first value of the key. Otherwise, empty string is
// returned.
func (p *Params) Value(key string) string {
	return p.ValueOr(key, "")
}

// ValueOr returns either the first value of the key or a custom value,
// defined via the second parameter.
func (p *Params) ValueOr(key, or string) string {
	value, found := p.Get(key)
	if !found {
		return or
	}

	return value
}

// GetAll returns a copy of all values of the key, in the order they were
// added. The slice is never nil and is safe to retain and modify.
func (p *Params) GetAll(key string) []string {
	e := p.lookup(key)
	if e == nil {
		return []string{}
	}

	return slices.Clone(e.values)
}

// Has indicates whether there's an entry of the key.
func (p *Params) Has(key string) bool {
	return p.lookup(key) != nil
}

// Set replaces all values of the key with the single given one. An existing
// key keeps its place in the iteration order; a new key is appended at the
// end.
func (p *Params) Set(key, value string) *Params {
	if e := p.lookup(key); e != nil {
		e.values = append(e.values[:0], value)
		return p
	}

	return p.Append(key, value)
}

// Append adds one more value for the key, keeping the present ones. A missing
// key is created at the end of the iteration order.
func (p *Params) Append(key, value string) *Params {
	p.add(key, value)
	return p
}

// Delete removes the key together with all of its values and reports whether
// it was present.
func (p *Params) Delete(key string) bool {
	for i := range p.entries {
		if p.entries[i].key == key {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			return true
		}
	}

	return false
}

// Sort reorders the keys into ascending byte-wise order. Values of a key stay
// in their original order; the previous order across keys is discarded.
func (p *Params) Sort() *Params {
	slices.SortStableFunc(p.entries, func(a, b entry) int {
		return strings.Compare(a.key, b.key)
	})
	return p
}

// Pairs returns an iterator over all (key, value) pairs: keys in the store's
// current order, then each key's values in their order. Repeated keys are
// therefore yielded once per value. Every call starts anew, reflecting the
// state at the moment of the call.
func (p *Params) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for i := range p.entries {
			for _, value := range p.entries[i].values {
				if !yield(p.entries[i].key, value) {
					return
				}
			}
		}
	}
}

// Keys returns an iterator over the key of every pair of Pairs, in the same
// order and of the same length. Keys with multiple values repeat.
func (p *Params) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for key := range p.Pairs() {
			if !yield(key) {
				return
			}
		}
	}
}

// Values returns an iterator over the value of every pair of Pairs, in the
// same order and of the same length.
func (p *Params) Values() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, value := range p.Pairs() {
			if !yield(value) {
				return
			}
		}
	}
}

// ForEach calls fn once per pair, in Pairs order. Panics raised by fn
// propagate to the caller.
func (p *Params) ForEach(fn func(key, value string)) {
	for key, value := range p.Pairs() {
		fn(key, value)
	}
}

// Len returns the total number of stored values across all keys.
func (p *Params) Len() int {
	total := 0
	for i := range p.entries {
		total += len(p.entries[i].values)
	}

	return total
}

func (p *Params) Empty() bool {
	return len(p.entries) == 0
}

// Raw returns the original string the instance was parsed from, verbatim.
func (p *Params) Raw() string {
	return p.raw
}

// String encodes the parameters back into a query string: key=value pairs
// joined by ampersands, both sides percent-encoded. A space is always written
// as %20, so an input that used the plus convention won't round-trip
// byte-for-byte, although it will re-parse to the same pairs.
func (p *Params) String() string {
	if len(p.entries) == 0 {
		return ""
	}

	buff := make([]byte, 0, p.sizeHint())
	for key, value := range p.Pairs() {
		if len(buff) > 0 {
			buff = append(buff, '&')
		}

		buff = urlenc.AppendEncoded(buff, key)
		buff = append(buff, '=')
		buff = urlenc.AppendEncoded(buff, value)
	}

	return uf.B2S(buff)
}

// Clone creates a deep copy, which may be used and mutated independently of
// the original.
func (p *Params) Clone() *Params {
	clone := &Params{
		entries: slices.Clone(p.entries),
		raw:     p.raw,
	}
	for i := range clone.entries {
		clone.entries[i].values = slices.Clone(clone.entries[i].values)
	}

	return clone
}

// Clear removes all the entries. However, the allocated space is kept for
// further use.
func (p *Params) Clear() *Params {
	p.entries = p.entries[:0]
	return p
}

func (p *Params) add(key, value string) {
	if e := p.lookup(key); e != nil {
		e.values = append(e.values, value)
		return
	}

	p.entries = append(p.entries, entry{key: key, values: []string{value}})
}

// lookup does a linear search over the entries, which beats a map on the
// amount of keys a query string realistically carries.
func (p *Params) lookup(key string) *entry {
	for i := range p.entries {
		if p.entries[i].key == key {
			return &p.entries[i]
		}
	}

	return nil
}

func (p *Params) sizeHint() (n int) {
	for i := range p.entries {
		e := &p.entries[i]
		for _, value := range e.values {
			n += len(e.key) + len(value) + 2
		}
	}

	return n
}
