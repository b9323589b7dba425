package searchparams

import (
	"io"
	"slices"

	json "github.com/json-iterator/go"
)

var jsonCfg = json.ConfigDefault

// MarshalJSON renders the parameters as an object mapping each key either to
// its only value or, for a repeated key, to the array of its values, in the
// store's key order.
func (p *Params) MarshalJSON() ([]byte, error) {
	stream := jsonCfg.BorrowStream(nil)
	defer jsonCfg.ReturnStream(stream)

	stream.WriteObjectStart()
	for i := range p.entries {
		if i > 0 {
			stream.WriteMore()
		}

		e := &p.entries[i]
		stream.WriteObjectField(e.key)

		if len(e.values) == 1 {
			stream.WriteString(e.values[0])
			continue
		}

		stream.WriteArrayStart()
		for j, value := range e.values {
			if j > 0 {
				stream.WriteMore()
			}

			stream.WriteString(value)
		}
		stream.WriteArrayEnd()
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}

	return slices.Clone(stream.Buffer()), nil
}

// UnmarshalJSON replaces the contents with the entries of a JSON object in
// the shape MarshalJSON produces. Both plain string values and arrays of
// strings are accepted; keys arrive in the object's textual order.
func (p *Params) UnmarshalJSON(data []byte) error {
	it := jsonCfg.BorrowIterator(data)
	defer jsonCfg.ReturnIterator(it)

	var entries []entry

	it.ReadObjectCB(func(it *json.Iterator, key string) bool {
		if it.WhatIsNext() == json.ArrayValue {
			it.ReadArrayCB(func(it *json.Iterator) bool {
				entries = addTo(entries, key, it.ReadString())
				return true
			})
			return true
		}

		entries = addTo(entries, key, it.ReadString())
		return true
	})

	if it.Error != nil && it.Error != io.EOF {
		return it.Error
	}

	p.entries = entries

	return nil
}

func addTo(entries []entry, key, value string) []entry {
	for i := range entries {
		if entries[i].key == key {
			entries[i].values = append(entries[i].values, value)
			return entries
		}
	}

	return append(entries, entry{key: key, values: []string{value}})
}
