// Package orderedjson writes JSON objects whose member order is fixed by the
// caller instead of sorted by key.
package orderedjson

import (
	"bytes"
	"encoding/json"
)

// Marshal writes n members as a JSON object in index order.
// member returns the key and the value of the i-th member.
func Marshal(n int, member func(i int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, v := member(i)
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
