// Package model defines data shared between the report engine, the daemon and the exporters.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Blob is a decoded daemon JSON object (getblockheader, getblockstats).
// Numbers are kept as json.Number so raw output preserves their native form.
type Blob map[string]any

// DecodeBlob decodes a JSON object keeping numbers as json.Number.
func DecodeBlob(raw []byte) (Blob, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var b Blob
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decode blob: %w", err)
	}
	if b == nil {
		return nil, fmt.Errorf("decode blob: null object")
	}
	return b, nil
}

// Lookup returns the value stored at key, indexing into an array value when index >= 0.
func (b Blob) Lookup(key string, index int) (any, bool) {
	v, ok := b[key]
	if !ok || v == nil {
		return nil, false
	}
	if index < 0 {
		return v, true
	}
	arr, ok := v.([]any)
	if !ok || index >= len(arr) {
		return nil, false
	}
	return arr[index], true
}

// Int64 returns an integer value stored at key.
func (b Blob) Int64(key string) (int64, bool) {
	v, ok := b.Lookup(key, -1)
	if !ok {
		return 0, false
	}
	n, err := ToInt64(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float64 returns a numeric value stored at key.
func (b Blob) Float64(key string) (float64, bool) {
	v, ok := b.Lookup(key, -1)
	if !ok {
		return 0, false
	}
	f, err := ToFloat64(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String returns a string value stored at key.
func (b Blob) String(key string) (string, bool) {
	v, ok := b.Lookup(key, -1)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ToInt64 converts the numeric representations found in blobs and local values.
func ToInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return int64(f), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("value %v of type %T is not numeric", v, v)
	}
}

// ToFloat64 converts the numeric representations found in blobs and local values.
func ToFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("value %v of type %T is not numeric", v, v)
	}
}
