package models

import (
	"bytes"
	"encoding/json"
)

// Nullable tells an absent field apart from an explicit null in a partial
// update. Set is true whenever the key was present in the body.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// IsNull reports a field that was sent as null.
func (n Nullable[T]) IsNull() bool {
	return n.Set && n.Value == nil
}

// UnmarshalJSON only runs for keys present in the body.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
