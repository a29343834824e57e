// Package patch distingue "campo ausente" de "campo en null" en payloads JSON.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field se usa en requests de update: Present indica que la key vino en el
// body y Null que vino explícitamente como null.
type Field[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Present = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// Set indica presencia con valor no nulo.
func (f Field[T]) Set() bool { return f.Present && !f.Null }

// Ptr devuelve nil si el campo no trae valor.
func (f Field[T]) Ptr() *T {
	if !f.Set() {
		return nil
	}
	v := f.Value
	return &v
}

// Of construye un Field presente (útil en clientes y tests).
func Of[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

// Null construye un Field presente en null.
func Null[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.Null || !f.Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func (f Field[T]) IsZero() bool { return !f.Present }
