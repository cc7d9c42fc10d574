// Package patch distingue en un PATCH/PUT parcial entre campo ausente,
// campo en null y campo con valor.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field es un campo opcional de un body parcial.
// Set=false: no vino. Set=true && Null=true: vino null. Si no, Value.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Value construye un Field presente con valor (útil en tests y servicios).
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null construye un Field presente en null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(b, &f.Value)
}

// HasValue indica que vino un valor no-null.
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// Ptr devuelve el valor como puntero (nil si vino null).
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.Value
	return &v
}

// Apply escribe el cambio sobre un campo anulable.
func (f Field[T]) Apply(dst **T) {
	if !f.Set {
		return
	}
	*dst = f.Ptr()
}

// ApplyValue escribe el cambio sobre un campo no anulable; null se ignora.
func (f Field[T]) ApplyValue(dst *T) {
	if f.HasValue() {
		*dst = f.Value
	}
}
