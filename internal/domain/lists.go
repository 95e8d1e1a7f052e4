package domain

import (
	"bytes"
	"encoding/json"
)

// List массив во входящем JSON. Значение, которое не является массивом, помечается
// IsArray == false и не ломает разбор тела. Элемент, который не декодируется в T,
// остаётся нулевым значением T.
type List[T any] struct {
	Values  []T
	Present bool
	IsArray bool
}

func (l *List[T]) UnmarshalJSON(b []byte) error {
	*l = List[T]{}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		return nil
	}
	l.Present = true

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	l.IsArray = true
	l.Values = make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			var zero T
			v = zero
		}
		l.Values = append(l.Values, v)
	}
	return nil
}

// Len количество элементов; для не-массива 0
func (l List[T]) Len() int { return len(l.Values) }
