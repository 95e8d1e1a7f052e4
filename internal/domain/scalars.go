package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

// Number числовое поле входящего JSON. Клиенты присылают числа и строками ("2"),
// поэтому значение приводится к float64; всё, что не приводится к конечному числу,
// помечается как невалидное, а не ломает разбор тела запроса.
type Number struct {
	Value   float64
	Present bool
	Valid   bool
}

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		return nil
	}
	n.Present = true

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.Value, n.Valid = f, true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, ok := parseFinite(s); ok {
			n.Value, n.Valid = f, true
		}
	}
	return nil
}

// Finite сообщает, что значение задано и является конечным числом
func (n Number) Finite() bool { return n.Present && n.Valid }

// Positive сообщает, что значение задано и строго больше нуля
func (n Number) Positive() bool { return n.Finite() && n.Value > 0 }

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Text строковое поле входящего JSON. Не-строковые скаляры не ломают разбор:
// их литерал сохраняется в Value, а IsString остаётся false.
type Text struct {
	Value    string
	Present  bool
	IsString bool
}

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text{}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		return nil
	}
	t.Present = true
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		t.Value, t.IsString = s, true
		return nil
	}
	t.Value = string(b)
	return nil
}

// String возвращает строковое значение; для не-строк и отсутствующих полей пусто
func (t Text) String() string {
	if !t.IsString {
		return ""
	}
	return t.Value
}
