// Package query строит параметры выборки каталога: пагинацию, сортировку и поиск.
// Все функции чистые и никогда не возвращают ошибку: некорректный ввод
// сводится к ближайшему безопасному значению по умолчанию.
package query

import (
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultLimit = 50
	MinLimit     = 1
	MaxLimit     = 100

	// IDField первичный ключ документа, сортировка по умолчанию
	IDField = "_id"
)

var sortable = map[string]struct{}{
	"topic":    {},
	"location": {},
	"price":    {},
	"space":    {},
	IDField:    {},
}

// ListingParams сырые параметры строки запроса
type ListingParams struct {
	Limit string
	Skip  string
	Sort  string
	Order string
}

// Listing нормализованные параметры выдачи списка занятий
type Listing struct {
	Limit int64
	Skip  int64
	Sort  string
	Desc  bool
}

// ParseListing приводит сырые параметры к безопасной выборке
func ParseListing(p ListingParams) Listing {
	l := Listing{Limit: DefaultLimit, Sort: IDField}

	if n, ok := parseNumber(p.Limit); ok {
		l.Limit = clamp(n, MinLimit, MaxLimit)
	}
	if n, ok := parseNumber(p.Skip); ok && n > 0 {
		l.Skip = n
	}
	if _, ok := sortable[p.Sort]; ok {
		l.Sort = p.Sort
	}
	l.Desc = strings.ToLower(p.Order) == "desc"
	return l
}

// Direction возвращает 1 или -1 в нотации сортировки документного хранилища
func (l Listing) Direction() int {
	if l.Desc {
		return -1
	}
	return 1
}

// SortSpec спецификация сортировки. При сортировке не по ключу добавляется
// вторичная сортировка по _id, чтобы страницы не пересекались.
func (l Listing) SortSpec() bson.D {
	spec := bson.D{{Key: l.Sort, Value: l.Direction()}}
	if l.Sort != IDField {
		spec = append(spec, bson.E{Key: IDField, Value: l.Direction()})
	}
	return spec
}

func parseNumber(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, true
	}
	if f < math.MinInt32 {
		return math.MinInt32, true
	}
	return int64(f), true
}

func clamp(n, lo, hi int64) int64 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
