package query

import (
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/haxsysgit/coursework-backend/internal/domain"
)

const regexMeta = `.*+?^${}()|[]\`

// EscapeRegex экранирует метасимволы . * + ? ^ $ { } ( ) | [ ] \ так,
// что строка совпадает только буквально
func EscapeRegex(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(regexMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Search поиск подстроки по topic, location и строковому виду price и space
type Search struct {
	Term    string
	Pattern string
	re      *regexp.Regexp
}

// ParseSearch готовит поиск. ok == false для пустого или пробельного запроса:
// в этом случае хранилище не опрашивается.
func ParseSearch(term string) (Search, bool) {
	if strings.TrimSpace(term) == "" {
		return Search{}, false
	}
	pattern := EscapeRegex(term)
	return Search{
		Term:    term,
		Pattern: pattern,
		re:      regexp.MustCompile("(?i)" + pattern),
	}, true
}

// Filter фильтр документного хранилища: совпадение по любому из четырёх полей
func (s Search) Filter() bson.M {
	re := primitive.Regex{Pattern: s.Pattern, Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"topic": re},
		bson.M{"location": re},
		numericMatch("price", s.Pattern),
		numericMatch("space", s.Pattern),
	}}
}

func numericMatch(field, pattern string) bson.M {
	return bson.M{"$expr": bson.M{"$regexMatch": bson.M{
		"input":   bson.M{"$toString": "$" + field},
		"regex":   pattern,
		"options": "i",
	}}}
}

// Match та же логика, что и Filter, для хранилищ без собственного движка запросов
func (s Search) Match(l domain.Lesson) bool {
	if s.re == nil {
		return false
	}
	return s.re.MatchString(l.Topic) ||
		s.re.MatchString(l.Location) ||
		s.re.MatchString(strconv.FormatFloat(l.Price, 'f', -1, 64)) ||
		s.re.MatchString(strconv.Itoa(l.Space))
}
