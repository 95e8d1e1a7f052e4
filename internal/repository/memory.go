package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/haxsysgit/coursework-backend/internal/domain"
	"github.com/haxsysgit/coursework-backend/internal/query"
)

// MemoryStore in-memory хранилище занятий и заказов с той же семантикой запросов, что и MongoStore
type MemoryStore struct {
	mu      sync.RWMutex
	lessons map[primitive.ObjectID]domain.Lesson
	orders  map[primitive.ObjectID]domain.Order
	closed  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lessons: make(map[primitive.ObjectID]domain.Lesson),
		orders:  make(map[primitive.ObjectID]domain.Order),
	}
}

// Ensure interfaces
var _ Store = (*MemoryStore)(nil)

// AddLesson кладёт занятие в каталог; пустой ID заменяется новым
func (m *MemoryStore) AddLesson(l domain.Lesson) domain.Lesson {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	m.lessons[l.ID] = l
	return l
}

func (m *MemoryStore) ListLessons(ctx context.Context, q query.Listing) ([]domain.Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	all := make([]domain.Lesson, 0, len(m.lessons))
	for _, l := range m.lessons {
		all = append(all, l)
	}
	sortLessons(all, q)
	return page(all, q.Skip, q.Limit), nil
}

func (m *MemoryStore) SearchLessons(ctx context.Context, s query.Search) ([]domain.Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([]domain.Lesson, 0)
	for _, l := range m.lessons {
		if s.Match(l) {
			out = append(out, l)
		}
	}
	// natural order of a collection scan is insertion order; ids are monotonic
	sortLessons(out, query.Listing{Sort: query.IDField})
	return out, nil
}

func (m *MemoryStore) GetLesson(ctx context.Context, id primitive.ObjectID) (*domain.Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	l, ok := m.lessons[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := l
	return &cp, nil
}

func (m *MemoryStore) UpdateLesson(ctx context.Context, id primitive.ObjectID, patch domain.LessonPatch) (*domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	l, ok := m.lessons[id]
	if !ok {
		return nil, ErrNotFound
	}
	l = patch.Apply(l)
	m.lessons[id] = l
	cp := l
	return &cp, nil
}

func (m *MemoryStore) InsertOrder(ctx context.Context, o *domain.Order) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return primitive.NilObjectID, ErrClosed
	}
	o.ID = primitive.NewObjectID()
	m.orders[o.ID] = *o
	return o.ID, nil
}

// Orders возвращает копию всех сохранённых заказов
func (m *MemoryStore) Orders() []domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *MemoryStore) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func sortLessons(ls []domain.Lesson, q query.Listing) {
	compare := func(a, b domain.Lesson) int {
		switch q.Sort {
		case "topic":
			return strings.Compare(a.Topic, b.Topic)
		case "location":
			return strings.Compare(a.Location, b.Location)
		case "price":
			return compareFloat(a.Price, b.Price)
		case "space":
			return a.Space - b.Space
		}
		return 0
	}
	sort.SliceStable(ls, func(i, j int) bool {
		c := compare(ls[i], ls[j])
		if c == 0 {
			c = strings.Compare(ls[i].ID.Hex(), ls[j].ID.Hex())
		}
		if q.Desc {
			return c > 0
		}
		return c < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func page(ls []domain.Lesson, skip, limit int64) []domain.Lesson {
	if skip >= int64(len(ls)) {
		return []domain.Lesson{}
	}
	ls = ls[skip:]
	if limit > 0 && limit < int64(len(ls)) {
		ls = ls[:limit]
	}
	return ls
}
