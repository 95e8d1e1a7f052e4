package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/haxsysgit/coursework-backend/internal/domain"
	"github.com/haxsysgit/coursework-backend/internal/query"
)

var (
	// ErrNotFound возвращается, когда сущность не найдена
	ErrNotFound = errors.New("not found")
	// ErrClosed возвращается после закрытия хранилища
	ErrClosed = errors.New("storage closed")
)

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	ListLessons(ctx context.Context, q query.Listing) ([]domain.Lesson, error)
	SearchLessons(ctx context.Context, s query.Search) ([]domain.Lesson, error)
	GetLesson(ctx context.Context, id primitive.ObjectID) (*domain.Lesson, error)
	// UpdateLesson безусловно выставляет поля патча (last write wins) и возвращает документ после записи
	UpdateLesson(ctx context.Context, id primitive.ObjectID, patch domain.LessonPatch) (*domain.Lesson, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	// InsertOrder сохраняет заказ, проставляет o.ID и возвращает его
	InsertOrder(ctx context.Context, o *domain.Order) (primitive.ObjectID, error)
}

// Pinger проверка доступности хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store полный набор операций хранилища, которым владеет приложение
type Store interface {
	LessonRepository
	OrderRepository
	Pinger
	Close(ctx context.Context) error
}
