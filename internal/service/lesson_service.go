package service

import (
	"context"
	"math"

	"github.com/haxsysgit/coursework-backend/internal/domain"
	"github.com/haxsysgit/coursework-backend/internal/query"
	"github.com/haxsysgit/coursework-backend/internal/repository"
)

// LessonService инкапсулирует чтение каталога и частичное обновление занятий
type LessonService struct {
	repo repository.LessonRepository
}

func NewLessonService(repo repository.LessonRepository) *LessonService {
	return &LessonService{repo: repo}
}

// List возвращает страницу каталога
func (s *LessonService) List(ctx context.Context, p query.ListingParams) ([]domain.Lesson, error) {
	return s.repo.ListLessons(ctx, query.ParseListing(p))
}

// Search ищет по подстроке; пустой запрос возвращает пустой список без обращения к хранилищу
func (s *LessonService) Search(ctx context.Context, term string) ([]domain.Lesson, error) {
	q, ok := query.ParseSearch(term)
	if !ok {
		return []domain.Lesson{}, nil
	}
	return s.repo.SearchLessons(ctx, q)
}

func (s *LessonService) Get(ctx context.Context, rawID string) (*domain.Lesson, error) {
	id, ok := domain.ParseID(rawID)
	if !ok {
		return nil, ErrInvalidID
	}
	return s.repo.GetLesson(ctx, id)
}

// LessonUpdate тело PUT /lessons/:id. Поля _id/id не декодируются вовсе,
// поэтому идентификатор занятия изменить нельзя.
type LessonUpdate struct {
	Topic    *string       `json:"topic"`
	Location *string       `json:"location"`
	Price    domain.Number `json:"price"`
	Space    domain.Number `json:"space"`
	Image    *string       `json:"image"`
}

// Patch проверяет числовые поля и строит патч. Ошибка означает, что запись не выполняется.
func (u LessonUpdate) Patch() (domain.LessonPatch, error) {
	patch := domain.LessonPatch{Topic: u.Topic, Location: u.Location, Image: u.Image}
	if u.Space.Present {
		if !u.Space.Finite() {
			return domain.LessonPatch{}, ErrSpaceNotNumber
		}
		if u.Space.Value < 0 || u.Space.Value != math.Trunc(u.Space.Value) || u.Space.Value > math.MaxInt32 {
			return domain.LessonPatch{}, ErrSpaceNotInteger
		}
		space := int(u.Space.Value)
		patch.Space = &space
	}
	if u.Price.Present {
		if !u.Price.Finite() {
			return domain.LessonPatch{}, ErrPriceNotNumber
		}
		price := u.Price.Value
		patch.Price = &price
	}
	return patch, nil
}

// Update применяет частичное обновление. Запись безусловная: при гонке двух
// обновлений space побеждает последнее.
func (s *LessonService) Update(ctx context.Context, rawID string, u LessonUpdate) (*domain.Lesson, error) {
	id, ok := domain.ParseID(rawID)
	if !ok {
		return nil, ErrInvalidID
	}
	patch, err := u.Patch()
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.repo.GetLesson(ctx, id)
	}
	return s.repo.UpdateLesson(ctx, id, patch)
}
