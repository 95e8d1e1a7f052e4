package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/haxsysgit/coursework-backend/internal/domain"
	"github.com/haxsysgit/coursework-backend/internal/query"
	"github.com/haxsysgit/coursework-backend/internal/repository"
)

// spyLessons считает обращения к хранилищу поверх MemoryStore
type spyLessons struct {
	*repository.MemoryStore
	searches int
	updates  int
}

func (s *spyLessons) SearchLessons(ctx context.Context, q query.Search) ([]domain.Lesson, error) {
	s.searches++
	return s.MemoryStore.SearchLessons(ctx, q)
}

func (s *spyLessons) UpdateLesson(ctx context.Context, id primitive.ObjectID, p domain.LessonPatch) (*domain.Lesson, error) {
	s.updates++
	return s.MemoryStore.UpdateLesson(ctx, id, p)
}

func setupLessons(t *testing.T) (*LessonService, *spyLessons, domain.Lesson) {
	t.Helper()
	spy := &spyLessons{MemoryStore: repository.NewMemoryStore()}
	l := spy.AddLesson(domain.Lesson{Topic: "Math", Location: "Hendon", Price: 100, Space: 5})
	spy.AddLesson(domain.Lesson{Topic: "Art", Location: "Golders Green", Price: 90, Space: 4})
	return NewLessonService(spy), spy, l
}

func decodeUpdate(t *testing.T, body string) LessonUpdate {
	t.Helper()
	var u LessonUpdate
	require.NoError(t, json.Unmarshal([]byte(body), &u))
	return u
}

func TestLessonService_List(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupLessons(t)

	list, err := svc.List(ctx, query.ListingParams{Sort: "topic"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Art", list[0].Topic)

	list, err = svc.List(ctx, query.ListingParams{Limit: "0"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLessonService_SearchBlankSkipsStorage(t *testing.T) {
	ctx := context.Background()
	svc, spy, _ := setupLessons(t)

	list, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Equal(t, 0, spy.searches)

	list, err = svc.Search(ctx, "hen")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, spy.searches)
}

func TestLessonService_Get(t *testing.T) {
	ctx := context.Background()
	svc, _, l := setupLessons(t)

	got, err := svc.Get(ctx, l.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, l, *got)

	_, err = svc.Get(ctx, "nope")
	assert.Equal(t, ErrInvalidID, err)

	_, err = svc.Get(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLessonService_UpdateSpace(t *testing.T) {
	ctx := context.Background()
	svc, spy, l := setupLessons(t)

	got, err := svc.Update(ctx, l.ID.Hex(), decodeUpdate(t, `{"space": "3"}`))
	require.NoError(t, err)
	assert.Equal(t, 3, got.Space)
	assert.Equal(t, "Math", got.Topic)
	assert.Equal(t, 1, spy.updates)
}

func TestLessonService_UpdateRejectsBeforeWrite(t *testing.T) {
	ctx := context.Background()
	svc, spy, l := setupLessons(t)

	cases := []struct {
		body string
		err  error
	}{
		{`{"space": "lots"}`, ErrSpaceNotNumber},
		{`{"space": true}`, ErrSpaceNotNumber},
		{`{"space": -1}`, ErrSpaceNotInteger},
		{`{"space": 1.5}`, ErrSpaceNotInteger},
		{`{"price": "free"}`, ErrPriceNotNumber},
	}
	for _, tt := range cases {
		_, err := svc.Update(ctx, l.ID.Hex(), decodeUpdate(t, tt.body))
		assert.Equal(t, tt.err, err, tt.body)
	}
	assert.Equal(t, 0, spy.updates)

	_, err := svc.Update(ctx, "bad", decodeUpdate(t, `{"space": 1}`))
	assert.Equal(t, ErrInvalidID, err)
	assert.Equal(t, 0, spy.updates)

	stored, _ := spy.GetLesson(ctx, l.ID)
	assert.Equal(t, l, *stored)
}

func TestLessonService_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	svc, spy, l := setupLessons(t)

	_, err := svc.Update(ctx, primitive.NewObjectID().Hex(), decodeUpdate(t, `{"space": 1}`))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	stored, _ := spy.GetLesson(ctx, l.ID)
	assert.Equal(t, l, *stored)
}

func TestLessonService_UpdateIgnoresIdentifier(t *testing.T) {
	ctx := context.Background()
	svc, _, l := setupLessons(t)
	other := primitive.NewObjectID()

	got, err := svc.Update(ctx, l.ID.Hex(), decodeUpdate(t, `{"_id": "`+other.Hex()+`", "topic": "Algebra"}`))
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)
	assert.Equal(t, "Algebra", got.Topic)
}

func TestLessonService_EmptyUpdateReturnsCurrent(t *testing.T) {
	ctx := context.Background()
	svc, spy, l := setupLessons(t)

	got, err := svc.Update(ctx, l.ID.Hex(), decodeUpdate(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, l, *got)
	assert.Equal(t, 0, spy.updates)
}
