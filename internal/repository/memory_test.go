package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/haxsysgit/coursework-backend/internal/domain"
	"github.com/haxsysgit/coursework-backend/internal/query"
)

func seed(t *testing.T, store *MemoryStore) []domain.Lesson {
	t.Helper()
	lessons := []domain.Lesson{
		{Topic: "Math", Location: "Hendon", Price: 100, Space: 5},
		{Topic: "English", Location: "Colindale", Price: 80, Space: 3},
		{Topic: "Music", Location: "Brent Cross", Price: 120.5, Space: 0},
	}
	for i := range lessons {
		lessons[i] = store.AddLesson(lessons[i])
	}
	return lessons
}

func TestMemoryStore_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ls := seed(t, store)

	got, err := store.GetLesson(ctx, ls[0].ID)
	require.NoError(t, err)
	assert.Equal(t, ls[0], *got)

	space := 2
	updated, err := store.UpdateLesson(ctx, ls[0].ID, domain.LessonPatch{Space: &space})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Space)
	assert.Equal(t, ls[0].ID, updated.ID)
	assert.Equal(t, "Math", updated.Topic)

	_, err = store.GetLesson(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.UpdateLesson(ctx, primitive.NewObjectID(), domain.LessonPatch{Space: &space})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListSortAndPage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store)

	list, err := store.ListLessons(ctx, query.ParseListing(query.ListingParams{Sort: "price", Order: "desc"}))
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Music", "Math", "English"}, topics(list))

	list, err = store.ListLessons(ctx, query.ParseListing(query.ListingParams{Sort: "topic", Limit: "2"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"English", "Math"}, topics(list))

	list, err = store.ListLessons(ctx, query.ParseListing(query.ListingParams{Sort: "topic", Skip: "2"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Music"}, topics(list))

	list, err = store.ListLessons(ctx, query.ParseListing(query.ListingParams{Skip: "10"}))
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestMemoryStore_Search(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store)

	search := func(term string) []string {
		s, ok := query.ParseSearch(term)
		require.True(t, ok)
		list, err := store.SearchLessons(ctx, s)
		require.NoError(t, err)
		return topics(list)
	}

	assert.Equal(t, []string{"Math", "Music"}, search("m"))
	assert.Equal(t, []string{"English"}, search("COLIN"))
	assert.Equal(t, []string{"Music"}, search("120.5"))
	assert.Equal(t, []string{"English"}, search("3"))
	assert.Empty(t, search("Math."))
}

func TestMemoryStore_InsertOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	o := domain.Order{Name: "Jane", Phone: "1", LessonIDs: []domain.LessonRef{domain.RefFromString("x")}, Space: 1, CreatedAt: time.Now()}
	id, err := store.InsertOrder(ctx, &o)
	require.NoError(t, err)
	assert.False(t, id.IsZero())
	assert.Equal(t, id, o.ID)
	require.Len(t, store.Orders(), 1)
	assert.Equal(t, o, store.Orders()[0])
}

func TestMemoryStore_Closed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Close(ctx))

	assert.ErrorIs(t, store.Ping(ctx), ErrClosed)
	_, err := store.ListLessons(ctx, query.ParseListing(query.ListingParams{}))
	assert.ErrorIs(t, err, ErrClosed)
}

func topics(ls []domain.Lesson) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Topic)
	}
	return out
}
