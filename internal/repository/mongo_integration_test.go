package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/haxsysgit/coursework-backend/internal/domain"
	"github.com/haxsysgit/coursework-backend/internal/query"
)

// newTestMongoStore подключается к MONGODB_TEST_URI и выдаёт отдельную базу на тест
func newTestMongoStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI is not set")
	}
	dbName := "lessons_test_" + primitive.NewObjectID().Hex()
	store := NewMongoStore(MongoConfig{URI: uri, Database: dbName, ConnectTimeout: 5 * time.Second}, nil)
	t.Cleanup(func() {
		ctx := context.Background()
		if db, err := store.database(ctx); err == nil {
			_ = db.Drop(ctx)
		}
		_ = store.Close(ctx)
	})
	return store
}

func insertLessons(t *testing.T, store *MongoStore, lessons ...domain.Lesson) []domain.Lesson {
	t.Helper()
	ctx := context.Background()
	coll, err := store.collection(ctx, lessonsCollection)
	require.NoError(t, err)
	for i := range lessons {
		lessons[i].ID = primitive.NewObjectID()
		_, err := coll.InsertOne(ctx, lessons[i])
		require.NoError(t, err)
	}
	return lessons
}

func TestMongoStore_ListSearchUpdate(t *testing.T) {
	store := newTestMongoStore(t)
	ctx := context.Background()
	ls := insertLessons(t, store,
		domain.Lesson{Topic: "Math", Location: "Hendon", Price: 100, Space: 5},
		domain.Lesson{Topic: "English", Location: "Colindale", Price: 80, Space: 3},
		domain.Lesson{Topic: "Music", Location: "Brent Cross", Price: 120.5, Space: 0},
	)

	list, err := store.ListLessons(ctx, query.ParseListing(query.ListingParams{Sort: "price", Order: "DESC", Limit: "2"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Music", "Math"}, topics(list))

	s, _ := query.ParseSearch("120.5")
	list, err = store.SearchLessons(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Music"}, topics(list))

	s, _ = query.ParseSearch("m.th")
	list, err = store.SearchLessons(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, list)

	space := 9
	updated, err := store.UpdateLesson(ctx, ls[1].ID, domain.LessonPatch{Space: &space})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Space)
	assert.Equal(t, ls[1].ID, updated.ID)

	_, err = store.UpdateLesson(ctx, primitive.NewObjectID(), domain.LessonPatch{Space: &space})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoStore_InsertOrderKeepsNativeRefTypes(t *testing.T) {
	store := newTestMongoStore(t)
	ctx := context.Background()
	lessonID := primitive.NewObjectID()

	o := domain.Order{
		Name:      "Jane Doe",
		Phone:     "12345",
		LessonIDs: []domain.LessonRef{domain.RefFromString(lessonID.Hex()), domain.RefFromString("legacy-id")},
		Space:     2,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	id, err := store.InsertOrder(ctx, &o)
	require.NoError(t, err)

	coll, err := store.collection(ctx, ordersCollection)
	require.NoError(t, err)
	var raw bson.Raw
	require.NoError(t, coll.FindOne(ctx, bson.M{"_id": id}).Decode(&raw))

	values, err := raw.Lookup("lessonIDs").Array().Values()
	require.NoError(t, err)
	assert.Equal(t, bson.TypeObjectID, values[0].Type)
	assert.Equal(t, bson.TypeString, values[1].Type)
	assert.Equal(t, bson.TypeDouble, raw.Lookup("space").Type)
	_, err = raw.LookupErr("items")
	assert.Error(t, err)
}

func TestMongoStore_ConcurrentFirstUseSharesOneClient(t *testing.T) {
	store := newTestMongoStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Ping(ctx))
		}()
	}
	wg.Wait()

	first := store.client
	require.NoError(t, store.Ping(ctx))
	assert.Same(t, first, store.client)

	require.NoError(t, store.Close(ctx))
	require.NoError(t, store.Close(ctx))
	assert.ErrorIs(t, store.Ping(ctx), ErrClosed)
}

func TestMongoStore_UnreachableDoesNotCacheFailure(t *testing.T) {
	store := NewMongoStore(MongoConfig{URI: "mongodb://127.0.0.1:1", Database: "x", ConnectTimeout: 200 * time.Millisecond}, nil)
	defer store.Close(context.Background())

	assert.Error(t, store.Ping(context.Background()))
	assert.Nil(t, store.db.Load())
	assert.Error(t, store.Ping(context.Background()))
}
