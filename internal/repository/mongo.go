package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/haxsysgit/coursework-backend/internal/domain"
	"github.com/haxsysgit/coursework-backend/internal/query"
)

const (
	lessonsCollection = "lessons"
	ordersCollection  = "orders"
)

// MongoConfig параметры подключения к MongoDB
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// MongoStore хранилище поверх MongoDB.
// Соединение устанавливается лениво первым обратившимся запросом и переиспользуется
// до Close; неудачная попытка не кэшируется, следующий запрос попробует снова.
type MongoStore struct {
	cfg    MongoConfig
	logger *log.Entry

	db        atomic.Pointer[mongo.Database]
	mu        sync.Mutex
	client    *mongo.Client
	closed    bool
	closeOnce sync.Once
}

func NewMongoStore(cfg MongoConfig, logger *log.Entry) *MongoStore {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.WithField("component", "mongo")
	}
	return &MongoStore{cfg: cfg, logger: logger}
}

// Ensure interfaces
var _ Store = (*MongoStore)(nil)

// database возвращает общий хэндл, устанавливая соединение при первом вызове
func (s *MongoStore) database(ctx context.Context) (*mongo.Database, error) {
	if db := s.db.Load(); db != nil {
		return db, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if db := s.db.Load(); db != nil {
		return db, nil
	}
	if s.closed {
		return nil, ErrClosed
	}

	connectCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(s.cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s.client = client
	db := client.Database(s.cfg.Database)
	s.db.Store(db)
	s.logger.WithField("database", s.cfg.Database).Info("connected to mongodb")
	return db, nil
}

func (s *MongoStore) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

func (s *MongoStore) ListLessons(ctx context.Context, q query.Listing) ([]domain.Lesson, error) {
	coll, err := s.collection(ctx, lessonsCollection)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(q.SortSpec()).
		SetSkip(q.Skip).
		SetLimit(q.Limit)
	return findLessons(ctx, coll, bson.M{}, opts)
}

func (s *MongoStore) SearchLessons(ctx context.Context, sq query.Search) ([]domain.Lesson, error) {
	coll, err := s.collection(ctx, lessonsCollection)
	if err != nil {
		return nil, err
	}
	return findLessons(ctx, coll, sq.Filter(), options.Find())
}

func findLessons(ctx context.Context, coll *mongo.Collection, filter any, opts *options.FindOptions) ([]domain.Lesson, error) {
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find lessons: %w", err)
	}
	out := make([]domain.Lesson, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode lessons: %w", err)
	}
	return out, nil
}

func (s *MongoStore) GetLesson(ctx context.Context, id primitive.ObjectID) (*domain.Lesson, error) {
	coll, err := s.collection(ctx, lessonsCollection)
	if err != nil {
		return nil, err
	}
	var l domain.Lesson
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return &l, nil
}

func (s *MongoStore) UpdateLesson(ctx context.Context, id primitive.ObjectID, patch domain.LessonPatch) (*domain.Lesson, error) {
	set := patchSet(patch)
	if len(set) == 0 {
		return s.GetLesson(ctx, id)
	}
	coll, err := s.collection(ctx, lessonsCollection)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var l domain.Lesson
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	return &l, nil
}

// patchSet переводит патч в $set; _id туда не попадает никогда
func patchSet(p domain.LessonPatch) bson.M {
	set := bson.M{}
	if p.Topic != nil {
		set["topic"] = *p.Topic
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Space != nil {
		set["space"] = *p.Space
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	return set
}

func (s *MongoStore) InsertOrder(ctx context.Context, o *domain.Order) (primitive.ObjectID, error) {
	coll, err := s.collection(ctx, ordersCollection)
	if err != nil {
		return primitive.NilObjectID, err
	}
	o.ID = primitive.NilObjectID
	res, err := coll.InsertOne(ctx, o)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert order: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert order: unexpected id type %T", res.InsertedID)
	}
	o.ID = id
	return id, nil
}

// Ping выполняет команду ping на целевой базе
func (s *MongoStore) Ping(ctx context.Context) error {
	db, err := s.database(ctx)
	if err != nil {
		return err
	}
	return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Close закрывает соединение ровно один раз; повторные вызовы ничего не делают
func (s *MongoStore) Close(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.closed = true
		s.db.Store(nil)
		if s.client == nil {
			return
		}
		err = s.client.Disconnect(ctx)
		s.client = nil
		s.logger.Info("mongodb connection closed")
	})
	return err
}
