package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lesson представляет занятие в каталоге
type Lesson struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Topic    string             `json:"topic" bson:"topic"`
	Location string             `json:"location" bson:"location"`
	Price    float64            `json:"price" bson:"price"`
	Space    int                `json:"space" bson:"space"`
	Image    string             `json:"image,omitempty" bson:"image,omitempty"`
}

// LessonPatch частичное обновление занятия. Идентификатор не входит в патч и не меняется.
type LessonPatch struct {
	Topic    *string
	Location *string
	Price    *float64
	Space    *int
	Image    *string
}

// Empty сообщает, что в патче нет ни одного поля
func (p LessonPatch) Empty() bool {
	return p.Topic == nil && p.Location == nil && p.Price == nil && p.Space == nil && p.Image == nil
}

// Apply применяет патч к копии занятия
func (p LessonPatch) Apply(l Lesson) Lesson {
	if p.Topic != nil {
		l.Topic = *p.Topic
	}
	if p.Location != nil {
		l.Location = *p.Location
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Space != nil {
		l.Space = *p.Space
	}
	if p.Image != nil {
		l.Image = *p.Image
	}
	return l
}

// OrderShape форма сохранённого заказа
type OrderShape string

const (
	OrderShapeItemized OrderShape = "itemized"
	OrderShapeBatch    OrderShape = "batch"
)

// OrderItem позиция в заказе
type OrderItem struct {
	LessonID LessonRef `json:"lessonId" bson:"lessonId"`
	Space    float64   `json:"space" bson:"space"`
}

// Order сущность заказа. Заполнена ровно одна форма: Items либо LessonIDs вместе со Space.
type Order struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Phone     string             `json:"phone" bson:"phone"`
	Items     []OrderItem        `json:"items,omitempty" bson:"items,omitempty"`
	LessonIDs []LessonRef        `json:"lessonIDs,omitempty" bson:"lessonIDs,omitempty"`
	Space     float64            `json:"space,omitempty" bson:"space,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Shape возвращает форму заказа
func (o Order) Shape() OrderShape {
	if len(o.Items) > 0 {
		return OrderShapeItemized
	}
	return OrderShapeBatch
}
