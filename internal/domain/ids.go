package domain

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID переводит внешний идентификатор в ObjectID.
// Никогда не паникует и не возвращает ошибку: некорректная строка даёт ok == false.
func ParseID(raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// LessonRef ссылка на занятие внутри заказа: ObjectID, если строка разобралась,
// иначе исходная строка как есть.
type LessonRef struct {
	ID         primitive.ObjectID
	Raw        string
	IsObjectID bool
}

// RefFromString строит ссылку, откатываясь к исходной строке при неудачном разборе
func RefFromString(raw string) LessonRef {
	if id, ok := ParseID(raw); ok {
		return LessonRef{ID: id, IsObjectID: true}
	}
	return LessonRef{Raw: raw}
}

// Resolved сообщает, что ссылка хранит ObjectID
func (r LessonRef) Resolved() bool { return r.IsObjectID }

func (r LessonRef) String() string {
	if r.Resolved() {
		return r.ID.Hex()
	}
	return r.Raw
}

func (r LessonRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *LessonRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = RefFromString(s)
	return nil
}

// MarshalBSONValue пишет ObjectID или строку, чтобы в документе хранился нативный тип
func (r LessonRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if r.Resolved() {
		return bson.MarshalValue(r.ID)
	}
	return bson.MarshalValue(r.Raw)
}

func (r *LessonRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		*r = LessonRef{ID: raw.ObjectID(), IsObjectID: true}
	case bsontype.String:
		*r = LessonRef{Raw: raw.StringValue()}
	case bsontype.Null, bsontype.Undefined:
		*r = LessonRef{}
	default:
		return fmt.Errorf("lesson ref: unsupported bson type %s", t)
	}
	return nil
}
