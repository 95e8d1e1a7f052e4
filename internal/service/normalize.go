package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/haxsysgit/coursework-backend/internal/domain"
	"github.com/haxsysgit/coursework-backend/internal/validation"
)

// OrderItemPayload позиция заказа в том виде, в каком её присылают клиенты.
// Ссылка на занятие берётся из первого непустого поля: lessonId, lessonID, id.
type OrderItemPayload struct {
	LessonId domain.Text   `json:"lessonId"`
	LessonID domain.Text   `json:"lessonID"`
	ID       domain.Text   `json:"id"`
	Space    domain.Number `json:"space"`
}

func (p OrderItemPayload) ref() domain.LessonRef {
	for _, t := range []domain.Text{p.LessonId, p.LessonID, p.ID} {
		if t.Present && t.Value != "" {
			return domain.RefFromString(t.Value)
		}
	}
	return domain.LessonRef{}
}

// OrderPayload тело POST /orders: позиционный заказ (items) или пакетный (lessonIDs + space)
type OrderPayload struct {
	Name      domain.Text                   `json:"name"`
	Phone     domain.Text                   `json:"phone"`
	Items     domain.List[OrderItemPayload] `json:"items"`
	LessonIDs domain.List[domain.Text]      `json:"lessonIDs"`
	Space     domain.Number                 `json:"space"`
}

// UnmarshalJSON принимает любое корректное JSON-значение: тело, которое не является
// объектом, даёт пустой payload и отклоняется проверкой контактов.
func (p *OrderPayload) UnmarshalJSON(b []byte) error {
	type plain OrderPayload
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return err
		}
		v = plain{}
	}
	*p = OrderPayload(v)
	return nil
}

// NormalizeOrder приводит тело заказа к одной из двух сохраняемых форм.
// Порядок проверок: контакты, затем items (имеют приоритет), затем lessonIDs со space.
func NormalizeOrder(p OrderPayload, now time.Time) (domain.Order, error) {
	if !validation.CheckContact(p.Name, p.Phone).OK() {
		return domain.Order{}, ErrInvalidContact
	}
	o := domain.Order{
		Name:      p.Name.Value,
		Phone:     p.Phone.Value,
		CreatedAt: now,
	}

	switch {
	case p.Items.Len() > 0:
		items := make([]domain.OrderItem, 0, p.Items.Len())
		for _, it := range p.Items.Values {
			if !it.Space.Positive() {
				return domain.Order{}, ErrItemSpace
			}
			items = append(items, domain.OrderItem{LessonID: it.ref(), Space: it.Space.Value})
		}
		o.Items = items
	case p.LessonIDs.Len() > 0 && p.Space.Present:
		if !p.Space.Positive() {
			return domain.Order{}, ErrBatchSpace
		}
		refs := make([]domain.LessonRef, 0, p.LessonIDs.Len())
		for _, id := range p.LessonIDs.Values {
			refs = append(refs, domain.RefFromString(id.Value))
		}
		o.LessonIDs = refs
		o.Space = p.Space.Value
	default:
		return domain.Order{}, ErrOrderShape
	}
	return o, nil
}
