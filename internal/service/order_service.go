package service

import (
	"context"
	"time"

	"github.com/haxsysgit/coursework-backend/internal/domain"
	"github.com/haxsysgit/coursework-backend/internal/repository"
)

// OrderRecorder учитывает принятые заказы (метрики)
type OrderRecorder interface {
	RecordOrder(shape domain.OrderShape)
}

// OrderService принимает заказы. Заказ не уменьшает space занятий:
// вместимость меняется отдельным PUT /lessons/:id от клиента.
type OrderService struct {
	orders   repository.OrderRepository
	recorder OrderRecorder
	now      func() time.Time
}

func NewOrderService(orders repository.OrderRepository, recorder OrderRecorder) *OrderService {
	return &OrderService{
		orders:   orders,
		recorder: recorder,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder нормализует и сохраняет заказ
func (s *OrderService) CreateOrder(ctx context.Context, p OrderPayload) (*domain.Order, error) {
	o, err := NormalizeOrder(p, s.now())
	if err != nil {
		return nil, err
	}
	if _, err := s.orders.InsertOrder(ctx, &o); err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.RecordOrder(o.Shape())
	}
	return &o, nil
}
