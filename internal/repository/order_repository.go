package repository

import (
	"context"

	"app/internal/domain/model"
)

// 注文はドキュメントDBに委譲する。並びは常に作成日時の降順。
type OrderRepository interface {
	Save(ctx context.Context, order model.Order) (string, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	FindByOrderID(ctx context.Context, orderID string) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	Delete(ctx context.Context, orderID string) error
}
