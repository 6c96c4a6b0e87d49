package repository

import (
	"context"

	"app/internal/domain/model"
)

type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	ListFeatured(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	ReviewsByProductID(ctx context.Context, id int64) ([]model.Review, error)
}
