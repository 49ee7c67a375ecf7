package catalog

import "context"

type StoreAPI interface {
	ListStandards(ctx context.Context, includeInactive bool) ([]Standard, error)
	GetStandard(ctx context.Context, id int64) (Standard, error)
	CreateStandard(ctx context.Context, std Standard) (int64, error)
	UpdateStandard(ctx context.Context, std Standard) error
	DeactivateStandard(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]Category, error)
}
