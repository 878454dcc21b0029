package fan

import (
	"context"

	"github.com/fekuna/ventstock/internal/fan/dto"
	"github.com/fekuna/ventstock/internal/model"
)

type UseCase interface {
	CreateFan(ctx context.Context, input *dto.CreateFanInput) (*model.Fan, error)
	GetFan(ctx context.Context, id int64) (*model.Fan, error)
	ListFans(ctx context.Context) ([]model.Fan, error)
	SearchFans(ctx context.Context, term string) ([]model.Fan, error)
	UpdateFan(ctx context.Context, input *dto.UpdateFanInput) (*model.Fan, error)
	DeleteFan(ctx context.Context, id int64) error

	AdjustQuantity(ctx context.Context, id int64, delta int) (*model.StockAdjustment, error)
	// CatalogDocument returns the fan's catalog file path if it exists on disk.
	CatalogDocument(ctx context.Context, id int64) (string, error)
}
