package fan

import (
	"context"
	"time"

	"github.com/fekuna/ventstock/internal/fan/dto"
	"github.com/fekuna/ventstock/internal/model"
)

type Repository interface {
	Create(ctx context.Context, fan *model.Fan) error
	FindByID(ctx context.Context, id int64) (*model.Fan, error)
	FindAll(ctx context.Context, filters *dto.FanFilters) ([]model.Fan, error)
	// Update reports whether a row was changed.
	Update(ctx context.Context, fan *model.Fan) (bool, error)
	Delete(ctx context.Context, id int64) error

	// Stock on hand, read-modify-write in one transaction
	AdjustQuantity(ctx context.Context, id int64, delta int, at time.Time) (*model.StockAdjustment, error)
}
