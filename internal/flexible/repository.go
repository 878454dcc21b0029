package flexible

import (
	"context"

	"github.com/fekuna/ventstock/internal/flexible/dto"
	"github.com/fekuna/ventstock/internal/model"
)

type Repository interface {
	Create(ctx context.Context, item *model.Flexible) error
	FindByID(ctx context.Context, id int64) (*model.Flexible, error)
	FindAll(ctx context.Context, filters *dto.FlexibleFilters) ([]model.Flexible, error)
	Update(ctx context.Context, item *model.Flexible) (bool, error)
	Delete(ctx context.Context, id int64) error
}
