package sheetmetal

import (
	"context"

	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/internal/sheetmetal/dto"
)

type Repository interface {
	Create(ctx context.Context, item *model.SheetMetal) error
	FindByID(ctx context.Context, id int64) (*model.SheetMetal, error)
	FindAll(ctx context.Context, filters *dto.SheetMetalFilters) ([]model.SheetMetal, error)
	Update(ctx context.Context, item *model.SheetMetal) (bool, error)
	Delete(ctx context.Context, id int64) error
}
