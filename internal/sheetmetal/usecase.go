package sheetmetal

import (
	"context"

	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/internal/sheetmetal/dto"
)

type UseCase interface {
	CreateSheetMetal(ctx context.Context, input *dto.CreateSheetMetalInput) (*model.SheetMetal, error)
	GetSheetMetal(ctx context.Context, id int64) (*model.SheetMetal, error)
	ListSheetMetal(ctx context.Context) ([]model.SheetMetal, error)
	SearchSheetMetal(ctx context.Context, term string) ([]model.SheetMetal, error)
	UpdateSheetMetal(ctx context.Context, input *dto.UpdateSheetMetalInput) (*model.SheetMetal, error)
	DeleteSheetMetal(ctx context.Context, id int64) error
}
