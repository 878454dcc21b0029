package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/internal/sheetmetal"
	"github.com/fekuna/ventstock/internal/sheetmetal/dto"
	"github.com/fekuna/ventstock/pkg/logger"
	"go.uber.org/zap"
)

type sheetMetalUseCase struct {
	repo   sheetmetal.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewSheetMetalUseCase(repo sheetmetal.Repository, log logger.ZapLogger) sheetmetal.UseCase {
	return &sheetMetalUseCase{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (uc *sheetMetalUseCase) CreateSheetMetal(ctx context.Context, input *dto.CreateSheetMetalInput) (*model.SheetMetal, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	s := &model.SheetMetal{
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Thickness:   input.Thickness,
		Dimensions:  input.Dimensions,
		Measurement: input.Measurement,
		Cost:        input.Cost,
		Extra:       input.Extra,
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		uc.logger.Error("failed to create sheet metal", zap.Error(err))
		return nil, apperror.Persistence("insert sheet metal", err)
	}

	uc.logger.Debug("sheet metal created", zap.Int64("sheet_metal_id", s.ID))
	return s, nil
}

func (uc *sheetMetalUseCase) GetSheetMetal(ctx context.Context, id int64) (*model.SheetMetal, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("get sheet metal", err)
	}
	return s, nil
}

func (uc *sheetMetalUseCase) ListSheetMetal(ctx context.Context) ([]model.SheetMetal, error) {
	return uc.SearchSheetMetal(ctx, "")
}

func (uc *sheetMetalUseCase) SearchSheetMetal(ctx context.Context, term string) ([]model.SheetMetal, error) {
	items, err := uc.repo.FindAll(ctx, &dto.SheetMetalFilters{SearchQuery: strings.TrimSpace(term)})
	if err != nil {
		return nil, apperror.Persistence("search sheet metal", err)
	}
	return items, nil
}

func (uc *sheetMetalUseCase) UpdateSheetMetal(ctx context.Context, input *dto.UpdateSheetMetalInput) (*model.SheetMetal, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	s := &model.SheetMetal{
		BaseModel:   model.BaseModel{ID: input.ID, UpdatedAt: uc.now()},
		Thickness:   input.Thickness,
		Dimensions:  input.Dimensions,
		Measurement: input.Measurement,
		Cost:        input.Cost,
		Extra:       input.Extra,
	}

	found, err := uc.repo.Update(ctx, s)
	if err != nil {
		uc.logger.Error("failed to update sheet metal", zap.Int64("sheet_metal_id", input.ID), zap.Error(err))
		return nil, apperror.Persistence("update sheet metal", err)
	}
	if !found {
		return nil, apperror.NotFound("sheet metal", input.ID)
	}

	return uc.GetSheetMetal(ctx, input.ID)
}

func (uc *sheetMetalUseCase) DeleteSheetMetal(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperror.Persistence("delete sheet metal", err)
	}
	return nil
}
