package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/internal/flexible"
	"github.com/fekuna/ventstock/internal/flexible/dto"
	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/pkg/logger"
	"go.uber.org/zap"
)

type flexibleUseCase struct {
	repo   flexible.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewFlexibleUseCase(repo flexible.Repository, log logger.ZapLogger) flexible.UseCase {
	return &flexibleUseCase{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (uc *flexibleUseCase) CreateFlexible(ctx context.Context, input *dto.CreateFlexibleInput) (*model.Flexible, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	f := &model.Flexible{
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Description: input.Description,
		Diameter:    input.Diameter,
		Collection:  input.Collection,
		Meter:       input.Meter,
	}

	if err := uc.repo.Create(ctx, f); err != nil {
		uc.logger.Error("failed to create flexible duct", zap.Error(err))
		return nil, apperror.Persistence("insert flexible", err)
	}

	uc.logger.Debug("flexible duct created", zap.Int64("flexible_id", f.ID))
	return f, nil
}

func (uc *flexibleUseCase) GetFlexible(ctx context.Context, id int64) (*model.Flexible, error) {
	f, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("get flexible", err)
	}
	return f, nil
}

func (uc *flexibleUseCase) ListFlexible(ctx context.Context) ([]model.Flexible, error) {
	items, err := uc.repo.FindAll(ctx, nil)
	if err != nil {
		return nil, apperror.Persistence("list flexible", err)
	}
	return items, nil
}

func (uc *flexibleUseCase) SearchFlexible(ctx context.Context, term string) ([]model.Flexible, error) {
	items, err := uc.repo.FindAll(ctx, &dto.FlexibleFilters{SearchQuery: strings.TrimSpace(term)})
	if err != nil {
		return nil, apperror.Persistence("search flexible", err)
	}
	return items, nil
}

func (uc *flexibleUseCase) UpdateFlexible(ctx context.Context, input *dto.UpdateFlexibleInput) (*model.Flexible, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	f := &model.Flexible{
		BaseModel:   model.BaseModel{ID: input.ID, UpdatedAt: uc.now()},
		Description: input.Description,
		Diameter:    input.Diameter,
		Collection:  input.Collection,
		Meter:       input.Meter,
	}

	found, err := uc.repo.Update(ctx, f)
	if err != nil {
		uc.logger.Error("failed to update flexible duct", zap.Int64("flexible_id", input.ID), zap.Error(err))
		return nil, apperror.Persistence("update flexible", err)
	}
	if !found {
		return nil, apperror.NotFound("flexible", input.ID)
	}

	return uc.GetFlexible(ctx, input.ID)
}

func (uc *flexibleUseCase) DeleteFlexible(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperror.Persistence("delete flexible", err)
	}
	return nil
}
