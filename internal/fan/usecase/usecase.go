package usecase

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/internal/fan"
	"github.com/fekuna/ventstock/internal/fan/dto"
	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/pkg/logger"
	"go.uber.org/zap"
)

type fanUseCase struct {
	repo   fan.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewFanUseCase(repo fan.Repository, log logger.ZapLogger) fan.UseCase {
	return &fanUseCase{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (uc *fanUseCase) CreateFan(ctx context.Context, input *dto.CreateFanInput) (*model.Fan, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	f := &model.Fan{
		BaseModel:       model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Airflow:         input.Airflow,
		CatalogFilePath: input.CatalogFilePath,
		PriceWholesale:  input.PriceWholesale,
		PriceRetail:     input.PriceRetail,
		Quantity:        input.Quantity,
	}

	if err := uc.repo.Create(ctx, f); err != nil {
		uc.logger.Error("failed to create fan", zap.String("name", f.Name), zap.Error(err))
		return nil, apperror.Persistence("insert fan", err)
	}

	uc.logger.Debug("fan created", zap.Int64("fan_id", f.ID))
	return f, nil
}

func (uc *fanUseCase) GetFan(ctx context.Context, id int64) (*model.Fan, error) {
	f, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("get fan", err)
	}
	return f, nil
}

func (uc *fanUseCase) ListFans(ctx context.Context) ([]model.Fan, error) {
	fans, err := uc.repo.FindAll(ctx, &dto.FanFilters{})
	if err != nil {
		return nil, apperror.Persistence("list fans", err)
	}
	return fans, nil
}

func (uc *fanUseCase) SearchFans(ctx context.Context, term string) ([]model.Fan, error) {
	fans, err := uc.repo.FindAll(ctx, &dto.FanFilters{SearchQuery: strings.TrimSpace(term)})
	if err != nil {
		return nil, apperror.Persistence("search fans", err)
	}
	return fans, nil
}

func (uc *fanUseCase) UpdateFan(ctx context.Context, input *dto.UpdateFanInput) (*model.Fan, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	f := &model.Fan{
		BaseModel:       model.BaseModel{ID: input.ID, UpdatedAt: uc.now()},
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Airflow:         input.Airflow,
		CatalogFilePath: input.CatalogFilePath,
		PriceWholesale:  input.PriceWholesale,
		PriceRetail:     input.PriceRetail,
		Quantity:        input.Quantity,
	}

	found, err := uc.repo.Update(ctx, f)
	if err != nil {
		uc.logger.Error("failed to update fan", zap.Int64("fan_id", input.ID), zap.Error(err))
		return nil, apperror.Persistence("update fan", err)
	}
	if !found {
		return nil, apperror.NotFound("fan", input.ID)
	}

	return uc.GetFan(ctx, input.ID)
}

func (uc *fanUseCase) DeleteFan(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperror.Persistence("delete fan", err)
	}
	return nil
}

func (uc *fanUseCase) AdjustQuantity(ctx context.Context, id int64, delta int) (*model.StockAdjustment, error) {
	adj, err := uc.repo.AdjustQuantity(ctx, id, delta, uc.now())
	if err != nil {
		uc.logger.Error("failed to adjust fan quantity", zap.Int64("fan_id", id), zap.Error(err))
		return nil, apperror.Persistence("adjust fan quantity", err)
	}
	if adj == nil {
		return nil, apperror.NotFound("fan", id)
	}

	if adj.QuantityChange != delta {
		uc.logger.Warn("fan quantity clamped at zero",
			zap.Int64("fan_id", id),
			zap.Int("requested_change", delta),
			zap.Int("quantity_before", adj.QuantityBefore),
		)
	}
	uc.logger.Info("fan quantity adjusted",
		zap.Int64("fan_id", id),
		zap.Int("quantity_before", adj.QuantityBefore),
		zap.Int("quantity_after", adj.QuantityAfter),
	)
	return adj, nil
}

func (uc *fanUseCase) CatalogDocument(ctx context.Context, id int64) (string, error) {
	f, err := uc.GetFan(ctx, id)
	if err != nil {
		return "", err
	}
	if f == nil {
		return "", apperror.NotFound("fan", id)
	}
	if f.CatalogFilePath == nil || strings.TrimSpace(*f.CatalogFilePath) == "" {
		return "", apperror.NotFound("catalog document for fan", id)
	}

	path := *f.CatalogFilePath
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", apperror.FileNotFound(path)
	}
	return path, nil
}
