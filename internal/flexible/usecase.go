package flexible

import (
	"context"

	"github.com/fekuna/ventstock/internal/flexible/dto"
	"github.com/fekuna/ventstock/internal/model"
)

type UseCase interface {
	CreateFlexible(ctx context.Context, input *dto.CreateFlexibleInput) (*model.Flexible, error)
	GetFlexible(ctx context.Context, id int64) (*model.Flexible, error)
	ListFlexible(ctx context.Context) ([]model.Flexible, error)
	SearchFlexible(ctx context.Context, term string) ([]model.Flexible, error)
	UpdateFlexible(ctx context.Context, input *dto.UpdateFlexibleInput) (*model.Flexible, error)
	DeleteFlexible(ctx context.Context, id int64) error
}
