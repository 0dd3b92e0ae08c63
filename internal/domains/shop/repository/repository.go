package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"sabai/infras/otel"
	"sabai/infras/postgres"
	"sabai/internal/domains/shop/model"
	gDto "sabai/shared/dto"
	gRepo "sabai/shared/repository"
)

type Shop interface {
	Insert(ctx context.Context, model model.Shop) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Shop, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Shop, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Shop]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Shop {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Shop](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
