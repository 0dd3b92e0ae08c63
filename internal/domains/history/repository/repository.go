package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"sabai/infras/otel"
	"sabai/infras/postgres"
	"sabai/internal/domains/history/model"
	"sabai/shared/constant"
	gDto "sabai/shared/dto"
	"sabai/shared/logger"
	gRepo "sabai/shared/repository"
)

type History interface {
	Insert(ctx context.Context, model model.History) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.History) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.History, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.History, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	AverageShopRating(ctx context.Context, shopID string) (model.ShopRating, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.History]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) History {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.History](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// AverageShopRating aggregates the reviewed histories of a shop. A shop
// with no reviews yields a null average and a zero count.
func (repo *repositoryImpl) AverageShopRating(ctx context.Context, shopID string) (model.ShopRating, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".AverageShopRating")
	defer scope.End()

	query := `SELECT AVG(rating) AS average, COUNT(rating) AS count
		FROM histories
		WHERE shop_id = $1 AND rating IS NOT NULL`

	var rating model.ShopRating
	err := repo.db.Read.GetContext(ctx, &rating, query, shopID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)
		return rating, errors.Wrap(err, "averaging shop rating")
	}

	return rating, nil
}
