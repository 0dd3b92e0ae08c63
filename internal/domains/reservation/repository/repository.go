package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"sabai/infras/otel"
	"sabai/infras/postgres"
	"sabai/internal/domains/reservation/model"
	"sabai/shared/constant"
	gDto "sabai/shared/dto"
	"sabai/shared/logger"
	gRepo "sabai/shared/repository"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	InTx(ctx context.Context, fn func(sqltx *sqlx.Tx) error) error
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	CountTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	UpdateExprTx(ctx context.Context, sqltx *sqlx.Tx, exprs map[string]string, filter gDto.FilterGroup) (int64, error)

	CountBySlot(ctx context.Context, shopID string, from, to time.Time) ([]model.SlotCount, error)
	GetWaitlistHeadTx(ctx context.Context, sqltx *sqlx.Tx, shopID string, slot time.Time) (model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountBySlot tallies active reservations between from and to, grouped by
// the UTC wall clock of their timeslot.
func (repo *repositoryImpl) CountBySlot(ctx context.Context, shopID string, from, to time.Time) ([]model.SlotCount, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".CountBySlot")
	defer scope.End()

	query := `SELECT to_char(reservation_date AT TIME ZONE 'UTC', 'HH24:MI') AS slot,
		COUNT(*) FILTER (WHERE status = $1) AS confirmed,
		COUNT(*) FILTER (WHERE status = $2) AS waitlisted
		FROM reservations
		WHERE shop_id = $3 AND reservation_date >= $4 AND reservation_date < $5 AND status IN ($1, $2)
		GROUP BY 1
		ORDER BY 1`

	counts := []model.SlotCount{}
	err := repo.db.Read.SelectContext(ctx, &counts, query, model.StatusConfirmed, model.StatusWaitlisted, shopID, from, to)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)
		return nil, errors.Wrap(err, "counting reservations by slot")
	}

	return counts, nil
}

// GetWaitlistHeadTx locks and returns the next reservation in line for a
// timeslot, lowest position first with arrival order breaking ties. A zero
// value means the waitlist is empty.
func (repo *repositoryImpl) GetWaitlistHeadTx(ctx context.Context, sqltx *sqlx.Tx, shopID string, slot time.Time) (model.Reservation, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetWaitlistHeadTx")
	defer scope.End()

	query := `SELECT * FROM reservations
		WHERE shop_id = $1 AND reservation_date = $2 AND status = $3
		ORDER BY waitlist_position ASC, created_at ASC
		LIMIT 1
		FOR UPDATE`

	var head model.Reservation
	err := sqltx.GetContext(ctx, &head, query, shopID, slot, model.StatusWaitlisted)
	if errors.Is(err, sql.ErrNoRows) {
		return head, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)
		return head, errors.Wrap(err, "locking waitlist head")
	}

	return head, nil
}
