package model

import (
	"database/sql"
	"time"

	"sabai/shared/model"
)

const (
	TableName  = "histories"
	EntityName = "history"

	FieldID              = "id"
	FieldReservationID   = "reservation_id"
	FieldUserID          = "user_id"
	FieldShopID          = "shop_id"
	FieldShopName        = "shop_name"
	FieldReservationDate = "reservation_date"
	FieldStatus          = "status"
	FieldReview          = "review"
	FieldRating          = "rating"

	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// History is an immutable snapshot of a finished reservation. The shop
// name is denormalized so the record survives shop deletion.
type History struct {
	ID              string          `db:"id"`
	ReservationID   string          `db:"reservation_id"`
	UserID          string          `db:"user_id"`
	ShopID          string          `db:"shop_id"`
	ShopName        string          `db:"shop_name"`
	ReservationDate time.Time       `db:"reservation_date"`
	Status          string          `db:"status"`
	Review          sql.NullString  `db:"review"`
	Rating          sql.NullFloat64 `db:"rating"`
	model.Metadata
}

// ShopRating aggregates the reviewed histories of a single shop.
type ShopRating struct {
	Average sql.NullFloat64 `db:"average"`
	Count   int             `db:"count"`
}
