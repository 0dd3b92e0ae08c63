package model

import (
	"database/sql"
	"time"

	"sabai/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID               = "id"
	FieldUserID           = "user_id"
	FieldShopID           = "shop_id"
	FieldReservationDate  = "reservation_date"
	FieldStatus           = "status"
	FieldWaitlistPosition = "waitlist_position"

	StatusConfirmed  = "confirmed"
	StatusWaitlisted = "waitlisted"
	StatusCancelled  = "cancelled"
	StatusCompleted  = "completed"
)

type Reservation struct {
	ID               string        `db:"id"`
	UserID           string        `db:"user_id"`
	ShopID           string        `db:"shop_id"`
	ReservationDate  time.Time     `db:"reservation_date"`
	Status           string        `db:"status"`
	WaitlistPosition sql.NullInt64 `db:"waitlist_position"`
	model.Metadata
}

// Active reports whether the reservation still holds or contends for a
// place in its timeslot.
func (r Reservation) Active() bool {
	return r.Status == StatusConfirmed || r.Status == StatusWaitlisted
}

// SlotCount is the per-timeslot occupancy of a shop on a given day, keyed
// by the slot's UTC wall clock.
type SlotCount struct {
	Slot       string `db:"slot"`
	Confirmed  int    `db:"confirmed"`
	Waitlisted int    `db:"waitlisted"`
}
