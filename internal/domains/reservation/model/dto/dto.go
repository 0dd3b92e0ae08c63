package dto

import (
	"time"

	"sabai/internal/domains/reservation/model"
	"sabai/shared"
	"sabai/shared/constant"
	gDto "sabai/shared/dto"
	"sabai/shared/timezone"
)

type CreateReservationRequest struct {
	ShopID          string `json:"shop_id"          validate:"omitempty,uuid"`
	ReservationDate string `json:"reservation_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Date parses the requested slot time and normalizes it to UTC, which is
// the clock all slot arithmetic runs on.
func (c *CreateReservationRequest) Date() (time.Time, error) {
	parsed, err := time.Parse(constant.DateFormat, c.ReservationDate)
	if err != nil {
		return time.Time{}, err
	}

	return parsed.UTC(), nil
}

type UpdateReservationRequest struct {
	ReservationDate string `json:"reservation_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (u *UpdateReservationRequest) Date() (time.Time, error) {
	parsed, err := time.Parse(constant.DateFormat, u.ReservationDate)
	if err != nil {
		return time.Time{}, err
	}

	return parsed.UTC(), nil
}

type ReservationResponse struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	ShopID           string `json:"shop_id"`
	ReservationDate  string `json:"reservation_date"`
	Status           string `json:"status"`
	WaitlistPosition *int64 `json:"waitlist_position,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.ShopID = model.ShopID
	r.ReservationDate = timezone.Format(model.ReservationDate, constant.DateFormat)
	r.Status = model.Status
	if model.WaitlistPosition.Valid {
		position := model.WaitlistPosition.Int64
		r.WaitlistPosition = &position
	}
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (g *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		g.Reservations[i].FromModel(mod)
	}
}
