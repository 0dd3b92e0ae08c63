package dto

import (
	"database/sql"
	"time"

	"sabai/internal/domains/history/model"
	"sabai/shared"
	"sabai/shared/constant"
	gDto "sabai/shared/dto"
	gModel "sabai/shared/model"
	"sabai/shared/timezone"

	"github.com/google/uuid"
)

type CreateHistoryRequest struct {
	ReservationID   string `json:"reservation_id"   validate:"required,uuid"`
	UserID          string `json:"user_id"          validate:"required,uuid"`
	ShopID          string `json:"shop_id"          validate:"required,uuid"`
	ShopName        string `json:"shop_name"        validate:"omitempty,max=100"`
	ReservationDate string `json:"reservation_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Status          string `json:"status"           validate:"required,oneof=cancelled completed"`
}

func (c *CreateHistoryRequest) ToModel(user string, reservationDate time.Time) model.History {
	return model.History{
		ID:              uuid.NewString(),
		ReservationID:   c.ReservationID,
		UserID:          c.UserID,
		ShopID:          c.ShopID,
		ShopName:        c.ShopName,
		ReservationDate: reservationDate,
		Status:          c.Status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func (c *CreateHistoryRequest) Date() (time.Time, error) {
	parsed, err := time.Parse(constant.DateFormat, c.ReservationDate)
	if err != nil {
		return time.Time{}, err
	}

	return parsed.UTC(), nil
}

type ReviewRequest struct {
	Review string `json:"review" validate:"required,max=2000"`
}

type HistoryResponse struct {
	ID              string   `json:"id"`
	ReservationID   string   `json:"reservation_id"`
	UserID          string   `json:"user_id"`
	ShopID          string   `json:"shop_id"`
	ShopName        string   `json:"shop_name"`
	ReservationDate string   `json:"reservation_date"`
	Status          string   `json:"status"`
	Review          *string  `json:"review,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	gDto.Metadata
}

func (h *HistoryResponse) FromModel(model model.History) {
	h.ID = model.ID
	h.ReservationID = model.ReservationID
	h.UserID = model.UserID
	h.ShopID = model.ShopID
	h.ShopName = model.ShopName
	h.ReservationDate = timezone.Format(model.ReservationDate, constant.DateFormat)
	h.Status = model.Status
	if model.Review.Valid {
		review := model.Review.String
		h.Review = &review
	}
	if model.Rating.Valid {
		rating := model.Rating.Float64
		h.Rating = &rating
	}
	h.Metadata.FromModel(model.Metadata)
}

type GetHistoriesResponse struct {
	Histories []HistoryResponse `json:"histories"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetHistoriesResponse) FromModels(models []model.History, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Histories = make([]HistoryResponse, len(models))
	for i, mod := range models {
		g.Histories[i].FromModel(mod)
	}
}

// NullReview wraps free text for persistence.
func NullReview(review string) sql.NullString {
	return sql.NullString{String: review, Valid: review != constant.Empty}
}
