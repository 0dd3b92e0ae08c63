package dto

import (
	"sabai/internal/domains/shop/model"
	"sabai/internal/domains/shop/schedule"
	gDto "sabai/shared/dto"
	gModel "sabai/shared/model"
	"sabai/shared/timezone"

	"github.com/google/uuid"
)

type CreateShopRequest struct {
	Name             string `json:"name"              validate:"required,max=100"`
	Address          string `json:"address"           validate:"omitempty,max=255"`
	Telephone        string `json:"telephone"         validate:"omitempty,max=20"`
	OpenTime         string `json:"open_time"         validate:"required,datetime=15:04"`
	CloseTime        string `json:"close_time"        validate:"required,datetime=15:04"`
	SlotDuration     *int   `json:"slot_duration"     validate:"omitempty,oneof=30 60 90 120"`
	TimeslotCapacity *int   `json:"timeslot_capacity" validate:"omitempty,min=1"`
}

func (c *CreateShopRequest) ToModel(user string) model.Shop {
	slotDuration := schedule.DefaultSlotDuration
	if c.SlotDuration != nil {
		slotDuration = *c.SlotDuration
	}

	capacity := schedule.DefaultTimeslotCapacity
	if c.TimeslotCapacity != nil {
		capacity = *c.TimeslotCapacity
	}

	return model.Shop{
		ID:               uuid.NewString(),
		Name:             c.Name,
		Address:          c.Address,
		Telephone:        c.Telephone,
		OpenTime:         c.OpenTime,
		CloseTime:        c.CloseTime,
		SlotDuration:     slotDuration,
		TimeslotCapacity: capacity,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateShopRequest struct {
	Name             string `db:"name"              json:"name"              validate:"omitempty,max=100"`
	Address          string `db:"address"           json:"address"           validate:"omitempty,max=255"`
	Telephone        string `db:"telephone"         json:"telephone"         validate:"omitempty,max=20"`
	OpenTime         string `db:"open_time"         json:"open_time"         validate:"omitempty,datetime=15:04"`
	CloseTime        string `db:"close_time"        json:"close_time"        validate:"omitempty,datetime=15:04"`
	SlotDuration     *int   `db:"slot_duration"     json:"slot_duration"     validate:"omitempty,oneof=30 60 90 120"`
	TimeslotCapacity *int   `db:"timeslot_capacity" json:"timeslot_capacity" validate:"omitempty,min=1"`
}

type ShopResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Telephone        string   `json:"telephone"`
	OpenTime         string   `json:"open_time"`
	CloseTime        string   `json:"close_time"`
	SlotDuration     int      `json:"slot_duration"`
	TimeslotCapacity int      `json:"timeslot_capacity"`
	Rating           *float64 `json:"rating,omitempty"`
	ReviewCount      int      `json:"review_count,omitempty"`
	gDto.Metadata
}

func (s *ShopResponse) FromModel(model model.Shop) {
	s.ID = model.ID
	s.Name = model.Name
	s.Address = model.Address
	s.Telephone = model.Telephone
	s.OpenTime = model.OpenTime
	s.CloseTime = model.CloseTime
	s.SlotDuration = model.SlotDuration
	s.TimeslotCapacity = model.TimeslotCapacity
	s.Metadata.FromModel(model.Metadata)
}

type GetShopsResponse struct {
	Shops      []ShopResponse  `json:"shops"`
	Pagination gDto.Pagination `json:"pagination"`
}

func (g *GetShopsResponse) FromModels(models []model.Shop, totalData, page, limit int) {
	g.Pagination = gDto.PaginationFor(page, limit, totalData)

	g.Shops = make([]ShopResponse, len(models))
	for i, mod := range models {
		g.Shops[i].FromModel(mod)
	}
}

type TimeslotResponse struct {
	Time       string `json:"time"`
	Capacity   int    `json:"capacity"`
	Reserved   int    `json:"reserved"`
	Waitlisted int    `json:"waitlisted"`
	Available  int    `json:"available"`
}

type GetTimeslotsResponse struct {
	ShopID    string             `json:"shop_id"`
	Date      string             `json:"date"`
	Timeslots []TimeslotResponse `json:"timeslots"`
}
