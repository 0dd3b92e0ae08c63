package model

import "sabai/shared/model"

const (
	TableName  = "shops"
	EntityName = "shop"

	FieldID               = "id"
	FieldName             = "name"
	FieldAddress          = "address"
	FieldTelephone        = "telephone"
	FieldOpenTime         = "open_time"
	FieldCloseTime        = "close_time"
	FieldSlotDuration     = "slot_duration"
	FieldTimeslotCapacity = "timeslot_capacity"
)

type Shop struct {
	ID               string `db:"id"`
	Name             string `db:"name"`
	Address          string `db:"address"`
	Telephone        string `db:"telephone"`
	OpenTime         string `db:"open_time"`
	CloseTime        string `db:"close_time"`
	SlotDuration     int    `db:"slot_duration"`
	TimeslotCapacity int    `db:"timeslot_capacity"`
	model.Metadata
}
