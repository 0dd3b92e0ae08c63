package model

import "sabai/shared/model"

const (
	TableName  = "galleries"
	EntityName = "gallery"

	FieldID       = "id"
	FieldShopID   = "shop_id"
	FieldTitle    = "title"
	FieldImageURL = "image_url"
)

// Gallery is a single shop photo. Rows follow their shop out on delete.
type Gallery struct {
	ID       string `db:"id"`
	ShopID   string `db:"shop_id"`
	Title    string `db:"title"`
	ImageURL string `db:"image_url"`
	model.Metadata
}
