package dto

import (
	"mime/multipart"

	"sabai/internal/domains/gallery/model"
	"sabai/shared"
	gDto "sabai/shared/dto"
	gModel "sabai/shared/model"
	"sabai/shared/timezone"

	"github.com/google/uuid"
)

type CreateGalleryRequest struct {
	ShopID    string                `json:"shop_id" validate:"required,uuid"`
	Title     string                `json:"title"   validate:"required,min=3,max=100"`
	Image     *multipart.FileHeader `json:"image"   swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

func (c *CreateGalleryRequest) ToModel(user, imageURL string) model.Gallery {
	return model.Gallery{
		ID:       uuid.NewString(),
		ShopID:   c.ShopID,
		Title:    c.Title,
		ImageURL: imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateGalleryRequest struct {
	Title     string                `db:"title" json:"title" validate:"omitempty,min=3,max=100"`
	Image     *multipart.FileHeader `db:"-"     json:"image" swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `db:"-"     json:"-"`
}

type GalleryResponse struct {
	ID       string `json:"id"`
	ShopID   string `json:"shop_id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	gDto.Metadata
}

func (r *GalleryResponse) FromModel(model model.Gallery) {
	r.ID = model.ID
	r.ShopID = model.ShopID
	r.Title = model.Title
	r.ImageURL = model.ImageURL
	r.Metadata.FromModel(model.Metadata)
}

type GetGalleriesResponse struct {
	Galleries []GalleryResponse `json:"galleries"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetGalleriesResponse) FromModels(models []model.Gallery, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Galleries = make([]GalleryResponse, len(models))
	for i, m := range models {
		r.Galleries[i].FromModel(m)
	}
}
