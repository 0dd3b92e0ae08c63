package gallery

import (
	"net/http"

	"sabai/infras/otel"
	"sabai/internal/domains/gallery/model"
	"sabai/internal/domains/gallery/model/dto"
	"sabai/internal/domains/gallery/service"
	"sabai/shared/constant"
	gDto "sabai/shared/dto"
	"sabai/shared/validator"
	"sabai/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/galleries", func(r chi.Router) {
		r.Post("/", handler.CreateGallery)
		r.Get("/", handler.GetGalleries)
		r.Get("/{id}", handler.GetGalleryByID)
		r.Put("/{id}", handler.UpdateGallery)
		r.Delete("/{id}", handler.DeleteGallery)
	})
}

// CreateGallery uploads a shop photo.
// @Summary Create a gallery photo
// @Description Upload a photo for a shop. Multipart form with shop_id, title and image.
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param shop_id formData string true "Shop ID"
// @Param title formData string true "Photo title"
// @Param image formData file true "Image file (png or jpeg, max 1 MB)"
// @Success 201 {object} response.Message "Gallery photo created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/galleries [post]
// @Security BearerAuth
func (handler *Handler) CreateGallery(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGallery")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	req := dto.CreateGalleryRequest{
		ShopID: r.FormValue("shop_id"),
		Title:  r.FormValue("title"),
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create gallery")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery photo created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Gallery photo created successfully")
}

// GetGalleries retrieves shop photos based on query parameters.
// @Summary Get gallery photos
// @Description Retrieve shop photos with optional filtering and pagination.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param shop_id query string false "Filter by shop ID"
// @Success 200 {object} response.Data[dto.GetGalleriesResponse] "List of gallery photos"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/galleries [get]
func (handler *Handler) GetGalleries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	filterGroup.Filters = gDto.EqualityFilterFromQuery(r.URL.Query(), model.FieldShopID, model.TableName, filterGroup.Filters)

	galleries, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get galleries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Galleries retrieved successfully")

	response.WithJSON(w, http.StatusOK, galleries)
}

// GetGalleryByID retrieves a shop photo by its ID.
// @Summary Get a gallery photo by ID
// @Description Retrieve a single shop photo.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Gallery ID"
// @Success 200 {object} response.Data[dto.GalleryResponse] "Gallery photo details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/galleries/{id} [get]
func (handler *Handler) GetGalleryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleryByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	gallery, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery retrieved successfully")

	response.WithJSON(w, http.StatusOK, gallery)
}

// UpdateGallery updates a shop photo by its ID.
// @Summary Update a gallery photo
// @Description Update the title of a shop photo, optionally replacing the image.
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Gallery ID"
// @Param title formData string false "Photo title"
// @Param image formData file false "Replacement image file (png or jpeg, max 1 MB)"
// @Success 200 {object} response.Message "Gallery photo updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/galleries/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateGallery(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGallery")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	req := dto.UpdateGalleryRequest{
		Title: r.FormValue("title"),
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update gallery")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery photo updated successfully")

	response.WithMessage(w, http.StatusOK, "Gallery photo updated successfully")
}

// DeleteGallery deletes a shop photo by its ID.
// @Summary Delete a gallery photo
// @Description Delete a shop photo. The stored image is removed from S3 as well.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Gallery ID"
// @Success 200 {object} response.Message "Gallery photo deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/galleries/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGallery(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGallery")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete gallery")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery photo deleted successfully")

	response.WithMessage(w, http.StatusOK, "Gallery photo deleted successfully")
}
