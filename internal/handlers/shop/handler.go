package shop

import (
	"net/http"

	"sabai/infras/otel"
	"sabai/internal/domains/shop/model"
	"sabai/internal/domains/shop/model/dto"
	"sabai/internal/domains/shop/service"
	"sabai/shared/constant"
	gDto "sabai/shared/dto"
	"sabai/shared/validator"
	"sabai/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Shop
	otel    otel.Otel
}

func New(service service.Shop, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/shops", func(r chi.Router) {
		r.Post("/", handler.CreateShop)
		r.Get("/", handler.GetShops)
		r.Get("/{shopID}", handler.GetShopByID)
		r.Put("/{shopID}", handler.UpdateShop)
		r.Delete("/{shopID}", handler.DeleteShop)
		r.Get("/{shopID}/timeslots", handler.GetTimeslots)
	})
}

// CreateShop handles the creation of a new shop.
// @Summary Create a new shop
// @Description Create a new shop with operating hours and slot configuration.
// @Tags Shop
// @Accept json
// @Produce json
// @Param request body dto.CreateShopRequest true "Create Shop Request"
// @Success 201 {object} response.Message "Shop created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shops [post]
// @Security BearerAuth
func (handler *Handler) CreateShop(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateShop")
	defer scope.End()

	req := dto.CreateShopRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create shop")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Shop created successfully")

	response.WithMessage(w, http.StatusCreated, "Shop created successfully")
}

// GetShops retrieves all shops based on query parameters.
// @Summary Get all shops
// @Description Retrieve all shops with optional filtering, sorting and pagination.
// @Tags Shop
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name (substring match)"
// @Param address query string false "Filter by address (substring match)"
// @Param slot_duration query int false "Filter by slot duration, supports _gt/_gte/_lt/_lte/_in suffixes"
// @Param timeslot_capacity query int false "Filter by timeslot capacity, supports _gt/_gte/_lt/_lte/_in suffixes"
// @Success 200 {object} response.Data[dto.GetShopsResponse] "List of shops"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shops [get]
func (handler *Handler) GetShops(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetShops")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	values := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	filterGroup.Filters = gDto.LikeFilterFromQuery(values, model.FieldName, model.TableName, filterGroup.Filters)
	filterGroup.Filters = gDto.LikeFilterFromQuery(values, model.FieldAddress, model.TableName, filterGroup.Filters)
	filterGroup.Filters = gDto.RangeFiltersFromQuery(values, model.FieldSlotDuration, model.TableName, filterGroup.Filters)
	filterGroup.Filters = gDto.RangeFiltersFromQuery(values, model.FieldTimeslotCapacity, model.TableName, filterGroup.Filters)

	shops, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get shops")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Shops retrieved successfully")

	response.WithJSON(w, http.StatusOK, shops)
}

// GetShopByID retrieves a shop by its ID.
// @Summary Get a shop by ID
// @Description Retrieve a shop with its aggregate review rating.
// @Tags Shop
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Success 200 {object} response.Data[dto.ShopResponse] "Shop details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shops/{shopID} [get]
func (handler *Handler) GetShopByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetShopByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamShopID)

	shop, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get shop by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Shop retrieved successfully")

	response.WithJSON(w, http.StatusOK, shop)
}

// UpdateShop updates an existing shop by its ID.
// @Summary Update a shop by ID
// @Description Update the details of an existing shop.
// @Tags Shop
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param request body dto.UpdateShopRequest true "Update Shop Request"
// @Success 200 {object} response.Message "Shop updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shops/{shopID} [put]
// @Security BearerAuth
func (handler *Handler) UpdateShop(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateShop")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamShopID)

	req := dto.UpdateShopRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update shop")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Shop updated successfully")

	response.WithMessage(w, http.StatusOK, "Shop updated successfully")
}

// DeleteShop deletes a shop by its ID.
// @Summary Delete a shop by ID
// @Description Delete a shop and its reservations and gallery photos.
// @Tags Shop
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Success 200 {object} response.Message "Shop deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shops/{shopID} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteShop(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteShop")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamShopID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete shop")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Shop deleted successfully")

	response.WithMessage(w, http.StatusOK, "Shop deleted successfully")
}

// GetTimeslots lists the bookable timeslots of a shop for a given date.
// @Summary Get shop timeslots
// @Description List the timeslots of a shop for a date with per-slot occupancy and availability.
// @Tags Shop
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetTimeslotsResponse] "Timeslots with occupancy"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shops/{shopID}/timeslots [get]
func (handler *Handler) GetTimeslots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeslots")
	defer scope.End()

	shopID := chi.URLParam(r, constant.RequestParamShopID)
	date := r.URL.Query().Get(constant.RequestParamDate)

	timeslots, err := handler.service.Timeslots(ctx, shopID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get timeslots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Timeslots retrieved successfully")

	response.WithJSON(w, http.StatusOK, timeslots)
}
