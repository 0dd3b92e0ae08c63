package history

import (
	"net/http"

	"sabai/infras/otel"
	"sabai/internal/domains/history/model"
	"sabai/internal/domains/history/model/dto"
	"sabai/internal/domains/history/service"
	"sabai/shared/constant"
	gDto "sabai/shared/dto"
	"sabai/shared/validator"
	"sabai/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.History
	otel    otel.Otel
}

func New(service service.History, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/histories", func(r chi.Router) {
		r.Post("/", handler.CreateHistory)
		r.Get("/", handler.GetHistories)
		r.Get("/{id}", handler.GetHistoryByID)
		r.Put("/{id}", handler.ReviewHistory)
		r.Delete("/{id}", handler.DeleteHistory)
	})
}

// CreateHistory backfills an archived reservation entry.
// @Summary Create a history entry
// @Description Create an archived reservation entry directly. Admin only.
// @Tags History
// @Accept json
// @Produce json
// @Param request body dto.CreateHistoryRequest true "Create History Request"
// @Success 201 {object} response.Message "History created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/histories [post]
// @Security BearerAuth
func (handler *Handler) CreateHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHistory")
	defer scope.End()

	req := dto.CreateHistoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create history")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("History created successfully")

	response.WithMessage(w, http.StatusCreated, "History created successfully")
}

// GetHistories retrieves archived reservations based on query parameters.
// Non-admin callers only ever see their own entries.
// @Summary Get histories
// @Description Retrieve archived reservations with optional filtering and pagination.
// @Tags History
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param shop_id query string false "Filter by shop ID"
// @Param status query string false "Filter by status (cancelled, completed)"
// @Success 200 {object} response.Data[dto.GetHistoriesResponse] "List of histories"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/histories [get]
// @Security BearerAuth
func (handler *Handler) GetHistories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHistories")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	values := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	filterGroup.Filters = gDto.EqualityFilterFromQuery(values, model.FieldShopID, model.TableName, filterGroup.Filters)
	filterGroup.Filters = gDto.EqualityFilterFromQuery(values, model.FieldStatus, model.TableName, filterGroup.Filters)

	histories, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get histories")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Histories retrieved successfully")

	response.WithJSON(w, http.StatusOK, histories)
}

// GetHistoryByID retrieves an archived reservation by its ID.
// @Summary Get a history by ID
// @Description Retrieve an archived reservation. Callers may only read their own unless admin.
// @Tags History
// @Accept json
// @Produce json
// @Param id path string true "History ID"
// @Success 200 {object} response.Data[dto.HistoryResponse] "History details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/histories/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetHistoryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHistoryByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	history, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get history by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("History retrieved successfully")

	response.WithJSON(w, http.StatusOK, history)
}

// ReviewHistory attaches a review to an archived reservation.
// @Summary Review a visit
// @Description Attach a review text to a completed visit. The rating is derived from the review's sentiment and computed once.
// @Tags History
// @Accept json
// @Produce json
// @Param id path string true "History ID"
// @Param request body dto.ReviewRequest true "Review Request"
// @Success 200 {object} response.Data[dto.HistoryResponse] "History with review and rating"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/histories/{id} [put]
// @Security BearerAuth
func (handler *Handler) ReviewHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReviewHistory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ReviewRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Review(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to review history")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("History reviewed successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteHistory deletes an archived reservation by its ID.
// @Summary Delete a history by ID
// @Description Delete an archived reservation entry. Admin only.
// @Tags History
// @Accept json
// @Produce json
// @Param id path string true "History ID"
// @Success 200 {object} response.Message "History deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/histories/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHistory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete history")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("History deleted successfully")

	response.WithMessage(w, http.StatusOK, "History deleted successfully")
}
