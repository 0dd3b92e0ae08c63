package service

import (
	"context"
	"database/sql"
	"fmt"

	"sabai/config"
	"sabai/infras/otel"
	"sabai/infras/sentiment"
	"sabai/internal/domains/history/model"
	"sabai/internal/domains/history/model/dto"
	"sabai/internal/domains/history/repository"
	"sabai/shared"
	"sabai/shared/cache"
	"sabai/shared/constant"
	gDto "sabai/shared/dto"
	"sabai/shared/failure"
	"sabai/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetHistory    = "history:get"
	cacheGetAllHistory = "history:gets"
	cacheCountHistory  = "history:count"
)

type History interface {
	Create(ctx context.Context, req dto.CreateHistoryRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHistoriesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.HistoryResponse, error)
	Review(ctx context.Context, req dto.ReviewRequest, id string) (dto.HistoryResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.History
	sentiment sentiment.Analyzer
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.History,
	sentiment sentiment.Analyzer,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) History {
	return &serviceImpl{
		repo:      repo,
		sentiment: sentiment,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Create inserts a history record by hand. Regular archival happens inside
// reservation termination; this entry point exists for admin backfills.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHistoryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin {
		return failure.Forbidden("only admins may create history records") // nolint:wrapcheck
	}

	date, err := req.Date()
	if err != nil {
		return failure.BadRequestFromString("reservation_date must be a valid RFC3339 timestamp") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, date)); err != nil {
		log.Error().Err(err).Msg("failed to insert history")

		return fmt.Errorf("failed to insert history: %w", err)
	}

	s.invalidateListCaches(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetHistoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	scoped := scopeToCaller(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllHistory, req, scoped)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for histories")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count histories")

		return res, fmt.Errorf("failed to count histories: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get histories")

		return res, fmt.Errorf("failed to get histories: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save histories to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	scoped := scopeToCaller(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountHistory, req, scoped)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for history count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count histories")

		return res, fmt.Errorf("failed to count histories: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save history count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.HistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheGetHistory, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err != nil {
		history, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get history")

			return res, fmt.Errorf("failed to get history: %w", err)
		}

		if history.ID == constant.Empty {
			return res, failure.NotFound("history not found") // nolint:wrapcheck
		}

		res.FromModel(history)

		cached := res
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save history to cache")
			}
		}()
	} else {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for history")
	}

	if role != constant.RoleAdmin && res.UserID != user {
		return dto.HistoryResponse{}, failure.Forbidden("history belongs to another user") // nolint:wrapcheck
	}

	return res, nil
}

// Review attaches free text to a completed visit and derives its rating
// from the sentiment score. The rating is computed exactly once.
func (s *serviceImpl) Review(ctx context.Context, req dto.ReviewRequest, id string) (res dto.HistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Review")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	history, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get history")

		return res, fmt.Errorf("failed to get history: %w", err)
	}

	if history.ID == constant.Empty {
		return res, failure.NotFound("history not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin {
		if history.UserID != user {
			return res, failure.Forbidden("history belongs to another user") // nolint:wrapcheck
		}

		if history.Status != model.StatusCompleted {
			return res, failure.Conflict("only completed visits can be reviewed") // nolint:wrapcheck
		}
	}

	if history.Review.Valid {
		return res, failure.Conflict("history already has a review") // nolint:wrapcheck
	}

	score, err := s.sentiment.Analyze(ctx, req.Review)
	if err != nil {
		log.Error().Err(err).Msg("sentiment analysis failed")

		return res, err
	}

	rating := constant.MaxRating * score.Positive
	if rating < 0 {
		rating = 0
	}
	if rating > constant.MaxRating {
		rating = constant.MaxRating
	}

	history.Review = dto.NullReview(req.Review)
	history.Rating = sql.NullFloat64{Float64: rating, Valid: true}
	history.ModifiedAt = timezone.Now()
	history.ModifiedBy = user

	fields := map[string]any{
		model.FieldReview:        history.Review,
		model.FieldRating:        history.Rating,
		constant.FieldModifiedAt: history.ModifiedAt,
		constant.FieldModifiedBy: history.ModifiedBy,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update history")

		return res, fmt.Errorf("failed to update history: %w", err)
	}

	s.invalidateCaches(ctx, id)

	res.FromModel(history)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleAdmin {
		return failure.Forbidden("only admins may delete history records") // nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if history exists")

		return fmt.Errorf("failed to check if history exists: %w", err)
	}

	if !exist {
		return failure.NotFound("history not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete history")

		return fmt.Errorf("failed to delete history: %w", err)
	}

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllHistory)
		shared.InvalidateCaches(c, s.cache, cacheCountHistory)
	}()
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHistory, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete history cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHistory)
		shared.InvalidateCaches(c, s.cache, cacheCountHistory)
	}()
}

func scopeToCaller(ctx context.Context, filter gDto.FilterGroup) gDto.FilterGroup {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin {
		return filter
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filters := make([]any, 0, len(filter.Filters)+1)
	filters = append(filters, filter.Filters...)
	filters = append(filters, gDto.Filter{
		ArgName:  "owner_user_id",
		Field:    model.FieldUserID,
		Value:    user,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})
	filter.Filters = filters

	return filter
}
