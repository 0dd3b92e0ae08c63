package service

import (
	"context"
	"fmt"
	"time"

	"sabai/config"
	"sabai/infras/otel"
	historyRepository "sabai/internal/domains/history/repository"
	reservationRepository "sabai/internal/domains/reservation/repository"
	"sabai/internal/domains/shop/model"
	"sabai/internal/domains/shop/model/dto"
	"sabai/internal/domains/shop/repository"
	"sabai/internal/domains/shop/schedule"
	"sabai/shared"
	"sabai/shared/cache"
	"sabai/shared/constant"
	gDto "sabai/shared/dto"
	"sabai/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetShop    = "shop:get"
	cacheGetAllShop = "shop:gets"
	cacheCountShop  = "shop:count"
)

type Shop interface {
	Create(ctx context.Context, req dto.CreateShopRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetShopsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ShopResponse, error)
	Update(ctx context.Context, req dto.UpdateShopRequest, id string) error
	Delete(ctx context.Context, id string) error
	Timeslots(ctx context.Context, shopID, date string) (dto.GetTimeslotsResponse, error)
}

type serviceImpl struct {
	repo            repository.Shop
	reservationRepo reservationRepository.Reservation
	historyRepo     historyRepository.History
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.Shop,
	reservationRepo reservationRepository.Reservation,
	historyRepo historyRepository.History,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Shop {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		historyRepo:     historyRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateShopRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = validateOperatingHours(req.OpenTime, req.CloseTime); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllShop)
		shared.InvalidateCaches(c, s.cache, cacheCountShop)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetShopsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllShop, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for shops")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count shops")

		return res, fmt.Errorf("failed to count shops: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter, req.Select...)
	if err != nil {
		log.Error().Err(err).Msg("failed to get shops")

		return res, fmt.Errorf("failed to get shops: %w", err)
	}

	res.FromModels(models, total, req.Page, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save shops to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountShop, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for shop count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count shops")

		return res, fmt.Errorf("failed to count shops: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save shop count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ShopResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetShop, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err != nil {
		shop, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get shop")

			return res, fmt.Errorf("failed to get shop: %w", err)
		}

		if shop.ID == constant.Empty {
			return res, failure.NotFound("shop not found") // nolint:wrapcheck
		}

		res.FromModel(shop)

		cached := res
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save shop to cache")
			}
		}()
	} else {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for shop")
	}

	// Ratings move with every new review, so they are attached fresh on
	// each read instead of living in the cached payload.
	rating, err := s.historyRepo.AverageShopRating(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get shop rating")

		return res, fmt.Errorf("failed to get shop rating: %w", err)
	}

	if rating.Count > 0 && rating.Average.Valid {
		average := rating.Average.Float64
		res.Rating = &average
	}
	res.ReviewCount = rating.Count

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateShopRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	currentShop, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check shop existence")

		return err
	}

	if currentShop.ID == constant.Empty {
		log.Error().Msg("shop not found")

		return failure.NotFound("shop not found")
	}

	openTime := currentShop.OpenTime
	if req.OpenTime != constant.Empty {
		openTime = req.OpenTime
	}

	closeTime := currentShop.CloseTime
	if req.CloseTime != constant.Empty {
		closeTime = req.CloseTime
	}

	if err = validateOperatingHours(openTime, closeTime); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update shop")

		return fmt.Errorf("failed to update shop: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetShop, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete shop cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllShop)
		shared.InvalidateCaches(c, s.cache, cacheCountShop)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if shop exists")

		return fmt.Errorf("failed to check if shop exists: %w", err)
	}

	if !exist {
		log.Error().Msg("shop not found")

		return failure.NotFound("shop not found") // nolint:wrapcheck
	}

	// Reservations and gallery rows follow the shop out via FK cascade.
	// Histories keep their denormalized shop name.
	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete shop")

		return fmt.Errorf("failed to delete shop: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetShop, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete shop from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllShop)
		shared.InvalidateCaches(c, s.cache, cacheCountShop)
	}()

	return nil
}

// Timeslots renders the shop's slot grid for a calendar day together with
// live occupancy. Availability is not cached so a reservation made a moment
// ago is reflected immediately.
func (s *serviceImpl) Timeslots(ctx context.Context, shopID, date string) (res dto.GetTimeslotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Timeslots")
	defer scope.End()
	defer scope.TraceIfError(err)

	shop, err := s.repo.Get(ctx, shared.FilterByID(shopID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get shop")

		return res, fmt.Errorf("failed to get shop: %w", err)
	}

	if shop.ID == constant.Empty {
		return res, failure.NotFound("shop not found") // nolint:wrapcheck
	}

	day, err := time.ParseInLocation(constant.DateOnlyFormat, date, time.UTC)
	if err != nil {
		return res, failure.BadRequestFromString("date must be in YYYY-MM-DD format") // nolint:wrapcheck
	}

	slots, err := schedule.Slots(shop.OpenTime, shop.CloseTime, shop.SlotDuration)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate timeslots")

		return res, fmt.Errorf("failed to generate timeslots: %w", err)
	}

	counts, err := s.reservationRepo.CountBySlot(ctx, shop.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations by slot")

		return res, fmt.Errorf("failed to count reservations by slot: %w", err)
	}

	occupancy := make(map[string]struct{ confirmed, waitlisted int }, len(counts))
	for _, count := range counts {
		occupancy[count.Slot] = struct{ confirmed, waitlisted int }{count.Confirmed, count.Waitlisted}
	}

	res.ShopID = shop.ID
	res.Date = date
	res.Timeslots = make([]dto.TimeslotResponse, len(slots))
	for i, slot := range slots {
		taken := occupancy[slot]
		res.Timeslots[i] = dto.TimeslotResponse{
			Time:       slot,
			Capacity:   shop.TimeslotCapacity,
			Reserved:   taken.confirmed,
			Waitlisted: taken.waitlisted,
			Available:  shop.TimeslotCapacity - taken.confirmed,
		}
	}

	return res, nil
}

func validateOperatingHours(openTime, closeTime string) error {
	open, err := schedule.MinuteOfDay(openTime)
	if err != nil {
		return failure.BadRequestFromString("open_time must be a valid HH:MM clock") // nolint:wrapcheck
	}

	close, err := schedule.MinuteOfDay(closeTime)
	if err != nil {
		return failure.BadRequestFromString("close_time must be a valid HH:MM clock") // nolint:wrapcheck
	}

	if open >= close {
		return failure.BadRequestFromString("open_time must be before close_time") // nolint:wrapcheck
	}

	return nil
}
