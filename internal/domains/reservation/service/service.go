package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sabai/config"
	"sabai/infras/otel"
	historyModel "sabai/internal/domains/history/model"
	historyRepository "sabai/internal/domains/history/repository"
	"sabai/internal/domains/reservation/model"
	"sabai/internal/domains/reservation/model/dto"
	"sabai/internal/domains/reservation/repository"
	shopModel "sabai/internal/domains/shop/model"
	shopRepository "sabai/internal/domains/shop/repository"
	"sabai/internal/domains/shop/schedule"
	"sabai/shared"
	"sabai/shared/cache"
	"sabai/shared/constant"
	gDto "sabai/shared/dto"
	"sabai/shared/failure"
	gModel "sabai/shared/model"
	"sabai/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

type Reservation interface {
	Create(ctx context.Context, shopID string, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Reservation
	shopRepo    shopRepository.Shop
	historyRepo historyRepository.History
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	locks       *slotLocker
}

func New(
	repo repository.Reservation,
	shopRepo shopRepository.Shop,
	historyRepo historyRepository.History,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:        repo,
		shopRepo:    shopRepo,
		historyRepo: historyRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		locks:       newSlotLocker(),
	}
}

func (s *serviceImpl) Create(ctx context.Context, shopID string, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if shopID == constant.Empty {
		shopID = req.ShopID
	}

	shop, err := s.shopRepo.Get(ctx, shared.FilterByID(shopID, shopModel.FieldID, shopModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get shop")

		return res, fmt.Errorf("failed to get shop: %w", err)
	}

	if shop.ID == constant.Empty {
		return res, failure.NotFound("shop not found") // nolint:wrapcheck
	}

	date, err := req.Date()
	if err != nil {
		return res, failure.BadRequestFromString("reservation_date must be a valid RFC3339 timestamp") // nolint:wrapcheck
	}

	if err = validateSlot(shop, date); err != nil {
		return res, err
	}

	if role != constant.RoleAdmin {
		active, err := s.repo.Count(ctx, userActiveFilter(user))
		if err != nil {
			log.Error().Err(err).Msg("failed to count active reservations")

			return res, fmt.Errorf("failed to count active reservations: %w", err)
		}

		if active >= constant.MaxActiveReservations {
			return res, failure.BadRequestFromString("active reservation limit reached") // nolint:wrapcheck
		}
	}

	release := s.locks.Acquire(shop.ID, date)
	defer release()

	taken, err := s.repo.Count(ctx, slotFilter(shop.ID, date, model.StatusConfirmed, model.StatusWaitlisted))
	if err != nil {
		log.Error().Err(err).Msg("failed to count slot occupancy")

		return res, fmt.Errorf("failed to count slot occupancy: %w", err)
	}

	reservation := model.Reservation{
		ID:              uuid.NewString(),
		UserID:          user,
		ShopID:          shop.ID,
		ReservationDate: date,
		Status:          model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if taken >= shop.TimeslotCapacity {
		reservation.Status = model.StatusWaitlisted
		reservation.WaitlistPosition = sql.NullInt64{Int64: int64(taken - shop.TimeslotCapacity), Valid: true}
	}

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to insert reservation")

		return res, fmt.Errorf("failed to insert reservation: %w", err)
	}

	s.invalidateListCaches(ctx)

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	scoped := scopeToCaller(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, scoped)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	scoped := scopeToCaller(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, scoped)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err != nil {
		reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get reservation")

			return res, fmt.Errorf("failed to get reservation: %w", err)
		}

		if reservation.ID == constant.Empty {
			return res, failure.NotFound("reservation not found") // nolint:wrapcheck
		}

		res.FromModel(reservation)

		cached := res
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save reservation to cache")
			}
		}()
	} else {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")
	}

	if role != constant.RoleAdmin && res.UserID != user {
		return dto.ReservationResponse{}, failure.Forbidden("reservation belongs to another user") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin && reservation.UserID != user {
		return res, failure.Forbidden("reservation belongs to another user") // nolint:wrapcheck
	}

	if !reservation.Active() {
		return res, failure.Conflict("reservation is no longer active") // nolint:wrapcheck
	}

	newDate, err := req.Date()
	if err != nil {
		return res, failure.BadRequestFromString("reservation_date must be a valid RFC3339 timestamp") // nolint:wrapcheck
	}

	if newDate.Equal(reservation.ReservationDate.UTC()) {
		return res, failure.Conflict("reservation is already scheduled at the requested time") // nolint:wrapcheck
	}

	shop, err := s.shopRepo.Get(ctx, shared.FilterByID(reservation.ShopID, shopModel.FieldID, shopModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get shop")

		return res, fmt.Errorf("failed to get shop: %w", err)
	}

	if shop.ID == constant.Empty {
		return res, failure.NotFound("shop not found") // nolint:wrapcheck
	}

	if err = validateSlot(shop, newDate); err != nil {
		return res, err
	}

	oldDate := reservation.ReservationDate
	oldVacated := vacatedPosition(reservation)

	// Fresh admission against the new slot.
	release := s.locks.Acquire(shop.ID, newDate)

	taken, err := s.repo.Count(ctx, slotFilter(shop.ID, newDate, model.StatusConfirmed, model.StatusWaitlisted))
	if err != nil {
		release()
		log.Error().Err(err).Msg("failed to count slot occupancy")

		return res, fmt.Errorf("failed to count slot occupancy: %w", err)
	}

	reservation.ReservationDate = newDate
	reservation.Status = model.StatusConfirmed
	reservation.WaitlistPosition = sql.NullInt64{}
	if taken >= shop.TimeslotCapacity {
		reservation.Status = model.StatusWaitlisted
		reservation.WaitlistPosition = sql.NullInt64{Int64: int64(taken - shop.TimeslotCapacity), Valid: true}
	}
	reservation.ModifiedAt = timezone.Now()
	reservation.ModifiedBy = user

	fields := map[string]any{
		model.FieldReservationDate:  reservation.ReservationDate,
		model.FieldStatus:           reservation.Status,
		model.FieldWaitlistPosition: reservation.WaitlistPosition,
		constant.FieldModifiedAt:    reservation.ModifiedAt,
		constant.FieldModifiedBy:    reservation.ModifiedBy,
	}

	err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	release()
	if err != nil {
		log.Error().Err(err).Msg("failed to update reservation")

		return res, fmt.Errorf("failed to update reservation: %w", err)
	}

	// Vacating the old slot may unblock its waitlist. Best effort: the move
	// itself is already committed.
	if err := s.promote(ctx, shop.ID, oldDate, oldVacated); err != nil {
		log.Warn().Err(err).Msg("waitlist promotion after reservation move failed")
	}

	s.invalidateCaches(ctx, id)

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin && reservation.UserID != user {
		return failure.Forbidden("reservation belongs to another user") // nolint:wrapcheck
	}

	if !reservation.Active() {
		return failure.Conflict("reservation is no longer active") // nolint:wrapcheck
	}

	if err = s.terminate(ctx, reservation, model.StatusCancelled, user, false); err != nil {
		return err
	}

	if err := s.promote(ctx, reservation.ShopID, reservation.ReservationDate, vacatedPosition(reservation)); err != nil {
		log.Warn().Err(err).Msg("waitlist promotion after cancellation failed")
	}

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin {
		return failure.Forbidden("only admins may complete reservations") // nolint:wrapcheck
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !reservation.Active() {
		return failure.Conflict("reservation is no longer active") // nolint:wrapcheck
	}

	if err = s.terminate(ctx, reservation, model.StatusCompleted, user, false); err != nil {
		return err
	}

	// Completing a waitlisted entry leaves a gap in the position sequence,
	// so the slot still needs renumbering. A completed confirmed visit does
	// not free anything worth promoting into.
	if reservation.Status == model.StatusWaitlisted {
		if err := s.promote(ctx, reservation.ShopID, reservation.ReservationDate, vacatedPosition(reservation)); err != nil {
			log.Warn().Err(err).Msg("waitlist renumbering after completion failed")
		}
	}

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin && reservation.UserID != user {
		return failure.Forbidden("reservation belongs to another user") // nolint:wrapcheck
	}

	if err = s.terminate(ctx, reservation, model.StatusCancelled, user, true); err != nil {
		return err
	}

	if reservation.Active() {
		if err := s.promote(ctx, reservation.ShopID, reservation.ReservationDate, vacatedPosition(reservation)); err != nil {
			log.Warn().Err(err).Msg("waitlist promotion after deletion failed")
		}
	}

	s.invalidateCaches(ctx, id)

	return nil
}

// terminate archives a snapshot of the reservation and either hard-deletes
// the row or parks it in a terminal status, atomically.
func (s *serviceImpl) terminate(ctx context.Context, reservation model.Reservation, status, user string, hardDelete bool) error {
	shopName := constant.Empty
	if shop, shopErr := s.shopRepo.Get(ctx, shared.FilterByID(reservation.ShopID, shopModel.FieldID, shopModel.TableName)); shopErr == nil {
		shopName = shop.Name
	}

	history := historyModel.History{
		ID:              uuid.NewString(),
		ReservationID:   reservation.ID,
		UserID:          reservation.UserID,
		ShopID:          reservation.ShopID,
		ShopName:        shopName,
		ReservationDate: reservation.ReservationDate,
		Status:          status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	err := s.repo.InTx(ctx, func(sqltx *sqlx.Tx) error {
		if err := s.historyRepo.InsertTx(ctx, sqltx, history); err != nil {
			return fmt.Errorf("failed to archive reservation history: %w", err)
		}

		filter := shared.FilterByID(reservation.ID, model.FieldID, model.TableName)

		if hardDelete {
			return s.repo.DeleteTx(ctx, sqltx, filter)
		}

		return s.repo.UpdateTx(ctx, sqltx, map[string]any{
			model.FieldStatus:           status,
			model.FieldWaitlistPosition: nil,
			constant.FieldModifiedAt:    timezone.Now(),
			constant.FieldModifiedBy:    user,
		}, filter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to terminate reservation")

		return fmt.Errorf("failed to terminate reservation: %w", err)
	}

	return nil
}

// promote renumbers the waitlist of a slot after one of its reservations
// vacated, then advances the head of the queue into any freed capacity.
// A missing shop makes this a logged no-op.
func (s *serviceImpl) promote(ctx context.Context, shopID string, slot time.Time, vacated *int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".promote")
	defer scope.End()
	defer scope.TraceIfError(err)

	shop, err := s.shopRepo.Get(ctx, shared.FilterByID(shopID, shopModel.FieldID, shopModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get shop: %w", err)
	}

	if shop.ID == constant.Empty {
		log.Warn().Str("shopID", shopID).Msg("skipping waitlist promotion for missing shop")

		return nil
	}

	release := s.locks.Acquire(shopID, slot)
	defer release()

	decrement := map[string]string{
		model.FieldWaitlistPosition: model.FieldWaitlistPosition + " - 1",
	}

	err = s.repo.InTx(ctx, func(sqltx *sqlx.Tx) error {
		if vacated != nil {
			if _, err := s.repo.UpdateExprTx(ctx, sqltx, decrement, waitlistAfterFilter(shopID, slot, *vacated)); err != nil {
				return fmt.Errorf("failed to shift waitlist positions: %w", err)
			}
		}

		confirmed, err := s.repo.CountTx(ctx, sqltx, slotFilter(shopID, slot, model.StatusConfirmed))
		if err != nil {
			return fmt.Errorf("failed to count confirmed reservations: %w", err)
		}

		if confirmed >= shop.TimeslotCapacity {
			return nil
		}

		head, err := s.repo.GetWaitlistHeadTx(ctx, sqltx, shopID, slot)
		if err != nil {
			return fmt.Errorf("failed to lock waitlist head: %w", err)
		}

		if head.ID == constant.Empty {
			return nil
		}

		err = s.repo.UpdateTx(ctx, sqltx, map[string]any{
			model.FieldStatus:           model.StatusConfirmed,
			model.FieldWaitlistPosition: nil,
			constant.FieldModifiedAt:    timezone.Now(),
		}, shared.FilterByID(head.ID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to promote waitlist head: %w", err)
		}

		if _, err := s.repo.UpdateExprTx(ctx, sqltx, decrement, waitlistAfterFilter(shopID, slot, head.WaitlistPosition.Int64)); err != nil {
			return fmt.Errorf("failed to shift waitlist positions: %w", err)
		}

		log.Info().
			Str("reservationID", head.ID).
			Str("shopID", shopID).
			Time("slot", slot).
			Msg("promoted waitlist head to confirmed")

		return nil
	})

	return err
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation cache")
		}

		// Promotions touch sibling reservations too, so single-entry keys
		// cannot be invalidated precisely. Clear the whole prefix.
		shared.InvalidateCaches(c, s.cache, cacheGetReservation)
		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()
}

// validateSlot runs the slot-shape checks shared by admission and
// re-admission: whole minutes only, inside operating hours, on the grid.
func validateSlot(shop shopModel.Shop, date time.Time) error {
	if date.Second() != 0 || date.Nanosecond() != 0 {
		return failure.BadRequestFromString("reservation time must fall exactly on a minute boundary") // nolint:wrapcheck
	}

	open, err := schedule.MinuteOfDay(shop.OpenTime)
	if err != nil {
		return failure.InternalError(err) // nolint:wrapcheck
	}

	close, err := schedule.MinuteOfDay(shop.CloseTime)
	if err != nil {
		return failure.InternalError(err) // nolint:wrapcheck
	}

	minute := date.UTC().Hour()*constant.MinutesPerHour + date.UTC().Minute()

	if !schedule.Within(minute, open, close) {
		return failure.BadRequestFromString("requested time is outside operating hours") // nolint:wrapcheck
	}

	if !schedule.Aligned(minute, open, shop.SlotDuration) {
		return failure.BadRequestFromString("requested time does not start a timeslot") // nolint:wrapcheck
	}

	return nil
}

func vacatedPosition(reservation model.Reservation) *int64 {
	if reservation.Status == model.StatusWaitlisted && reservation.WaitlistPosition.Valid {
		position := reservation.WaitlistPosition.Int64

		return &position
	}

	return nil
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

func slotFilter(shopID string, slot time.Time, statuses ...string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "slot_shop_id",
				Field:    model.FieldShopID,
				Value:    shopID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "slot_date",
				Field:    model.FieldReservationDate,
				Value:    slot,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "slot_status",
				Field:    model.FieldStatus,
				Value:    statuses,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}
}

func waitlistAfterFilter(shopID string, slot time.Time, position int64) gDto.FilterGroup {
	filter := slotFilter(shopID, slot, model.StatusWaitlisted)
	filter.Filters = append(filter.Filters, gDto.Filter{
		ArgName:  "after_position",
		Field:    model.FieldWaitlistPosition,
		Value:    position,
		Operator: gDto.FilterOperatorGreater,
		Table:    model.TableName,
	})

	return filter
}

func userActiveFilter(userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "owner_user_id",
				Field:    model.FieldUserID,
				Value:    userID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "active_status",
				Field:    model.FieldStatus,
				Value:    []string{model.StatusConfirmed, model.StatusWaitlisted},
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}
}
