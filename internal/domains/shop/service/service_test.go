package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sabai/config"
	"sabai/infras/otel/mocks"
	historyMocks "sabai/internal/domains/history/mocks"
	historyModel "sabai/internal/domains/history/model"
	reservationMocks "sabai/internal/domains/reservation/mocks"
	reservationModel "sabai/internal/domains/reservation/model"
	shopMocks "sabai/internal/domains/shop/mocks"
	"sabai/internal/domains/shop/model"
	"sabai/internal/domains/shop/model/dto"
	"sabai/internal/domains/shop/service"
	cacheMocks "sabai/shared/cache/mocks"
	"sabai/shared/constant"
	gDto "sabai/shared/dto"
	gModel "sabai/shared/model"
	"sabai/shared/timezone"
)

func validShop() model.Shop {
	return model.Shop{
		ID:               "shop-id-123",
		Name:             "Downtown Garage",
		Address:          "1 Main St",
		Telephone:        "0812345678",
		OpenTime:         "09:00",
		CloseTime:        "17:00",
		SlotDuration:     60,
		TimeslotCapacity: 2,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func intPtr(v int) *int {
	return &v
}

func TestShopService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shopMocks.NewMockShop(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockHistoryRepo := historyMocks.NewMockHistory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockReservationRepo, mockHistoryRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateShopRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation with defaults",
			req: dto.CreateShopRequest{
				Name:      "Downtown Garage",
				OpenTime:  "09:00",
				CloseTime: "17:00",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, shop model.Shop) error {
						assert.Equal(t, 60, shop.SlotDuration)
						assert.Equal(t, 1, shop.TimeslotCapacity)
						assert.NotEmpty(t, shop.ID)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "explicit slot settings",
			req: dto.CreateShopRequest{
				Name:             "Downtown Garage",
				OpenTime:         "08:00",
				CloseTime:        "20:00",
				SlotDuration:     intPtr(30),
				TimeslotCapacity: intPtr(4),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, shop model.Shop) error {
						assert.Equal(t, 30, shop.SlotDuration)
						assert.Equal(t, 4, shop.TimeslotCapacity)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "open time after close time",
			req: dto.CreateShopRequest{
				Name:      "Downtown Garage",
				OpenTime:  "18:00",
				CloseTime: "09:00",
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "open time equal to close time",
			req: dto.CreateShopRequest{
				Name:      "Downtown Garage",
				OpenTime:  "09:00",
				CloseTime: "09:00",
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "repository error",
			req: dto.CreateShopRequest{
				Name:      "Downtown Garage",
				OpenTime:  "09:00",
				CloseTime: "17:00",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShopService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shopMocks.NewMockShop(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockHistoryRepo := historyMocks.NewMockHistory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockReservationRepo, mockHistoryRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name       string
		id         string
		setupMock  func()
		wantErr    bool
		wantRating *float64
		wantCount  int
	}{
		{
			name: "cache miss with reviews",
			id:   "shop-id-123",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validShop(), nil)

				mockHistoryRepo.EXPECT().
					AverageShopRating(gomock.Any(), "shop-id-123").
					Return(historyModel.ShopRating{
						Average: sql.NullFloat64{Float64: 4.5, Valid: true},
						Count:   12,
					}, nil)
			},
			wantErr:    false,
			wantRating: floatPtr(4.5),
			wantCount:  12,
		},
		{
			name: "cache hit still attaches fresh rating",
			id:   "shop-id-123",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res := value.(*dto.ShopResponse)
						res.FromModel(validShop())

						return nil
					})

				mockHistoryRepo.EXPECT().
					AverageShopRating(gomock.Any(), "shop-id-123").
					Return(historyModel.ShopRating{}, nil)
			},
			wantErr:    false,
			wantRating: nil,
			wantCount:  0,
		},
		{
			name: "shop not found",
			id:   "missing-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Shop{}, nil)
			},
			wantErr: true,
		},
		{
			name: "rating lookup error",
			id:   "shop-id-123",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validShop(), nil)

				mockHistoryRepo.EXPECT().
					AverageShopRating(gomock.Any(), "shop-id-123").
					Return(historyModel.ShopRating{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "shop-id-123", res.ID)
			assert.Equal(t, tt.wantCount, res.ReviewCount)
			if tt.wantRating == nil {
				assert.Nil(t, res.Rating)
			} else {
				assert.NotNil(t, res.Rating)
				assert.InDelta(t, *tt.wantRating, *res.Rating, 0.001)
			}
		})
	}
}

func TestShopService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shopMocks.NewMockShop(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockHistoryRepo := historyMocks.NewMockHistory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockReservationRepo, mockHistoryRepo, cfg, mockCache, mockOtel)

	t.Run("pagination descriptors", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(3, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Shop{validShop(), validShop()}, nil)

		req := gDto.QueryParams{Page: 1, Limit: 2}

		res, err := svc.GetAll(context.Background(), req, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Shops, 2)
		assert.Equal(t, 3, res.Pagination.TotalData)
		assert.Equal(t, 2, res.Pagination.TotalPage)
		assert.Nil(t, res.Pagination.Prev)
		assert.NotNil(t, res.Pagination.Next)
		assert.Equal(t, 2, res.Pagination.Next.Page)
	})

	t.Run("repository error", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(3, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestShopService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shopMocks.NewMockShop(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockHistoryRepo := historyMocks.NewMockHistory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockReservationRepo, mockHistoryRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.UpdateShopRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  dto.UpdateShopRequest{Name: "Uptown Garage"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validShop(), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "new open time collides with current close time",
			req:  dto.UpdateShopRequest{OpenTime: "18:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validShop(), nil)
			},
			wantErr: true,
		},
		{
			name: "widening hours on both ends",
			req:  dto.UpdateShopRequest{OpenTime: "08:00", CloseTime: "20:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validShop(), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "shop not found",
			req:  dto.UpdateShopRequest{Name: "Uptown Garage"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Shop{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, tt.req, "shop-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShopService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shopMocks.NewMockShop(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockHistoryRepo := historyMocks.NewMockHistory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockReservationRepo, mockHistoryRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful delete",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "shop not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "shop-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShopService_Timeslots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := shopMocks.NewMockShop(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockHistoryRepo := historyMocks.NewMockHistory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockReservationRepo, mockHistoryRepo, cfg, mockCache, mockOtel)

	t.Run("occupancy is mapped onto the grid", func(t *testing.T) {
		shop := validShop()
		shop.CloseTime = "12:00"

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(shop, nil)

		mockReservationRepo.EXPECT().
			CountBySlot(gomock.Any(), shop.ID, gomock.Any(), gomock.Any()).
			Return([]reservationModel.SlotCount{
				{Slot: "09:00", Confirmed: 2, Waitlisted: 1},
				{Slot: "10:00", Confirmed: 1},
			}, nil)

		res, err := svc.Timeslots(context.Background(), shop.ID, "2026-09-01")

		assert.NoError(t, err)
		assert.Equal(t, shop.ID, res.ShopID)
		assert.Equal(t, "2026-09-01", res.Date)
		assert.Len(t, res.Timeslots, 3)

		assert.Equal(t, "09:00", res.Timeslots[0].Time)
		assert.Equal(t, 2, res.Timeslots[0].Reserved)
		assert.Equal(t, 1, res.Timeslots[0].Waitlisted)
		assert.Equal(t, 0, res.Timeslots[0].Available)

		assert.Equal(t, "10:00", res.Timeslots[1].Time)
		assert.Equal(t, 1, res.Timeslots[1].Reserved)
		assert.Equal(t, 1, res.Timeslots[1].Available)

		assert.Equal(t, "11:00", res.Timeslots[2].Time)
		assert.Equal(t, 0, res.Timeslots[2].Reserved)
		assert.Equal(t, 2, res.Timeslots[2].Available)
	})

	t.Run("invalid date", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(validShop(), nil)

		_, err := svc.Timeslots(context.Background(), "shop-id-123", "01-09-2026")

		assert.Error(t, err)
	})

	t.Run("shop not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Shop{}, nil)

		_, err := svc.Timeslots(context.Background(), "missing-id", "2026-09-01")

		assert.Error(t, err)
	})
}

func floatPtr(v float64) *float64 {
	return &v
}
