package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sabai/config"
	"sabai/infras/otel/mocks"
	"sabai/infras/sentiment"
	sentimentMocks "sabai/infras/sentiment/mocks"
	historyMocks "sabai/internal/domains/history/mocks"
	"sabai/internal/domains/history/model"
	"sabai/internal/domains/history/model/dto"
	"sabai/internal/domains/history/service"
	cacheMocks "sabai/shared/cache/mocks"
	"sabai/shared/constant"
	"sabai/shared/failure"
	gModel "sabai/shared/model"
	"sabai/shared/timezone"
)

func completedHistory() model.History {
	return model.History{
		ID:              "history-id-1",
		ReservationID:   "reservation-id-1",
		UserID:          "user-id-1",
		ShopID:          "shop-id-123",
		ShopName:        "Downtown Garage",
		ReservationDate: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		Status:          model.StatusCompleted,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "user-id-1",
			ModifiedBy: "user-id-1",
		},
	}
}

func userCtx(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestHistoryService_Review(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := historyMocks.NewMockHistory(ctrl)
	mockSentiment := sentimentMocks.NewMockAnalyzer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockSentiment, cfg, mockCache, mockOtel)

	req := dto.ReviewRequest{Review: "great service, quick and friendly"}

	tests := []struct {
		name       string
		ctx        context.Context
		setupMock  func()
		wantErr    bool
		wantCode   int
		wantRating float64
	}{
		{
			name: "owner reviews a completed visit",
			ctx:  userCtx("user-id-1", constant.RoleUser),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedHistory(), nil)

				mockSentiment.EXPECT().
					Analyze(gomock.Any(), req.Review).
					Return(sentiment.Score{Positive: 0.9, Negative: 0.1}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						rating := fields[model.FieldRating].(sql.NullFloat64)
						assert.True(t, rating.Valid)
						assert.InDelta(t, 4.5, rating.Float64, 0.001)

						return nil
					})
			},
			wantRating: 4.5,
		},
		{
			name: "history not found",
			ctx:  userCtx("user-id-1", constant.RoleUser),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.History{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "someone else's history is forbidden",
			ctx:  userCtx("user-id-2", constant.RoleUser),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedHistory(), nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "cancelled visit cannot be reviewed by its owner",
			ctx:  userCtx("user-id-1", constant.RoleUser),
			setupMock: func() {
				history := completedHistory()
				history.Status = model.StatusCancelled

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(history, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "second review is rejected",
			ctx:  userCtx("user-id-1", constant.RoleUser),
			setupMock: func() {
				history := completedHistory()
				history.Review = sql.NullString{String: "already said it all", Valid: true}
				history.Rating = sql.NullFloat64{Float64: 3.5, Valid: true}

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(history, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "admin may review a cancelled visit",
			ctx:  userCtx("admin-id-1", constant.RoleAdmin),
			setupMock: func() {
				history := completedHistory()
				history.Status = model.StatusCancelled

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(history, nil)

				mockSentiment.EXPECT().
					Analyze(gomock.Any(), req.Review).
					Return(sentiment.Score{Positive: 0.2, Negative: 0.8}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantRating: 1.0,
		},
		{
			name: "sentiment failure propagates as bad gateway",
			ctx:  userCtx("user-id-1", constant.RoleUser),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedHistory(), nil)

				mockSentiment.EXPECT().
					Analyze(gomock.Any(), req.Review).
					Return(sentiment.Score{}, failure.BadGateway("sentiment service unavailable"))
			},
			wantErr:  true,
			wantCode: 502,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Review(tt.ctx, req, "history-id-1")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, res.Review)
			assert.Equal(t, req.Review, *res.Review)
			assert.NotNil(t, res.Rating)
			assert.InDelta(t, tt.wantRating, *res.Rating, 0.001)
		})
	}
}

func TestHistoryService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := historyMocks.NewMockHistory(ctrl)
	mockSentiment := sentimentMocks.NewMockAnalyzer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockSentiment, cfg, mockCache, mockOtel)

	req := dto.CreateHistoryRequest{
		ReservationID:   "3f0e8f7c-23c8-4f3d-9a3e-1f25b1c7a111",
		UserID:          "3f0e8f7c-23c8-4f3d-9a3e-1f25b1c7a222",
		ShopID:          "3f0e8f7c-23c8-4f3d-9a3e-1f25b1c7a333",
		ShopName:        "Downtown Garage",
		ReservationDate: "2026-09-01T09:00:00Z",
		Status:          model.StatusCompleted,
	}

	t.Run("admin creates a record", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, history model.History) error {
				assert.Equal(t, req.ReservationID, history.ReservationID)
				assert.Equal(t, model.StatusCompleted, history.Status)

				return nil
			})

		err := svc.Create(userCtx("admin-id-1", constant.RoleAdmin), req)

		assert.NoError(t, err)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		err := svc.Create(userCtx("user-id-1", constant.RoleUser), req)

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestHistoryService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := historyMocks.NewMockHistory(ctrl)
	mockSentiment := sentimentMocks.NewMockAnalyzer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockSentiment, cfg, mockCache, mockOtel)

	t.Run("owner reads own history", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(completedHistory(), nil)

		res, err := svc.Get(userCtx("user-id-1", constant.RoleUser), "history-id-1")

		assert.NoError(t, err)
		assert.Equal(t, "history-id-1", res.ID)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(completedHistory(), nil)

		_, err := svc.Get(userCtx("user-id-2", constant.RoleUser), "history-id-1")

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestHistoryService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := historyMocks.NewMockHistory(ctrl)
	mockSentiment := sentimentMocks.NewMockAnalyzer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockSentiment, cfg, mockCache, mockOtel)

	t.Run("admin deletes", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(userCtx("admin-id-1", constant.RoleAdmin), "history-id-1")

		assert.NoError(t, err)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		err := svc.Delete(userCtx("user-id-1", constant.RoleUser), "history-id-1")

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})
}
