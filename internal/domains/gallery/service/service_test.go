package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sabai/config"
	"sabai/infras/otel/mocks"
	s3Mocks "sabai/infras/s3/mocks"
	galleryMocks "sabai/internal/domains/gallery/mocks"
	"sabai/internal/domains/gallery/model"
	"sabai/internal/domains/gallery/model/dto"
	"sabai/internal/domains/gallery/service"
	shopMocks "sabai/internal/domains/shop/mocks"
	cacheMocks "sabai/shared/cache/mocks"
	"sabai/shared/constant"
	gModel "sabai/shared/model"
	"sabai/shared/timezone"
)

func testGallery() model.Gallery {
	return model.Gallery{
		ID:       "gallery-id-123",
		ShopID:   "shop-id-123",
		Title:    "Front desk",
		ImageURL: "https://cdn.example.com/test-bucket/gallery/old-image.jpg",
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "admin-id",
			ModifiedBy: "admin-id",
		},
	}
}

func TestGalleryService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := galleryMocks.NewMockGallery(ctrl)
	mockShopRepo := shopMocks.NewMockShop(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockS3 := s3Mocks.NewMockS3(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "test-bucket"

	svc := service.New(mockRepo, mockShopRepo, cfg, mockCache, mockOtel, mockS3)

	validReq := dto.CreateGalleryRequest{
		ShopID: "shop-id-123",
		Title:  "Front desk",
		Image: &multipart.FileHeader{
			Filename: "front-desk.jpg",
		},
		ImageFile: nil,
	}

	tests := []struct {
		name      string
		req       dto.CreateGalleryRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func() {
				mockShopRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				mockS3.EXPECT().
					UploadFile(gomock.Any(), "test-bucket", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, error) {
						// uuid object name, original extension kept
						assert.NotEqual(t, "front-desk.jpg", fileName)
						assert.Regexp(t, `\.jpg$`, fileName)

						return "https://cdn.example.com/test-bucket/gallery/" + fileName, nil
					})
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, gallery model.Gallery) error {
						assert.Equal(t, "shop-id-123", gallery.ShopID)
						assert.NotEmpty(t, gallery.ImageURL)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "shop not found",
			req:  validReq,
			setupMock: func() {
				mockShopRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "upload failure",
			req:  validReq,
			setupMock: func() {
				mockShopRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				mockS3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("s3 upload error"))
			},
			wantErr: true,
		},
		{
			name: "insert failure cleans up the uploaded object",
			req:  validReq,
			setupMock: func() {
				mockShopRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				mockS3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/test-bucket/gallery/some-object.jpg", nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("insert error"))
				mockS3.EXPECT().
					DeleteFile(gomock.Any(), "test-bucket", model.EntityName, gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGalleryService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := galleryMocks.NewMockGallery(ctrl)
	mockShopRepo := shopMocks.NewMockShop(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockS3 := s3Mocks.NewMockS3(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "test-bucket"

	svc := service.New(mockRepo, mockShopRepo, cfg, mockCache, mockOtel, mockS3)

	tests := []struct {
		name      string
		req       dto.UpdateGalleryRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "title only update leaves the image alone",
			req:  dto.UpdateGalleryRequest{Title: "Waiting area"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testGallery(), nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, "Waiting area", fields[model.FieldTitle])
						assert.NotContains(t, fields, model.FieldImageURL)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "image replacement deletes the old object",
			req: dto.UpdateGalleryRequest{
				Image: &multipart.FileHeader{
					Filename: "new-image.png",
				},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testGallery(), nil)
				mockS3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/test-bucket/gallery/new-object.png", nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, "https://cdn.example.com/test-bucket/gallery/new-object.png", fields[model.FieldImageURL])

						return nil
					})
				mockS3.EXPECT().
					GetObjectNameFromURL("test-bucket", testGallery().ImageURL).
					Return("old-image.jpg")
				mockS3.EXPECT().
					DeleteFile(gomock.Any(), "test-bucket", model.EntityName, "old-image.jpg").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "gallery not found",
			req:  dto.UpdateGalleryRequest{Title: "Waiting area"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Gallery{}, nil)
			},
			wantErr: true,
		},
		{
			name: "update failure cleans up the new object",
			req: dto.UpdateGalleryRequest{
				Image: &multipart.FileHeader{
					Filename: "new-image.png",
				},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testGallery(), nil)
				mockS3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/test-bucket/gallery/new-object.png", nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
				mockS3.EXPECT().
					DeleteFile(gomock.Any(), "test-bucket", model.EntityName, gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
			err := svc.Update(ctx, tt.req, "gallery-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGalleryService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := galleryMocks.NewMockGallery(ctrl)
	mockShopRepo := shopMocks.NewMockShop(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockS3 := s3Mocks.NewMockS3(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockS3.EXPECT().GetObjectNameFromURL(gomock.Any(), gomock.Any()).Return("old-image.jpg").AnyTimes()
	mockS3.EXPECT().DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "test-bucket"

	svc := service.New(mockRepo, mockShopRepo, cfg, mockCache, mockOtel, mockS3)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testGallery(), nil)
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "gallery not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Gallery{}, nil)
			},
			wantErr: true,
		},
		{
			name: "delete failure",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testGallery(), nil)
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("delete error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
			err := svc.Delete(ctx, "gallery-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
