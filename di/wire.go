//go:build wireinject
// +build wireinject

package di

import (
	"sabai/config"
	"sabai/infras/jwt"
	"sabai/infras/otel"
	"sabai/infras/postgres"
	"sabai/infras/redis"
	"sabai/infras/s3"
	"sabai/infras/sentiment"
	"sabai/permissions"
	"sabai/shared/cache"
	"sabai/transport/http"
	"sabai/transport/http/middleware"
	"sabai/transport/http/router"

	authService "sabai/internal/domains/auth/service"
	galleryRepository "sabai/internal/domains/gallery/repository"
	galleryService "sabai/internal/domains/gallery/service"
	historyRepository "sabai/internal/domains/history/repository"
	historyService "sabai/internal/domains/history/service"
	reservationRepository "sabai/internal/domains/reservation/repository"
	reservationService "sabai/internal/domains/reservation/service"
	shopRepository "sabai/internal/domains/shop/repository"
	shopService "sabai/internal/domains/shop/service"
	userRepository "sabai/internal/domains/user/repository"

	authHandler "sabai/internal/handlers/auth"
	galleryHandler "sabai/internal/handlers/gallery"
	historyHandler "sabai/internal/handlers/history"
	reservationHandler "sabai/internal/handlers/reservation"
	shopHandler "sabai/internal/handlers/shop"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	sentiment.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var shopDomain = wire.NewSet(
	shopRepository.New,
	shopService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var historyDomain = wire.NewSet(
	historyRepository.New,
	historyService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var domains = wire.NewSet(
	authDomain,
	shopDomain,
	reservationDomain,
	historyDomain,
	galleryDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	shopHandler.New,
	reservationHandler.New,
	historyHandler.New,
	galleryHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
