//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/permissions"
	"hotel/shared/cache"
	gRepo "hotel/shared/repository"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	authService "hotel/internal/domains/auth/service"
	availabilityService "hotel/internal/domains/availability/service"
	bookingEvent "hotel/internal/domains/booking/event"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	reportService "hotel/internal/domains/report/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	roomTypeRepository "hotel/internal/domains/roomtype/repository"
	roomTypeService "hotel/internal/domains/roomtype/service"
	userRepository "hotel/internal/domains/user/repository"

	authHandler "hotel/internal/handlers/auth"
	availabilityHandler "hotel/internal/handlers/availability"
	bookingHandler "hotel/internal/handlers/booking"
	reportHandler "hotel/internal/handlers/report"
	roomHandler "hotel/internal/handlers/room"
	roomTypeHandler "hotel/internal/handlers/roomtype"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var repositories = wire.NewSet(
	userRepository.New,
	roomTypeRepository.New,
	roomRepository.New,
	bookingRepository.New,
)

var domains = wire.NewSet(
	authService.New,
	roomTypeService.New,
	roomService.New,
	availabilityService.New,
	bookingEvent.New,
	bookingService.New,
	reportService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomTypeHandler.New,
	availabilityHandler.New,
	roomHandler.New,
	bookingHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
