//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"futsald/internal"
	"futsald/internal/controllers"
	"futsald/internal/maintenance"
	"futsald/internal/providers"
	"futsald/internal/services"
	"futsald/internal/store"
	"futsald/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		store.NewStore,
		services.NewAttendanceService,
		services.NewIdentityService,
		services.NewBoardService,
		services.NewStatsService,

		maintenance.NewZstdCompressor,
		maintenance.NewFileManager,
		maintenance.NewScheduler,

		controllers.NewAttendanceController,
		controllers.NewIdentityController,
		controllers.NewBoardController,
		controllers.NewHealthController,
		controllers.NewSubscribeController,

		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
