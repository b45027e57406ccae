//go:build wireinject
// +build wireinject

package main

import (
	"Vidhub/config"
	"Vidhub/dao"
	"Vidhub/handler"
	"Vidhub/pkg/client"
	"Vidhub/pkg/database"
	"Vidhub/pkg/lock"
	"Vidhub/pkg/media"
	"Vidhub/pkg/rocketmq"
	"Vidhub/pkg/server"
	"Vidhub/pkg/storage"
	"Vidhub/pkg/stream"
	"Vidhub/pkg/upload"
	"Vidhub/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		lock.NewLocker,
		storage.NewStore,
		media.NewProber,
		config.ProvideRocketMQConfig,
		config.ProvideStorageConfig,
		rocketmq.NewPublisher,
		upload.NewIntake,
		stream.NewResponder,

		dao.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Video), "*"),
		wire.Struct(new(handler.Comment), "*"),
		wire.Struct(new(handler.Subscription), "*"),
		wire.Struct(new(handler.History), "*"),
		wire.Struct(new(handler.Search), "*"),
		wire.Struct(new(handler.User), "*"),

		server.NewGinEngine,
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil, nil
}
