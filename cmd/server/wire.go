//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/kerry-png/clubstand-platform-sub000/internal/biz"
	"github.com/kerry-png/clubstand-platform-sub000/internal/conf"
	"github.com/kerry-png/clubstand-platform-sub000/internal/data"
	"github.com/kerry-png/clubstand-platform-sub000/internal/server"
	"github.com/kerry-png/clubstand-platform-sub000/internal/service"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init kratos application.
func wireApp(*conf.Bootstrap, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(server.ProviderSet, data.ProviderSet, biz.ProviderSet, service.ProviderSet, newApp))
}
