package di

import (
	"github.com/akulagin/clubhouse/internal/app"
	"github.com/akulagin/clubhouse/internal/config"
	"github.com/akulagin/clubhouse/internal/logger"
	"github.com/akulagin/clubhouse/internal/pkg/auth"
	"github.com/akulagin/clubhouse/internal/server/http/handlers"
	"github.com/akulagin/clubhouse/internal/server/http/router"
	"github.com/akulagin/clubhouse/internal/storage/postgres"
	"github.com/akulagin/clubhouse/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(func(f *app.ClubFacade) handlers.ClubFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
