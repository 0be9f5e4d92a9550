package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/onboarding/internal/adapter/backend"
	"github.com/polkiloo/onboarding/internal/app"
	"github.com/polkiloo/onboarding/internal/config"
	"github.com/polkiloo/onboarding/internal/documents"
	"github.com/polkiloo/onboarding/internal/logger"
	"github.com/polkiloo/onboarding/internal/metrics"
	"github.com/polkiloo/onboarding/internal/pkg/auth"
	"github.com/polkiloo/onboarding/internal/server/http/router"
	"github.com/polkiloo/onboarding/internal/session"
	"github.com/polkiloo/onboarding/internal/storage"
	"github.com/polkiloo/onboarding/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		storage.Module,
		session.Module,
		documents.Module,
		backend.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
