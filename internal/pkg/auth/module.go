package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/onboarding/internal/config"
)

// Module provides session token and sealing primitives via fx.
var Module = fx.Options(
	fx.Provide(newSealer),
	fx.Provide(newTokenStrategy),
)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newSealer(p strategyParams) (Sealer, error) {
	return NewAEADSealer(p.Config.SessionSecret)
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.SessionSecret, Options{TTL: p.Config.SessionTTL})
}
