package config

import "go.uber.org/fx"

// Module provides the Config read from flags, environment and .env.
var Module = fx.Provide(Load)
