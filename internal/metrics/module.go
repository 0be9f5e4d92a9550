package metrics

import "go.uber.org/fx"

// Module provides the service Metrics.
var Module = fx.Provide(New)
