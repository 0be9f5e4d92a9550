package documents

import "go.uber.org/fx"

// Module provides the shared document Store.
var Module = fx.Provide(NewStore)
