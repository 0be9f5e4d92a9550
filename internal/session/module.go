package session

import "go.uber.org/fx"

// Module provides the session Manager.
var Module = fx.Provide(NewManager)
