package http

import (
	"go.uber.org/fx"

	trackingtransport "github.com/sakewinkel/console/internal/transport/http/tracking"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	trackingtransport.Module,
)
