package tracking

import (
	"go.uber.org/fx"

	repo "github.com/sakewinkel/console/internal/repository/tracking"
)

// Module provides the tracking service to Fx, backed by the bun repository.
var Module = fx.Provide(
	NewService,
	NewPublisher,
	func(r *repo.Repository) Store { return r },
)
