package app

import (
	"go.uber.org/fx"

	"github.com/sakewinkel/console/internal/cache"
	"github.com/sakewinkel/console/internal/config"
	"github.com/sakewinkel/console/internal/database"
	"github.com/sakewinkel/console/internal/logger"
	"github.com/sakewinkel/console/internal/messaging"
	"github.com/sakewinkel/console/internal/observability"
	repositorytracking "github.com/sakewinkel/console/internal/repository/tracking"
	grpcserver "github.com/sakewinkel/console/internal/server/grpc"
	httpserver "github.com/sakewinkel/console/internal/server/http"
	servicetracking "github.com/sakewinkel/console/internal/service/tracking"
	transporthttp "github.com/sakewinkel/console/internal/transport/http"
	"github.com/sakewinkel/console/internal/worker"
	workertracking "github.com/sakewinkel/console/internal/worker/tracking"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositorytracking.Module,
	servicetracking.Module,
)

// HTTP wires the HTTP and gRPC servers on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	grpcserver.Module,
	transporthttp.Module,
)

// Worker exposes lifecycle event processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workertracking.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
