package srv

import (
	"context"
	"time"

	"github.com/StackOverflowed512/flyer-agent/pkg/log"
)

const shutdownTimeout = 15 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices waits for ctx to be cancelled, then stops services in reverse
// start order so transports drain before the stores they write to are closed.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()

	Shutdown(ctx, services)
}

// Shutdown stops services in reverse order without waiting for ctx.
func Shutdown(ctx context.Context, services []Service) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(shutdownCtx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
