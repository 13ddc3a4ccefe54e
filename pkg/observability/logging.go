package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/rsflow/pkg/domain"
)

// LoggingHooks logs every build event on logger.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBuildStart: func(ctx context.Context, e *domain.BuildEvent) {
			logger.DebugContext(ctx, "build started",
				"artifact", e.Artifact,
				"programs", e.Programs,
			)
		},
		OnBuildFinish: func(ctx context.Context, e *domain.BuildEvent) {
			if e.Failed() {
				logger.ErrorContext(ctx, "build failed",
					"artifact", e.Artifact,
					"duration", e.Duration,
					"error", e.Err,
				)
				return
			}
			logger.InfoContext(ctx, "built",
				"artifact", e.Artifact,
				"duration", e.Duration,
			)
		},
		OnBuildSkipped: func(ctx context.Context, e *domain.BuildEvent) {
			logger.DebugContext(ctx, "up to date", "artifact", e.Artifact)
		},
	}
}
