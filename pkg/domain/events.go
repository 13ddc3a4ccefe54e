package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventBuildStart   EventType = "build_start"
	EventBuildFinish  EventType = "build_finish"
	EventBuildSkipped EventType = "build_skipped"
)

// BuildEvent describes one artifact going through the executor.
type BuildEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	Artifact  string        `json:"artifact"`
	Programs  []string      `json:"programs,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// Failed reports whether the build finished with an error.
func (e *BuildEvent) Failed() bool {
	return e.Err != nil
}

// LifecycleHooks defines callbacks for executor observability.
type LifecycleHooks struct {
	OnBuildStart   func(context.Context, *BuildEvent)
	OnBuildFinish  func(context.Context, *BuildEvent)
	OnBuildSkipped func(context.Context, *BuildEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnBuildStart:   chain(h.OnBuildStart, other.OnBuildStart),
		OnBuildFinish:  chain(h.OnBuildFinish, other.OnBuildFinish),
		OnBuildSkipped: chain(h.OnBuildSkipped, other.OnBuildSkipped),
	}
}

func chain(a, b func(context.Context, *BuildEvent)) func(context.Context, *BuildEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *BuildEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
