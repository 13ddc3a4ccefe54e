/*
Package observability provides lifecycle hooks for monitoring the rsflow executor.

Hooks come in two flavours: LoggingHooks writes one structured line per build event,
and Metrics exports Prometheus counters and histograms. Both return
domain.LifecycleHooks and can be combined with LifecycleHooks.Merge.
*/
package observability
