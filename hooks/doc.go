// Package hooks provides ready-made before/after hooks for chain pipelines:
// composition, logging, timing and Prometheus metrics.
//
// Hooks read the running step from the context with [chain.GetStep].
package hooks
