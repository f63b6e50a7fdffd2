package hooks

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/veggiemonk/chain"
)

// Prometheus returns hooks that count started and completed steps and record
// step durations, labelled by step name. The collectors are registered with
// reg under namespace:
//
//	<namespace>_steps_started_total
//	<namespace>_steps_completed_total
//	<namespace>_step_duration_seconds
//
// A step that started but never completed has failed.
func Prometheus[T any](reg prometheus.Registerer, namespace string) (chain.Hooks[T], error) {
	started := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "steps_started_total",
		Help:      "Number of steps started.",
	}, []string{"step"})
	completed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "steps_completed_total",
		Help:      "Number of steps completed.",
	}, []string{"step"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "step_duration_seconds",
		Help:      "Duration of completed steps, hooks included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"step"})

	for _, c := range []prometheus.Collector{started, completed, duration} {
		if err := reg.Register(c); err != nil {
			return chain.Hooks[T]{}, err
		}
	}

	return chain.Hooks[T]{
		Before: func(ctx context.Context, _ *T, _ any) error {
			if step, err := chain.GetStep(ctx); err == nil {
				started.WithLabelValues(step.Name).Inc()
			}
			return nil
		},
		After: func(ctx context.Context, _ *T, _ any) error {
			if step, err := chain.GetStep(ctx); err == nil {
				completed.WithLabelValues(step.Name).Inc()
				duration.WithLabelValues(step.Name).Observe(time.Since(step.Started).Seconds())
			}
			return nil
		},
	}, nil
}
