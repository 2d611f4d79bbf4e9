// Package metrics provides observability hooks for site generation.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so callers never need nil checks:
//
//	gen := generator.New(cfg, generator.WithRecorder(metrics.NoopRecorder{}))
//
// When metrics are enabled in the tool configuration, a PrometheusRecorder is
// injected instead and HTTPHandler exposes its registry over HTTP.
package metrics
