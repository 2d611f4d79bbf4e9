// Package errors provides the classified error primitives used across oakdocs.
//
// Every failure surfaced by the toolkit is a ClassifiedError carrying a
// category (config, validation, build, ...), a severity and optional
// structured context. The CLI and HTTP adapters turn those into exit codes
// and JSON payloads.
//
// Example usage:
//
//	err := errors.ValidationError("sidebar link does not resolve").
//		WithContext("link", "/guide/missing").
//		Build()
package errors
