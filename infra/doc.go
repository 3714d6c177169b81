// Package infra contains technical adapters such as metrics
// exporters and structured logging. These packages should depend
// only on the interfaces defined in the core packages.
package infra
