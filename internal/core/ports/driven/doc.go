// Package driven defines the interfaces for infrastructure the core
// depends on (the school backend API, configuration, query history).
//
// Driven ports are implemented by adapters under internal/adapters/driven
// and consumed by the services in internal/core/services. The core never
// imports an adapter; it only sees these interfaces.
package driven
