// Package services implements the core business logic behind the driving
// ports: the search aggregator, settings, and query history.
//
// Services depend only on domain types and driven-port interfaces. All
// infrastructure (HTTP client, config file, sqlite) is injected.
package services
