// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and as fallbacks when persistence is
// unavailable.
package memory
